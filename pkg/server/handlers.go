package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/views"
)

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// patchRequest keeps deadline raw so an explicit null can clear it.
type patchRequest struct {
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Color       *string         `json:"color"`
	Position    *note.Position  `json:"position"`
	Deadline    json.RawMessage `json:"deadline"`
	Progress    *int            `json:"progress"`
	CurrentPage *int            `json:"currentPage"`
}

type deadlineRequest struct {
	Deadline *string `json:"deadline"`
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type pageRequest struct {
	Page *int `json:"page" binding:"required"`
}

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// lookup answers 404 for ids the store does not know. The store itself
// ignores such ids silently.
func (s *Server) lookup(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, ok := s.store.Get(id); !ok {
		abort(c, http.StatusNotFound, "note not found")
		return "", false
	}
	return id, true
}

func (s *Server) respondNote(c *gin.Context, id string) {
	n, ok := s.store.Get(id)
	if !ok {
		abort(c, http.StatusNotFound, "note not found")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) listNotes(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Notes())
}

func (s *Server) getNote(c *gin.Context) {
	s.respondNote(c, c.Param("id"))
}

func (s *Server) createNote(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	color, err := note.ParseColor(req.Color)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, s.store.Add(req.Title, req.Content, color))
}

func (s *Server) patchNote(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	patch := note.Patch{
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
		Progress: req.Progress,
	}
	if req.Color != nil {
		color, err := note.ParseColor(*req.Color)
		if err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Color = &color
	}
	if req.CurrentPage != nil {
		page := note.Page(*req.CurrentPage)
		patch.CurrentPage = &page
	}
	if len(req.Deadline) > 0 {
		var raw *string
		if err := json.Unmarshal(req.Deadline, &raw); err != nil {
			abort(c, http.StatusBadRequest, "deadline must be a string or null")
			return
		}
		if raw == nil {
			patch.ClearDeadline = true
		} else {
			d, err := note.ParseTime(*raw)
			if err != nil {
				abort(c, http.StatusBadRequest, "invalid deadline")
				return
			}
			patch.Deadline = &d
		}
	}
	s.store.Update(id, patch)
	s.respondNote(c, id)
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	s.store.Delete(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) putPosition(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	var pos note.Position
	if err := c.ShouldBindJSON(&pos); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	s.store.UpdatePosition(id, pos)
	s.respondNote(c, id)
}

func (s *Server) putDeadline(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	var req deadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Deadline == nil {
		s.store.UpdateDeadline(id, nil)
	} else {
		d, err := note.ParseTime(*req.Deadline)
		if err != nil {
			abort(c, http.StatusBadRequest, "invalid deadline")
			return
		}
		s.store.UpdateDeadline(id, &d)
	}
	s.respondNote(c, id)
}

func (s *Server) putProgress(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	s.store.UpdateProgress(id, *req.Progress)
	s.respondNote(c, id)
}

func (s *Server) putPage(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	s.store.UpdateCurrentPage(id, note.Page(*req.Page))
	s.respondNote(c, id)
}

func (s *Server) arrange(c *gin.Context) {
	s.store.ArrangeNotes()
	c.JSON(http.StatusOK, s.store.Notes())
}

func (s *Server) backup(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": s.store.CreateBackup(c.Request.Context())})
}

func (s *Server) progressView(c *gin.Context) {
	c.JSON(http.StatusOK, views.ByProgress(s.store.Notes()))
}

func (s *Server) deadlineView(c *gin.Context) {
	c.JSON(http.StatusOK, views.ByDeadline(s.store.Notes(), s.now()))
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, views.Summarize(s.store.Notes(), s.now()))
}

func (s *Server) report(c *gin.Context) {
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(views.Markdown(s.store.Notes(), s.now())))
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"loading": s.store.Loading(), "count": s.store.Len()})
}
