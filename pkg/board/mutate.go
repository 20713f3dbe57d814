package board

import (
	"math"
	"sort"
	"time"

	"tableflip.dev/stickies/pkg/note"
)

// Grid used by ArrangeNotes, in logical canvas units. A cell is a note plus
// its margin.
const (
	ArrangeCellWidth  = 270
	ArrangeCellHeight = 250
	ArrangeStartX     = 50
	ArrangeStartY     = 50
)

// Add appends a new note at a random position inside the reference canvas
// and returns a copy of it. An empty color means note.DefaultColor.
func (s *Store) Add(title, content string, color note.Color) note.Note {
	s.mu.Lock()
	n := note.New(s.newID(), title, content, color, s.randomPositionLocked(), s.now())
	s.notes = append(s.notes, n)
	s.scheduleSaveLocked()
	s.mu.Unlock()

	mutationsTotal.WithLabelValues("add").Inc()
	s.notify(Event{Type: EventCreate, ID: n.ID})
	return n.Clone()
}

// Update applies a partial change to the note with the given id. Unknown ids
// are ignored. A blank title becomes note.PlaceholderTitle, progress is
// clamped and an unknown color leaves the color unchanged.
func (s *Store) Update(id string, patch note.Patch) {
	patch = normalizePatch(patch)
	s.mutate(id, "update", func(n note.Note, now time.Time) note.Note {
		return n.Apply(patch, now)
	})
}

// UpdatePosition moves a note. It is called for every drag frame, so it
// avoids building a patch.
func (s *Store) UpdatePosition(id string, pos note.Position) {
	s.mutate(id, "position", func(n note.Note, now time.Time) note.Note {
		n.Position = pos
		return n.Touch(now)
	})
}

// UpdateDeadline sets the deadline, or clears it when deadline is nil.
func (s *Store) UpdateDeadline(id string, deadline *time.Time) {
	var d *time.Time
	if deadline != nil {
		v := *deadline
		d = &v
	}
	s.mutate(id, "deadline", func(n note.Note, now time.Time) note.Note {
		n.Deadline = d
		return n.Touch(now)
	})
}

// UpdateProgress stores value clamped to [0, 100].
func (s *Store) UpdateProgress(id string, value int) {
	clamped := note.ClampProgress(value)
	s.mutate(id, "progress", func(n note.Note, now time.Time) note.Note {
		n.Progress = clamped
		return n.Touch(now)
	})
}

// UpdateCurrentPage selects which face of the note is shown.
func (s *Store) UpdateCurrentPage(id string, page note.Page) {
	page = page.Normalize()
	s.mutate(id, "page", func(n note.Note, now time.Time) note.Note {
		n.CurrentPage = page
		return n.Touch(now)
	})
}

// Delete removes the note. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	s.scheduleSaveLocked()
	s.mu.Unlock()

	mutationsTotal.WithLabelValues("delete").Inc()
	s.notify(Event{Type: EventDelete, ID: id})
}

// ArrangeNotes lays the notes out on a square-ish grid in creation order.
// Display order is not changed. All positions are applied at once and a
// single save is scheduled.
func (s *Store) ArrangeNotes() {
	s.mu.Lock()
	if len(s.notes) == 0 {
		s.mu.Unlock()
		return
	}
	now := s.now()
	cols := GridColumns(len(s.notes))
	for rank, i := range creationOrder(s.notes) {
		s.notes[i].Position = GridPosition(rank, cols)
		s.notes[i] = s.notes[i].Touch(now)
	}
	s.scheduleSaveLocked()
	s.mu.Unlock()

	mutationsTotal.WithLabelValues("arrange").Inc()
	s.notify(Event{Type: EventArrange})
}

// GridColumns returns ceil(sqrt(n)).
func GridColumns(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// GridPosition returns the top-left corner of the grid cell for the note at
// rank (0-based, row-major) on a grid with cols columns.
func GridPosition(rank, cols int) note.Position {
	row := rank / cols
	col := rank % cols
	return note.Position{
		X: float64(ArrangeStartX + col*ArrangeCellWidth),
		Y: float64(ArrangeStartY + row*ArrangeCellHeight),
	}
}

// creationOrder returns indexes into notes sorted by CreatedAt, ties kept in
// insertion order.
func creationOrder(notes []note.Note) []int {
	order := make([]int, len(notes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return notes[order[a]].CreatedAt.Before(notes[order[b]].CreatedAt)
	})
	return order
}

func (s *Store) mutate(id, op string, fn func(n note.Note, now time.Time) note.Note) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.notes[i] = fn(s.notes[i].Clone(), s.now())
	s.scheduleSaveLocked()
	s.mu.Unlock()

	mutationsTotal.WithLabelValues(op).Inc()
	s.notify(Event{Type: EventUpdate, ID: id})
}

func normalizePatch(p note.Patch) note.Patch {
	if p.Title != nil {
		title := note.TitleOrPlaceholder(*p.Title)
		p.Title = &title
	}
	if p.Progress != nil {
		progress := note.ClampProgress(*p.Progress)
		p.Progress = &progress
	}
	if p.Color != nil && !p.Color.Valid() {
		p.Color = nil
	}
	if p.CurrentPage != nil {
		page := p.CurrentPage.Normalize()
		p.CurrentPage = &page
	}
	return p
}
