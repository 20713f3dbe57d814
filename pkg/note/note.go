package note

import (
	"strings"
	"time"
)

// Page selects which face of a note is shown.
type Page int

const (
	// PageContent shows the title and content.
	PageContent Page = 1
	// PageDetail shows the deadline and progress editor.
	PageDetail Page = 2
)

// Normalize maps anything but PageDetail to PageContent.
func (p Page) Normalize() Page {
	if p == PageDetail {
		return PageDetail
	}
	return PageContent
}

const (
	// PlaceholderTitle replaces a blank title.
	PlaceholderTitle = "Untitled"

	MinProgress = 0
	MaxProgress = 100
)

// Note is a single sticky note on the board.
type Note struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Color       Color      `json:"color"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Position    Position   `json:"position"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Progress    int        `json:"progress"`
	CurrentPage Page       `json:"currentPage"`
}

// New builds a note with creation defaults: zero progress, content face and
// both timestamps set to now.
func New(id, title, content string, color Color, pos Position, now time.Time) Note {
	if !color.Valid() {
		color = DefaultColor
	}
	return Note{
		ID:          id,
		Title:       TitleOrPlaceholder(title),
		Content:     content,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
		Position:    pos,
		Progress:    MinProgress,
		CurrentPage: PageContent,
	}
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	if n.Deadline != nil {
		d := *n.Deadline
		n.Deadline = &d
	}
	return n
}

// HasDeadline reports whether a deadline is set.
func (n Note) HasDeadline() bool {
	return n.Deadline != nil
}

// Touch returns a copy with UpdatedAt advanced to now. UpdatedAt never moves
// backwards and never precedes CreatedAt.
func (n Note) Touch(now time.Time) Note {
	if now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}
	return n
}

// Patch is a sparse set of field changes. ID and CreatedAt cannot be patched.
type Patch struct {
	Title         *string
	Content       *string
	Color         *Color
	Position      *Position
	Deadline      *time.Time
	ClearDeadline bool
	Progress      *int
	CurrentPage   *Page
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil && p.Position == nil &&
		p.Deadline == nil && !p.ClearDeadline && p.Progress == nil && p.CurrentPage == nil
}

// Apply returns a new note with the patch applied and UpdatedAt refreshed.
// The receiver is left untouched.
func (n Note) Apply(p Patch, now time.Time) Note {
	out := n.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	switch {
	case p.ClearDeadline:
		out.Deadline = nil
	case p.Deadline != nil:
		d := *p.Deadline
		out.Deadline = &d
	}
	if p.Progress != nil {
		out.Progress = *p.Progress
	}
	if p.CurrentPage != nil {
		out.CurrentPage = *p.CurrentPage
	}
	return out.Touch(now)
}

// ClampProgress bounds v to [MinProgress, MaxProgress].
func ClampProgress(v int) int {
	return max(MinProgress, min(MaxProgress, v))
}

// TitleOrPlaceholder trims the title and substitutes PlaceholderTitle when
// nothing is left.
func TitleOrPlaceholder(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return PlaceholderTitle
	}
	return trimmed
}
