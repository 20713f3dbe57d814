package note

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted shape of a note with every field optional. Older
// files may lack fields that were added later (position, progress, deadline,
// currentPage); Hydrate fills them in instead of rejecting the record.
type Record struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Content     string    `json:"content"`
	Color       string    `json:"color"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
	Position    *Position `json:"position"`
	Deadline    *string   `json:"deadline"`
	Progress    *float64  `json:"progress"`
	CurrentPage *int      `json:"currentPage"`
}

// HydrateOptions supplies the generators used for backfilled fields.
type HydrateOptions struct {
	Now      time.Time
	Position func() Position
	NewID    func() string
}

// RecordOf converts a note back into its persisted shape.
func RecordOf(n Note) Record {
	title := n.Title
	progress := float64(n.Progress)
	page := int(n.CurrentPage)
	pos := n.Position
	r := Record{
		ID:          n.ID,
		Title:       &title,
		Content:     n.Content,
		Color:       string(n.Color),
		CreatedAt:   FormatTime(n.CreatedAt),
		UpdatedAt:   FormatTime(n.UpdatedAt),
		Position:    &pos,
		Progress:    &progress,
		CurrentPage: &page,
	}
	if n.Deadline != nil {
		d := FormatTime(*n.Deadline)
		r.Deadline = &d
	}
	return r
}

// Hydrate turns a record into a valid Note, applying defaults for anything
// missing or out of range.
func (r Record) Hydrate(opts HydrateOptions) Note {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	n := Note{
		ID:          strings.TrimSpace(r.ID),
		Content:     r.Content,
		Color:       normalizeColor(r.Color),
		Progress:    MinProgress,
		CurrentPage: PageContent,
	}
	if n.ID == "" {
		if opts.NewID != nil {
			n.ID = opts.NewID()
		} else {
			n.ID = uuid.NewString()
		}
	}
	if r.Title != nil {
		n.Title = TitleOrPlaceholder(*r.Title)
	} else {
		n.Title = PlaceholderTitle
	}

	created, createdOK := parseOptionalTime(r.CreatedAt)
	updated, updatedOK := parseOptionalTime(r.UpdatedAt)
	switch {
	case createdOK:
		n.CreatedAt = created
	case updatedOK:
		n.CreatedAt = updated
	default:
		n.CreatedAt = now
	}
	if updatedOK {
		n.UpdatedAt = updated
	} else {
		n.UpdatedAt = n.CreatedAt
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}

	switch {
	case r.Position != nil && finite(r.Position.X) && finite(r.Position.Y):
		n.Position = *r.Position
	case opts.Position != nil:
		n.Position = opts.Position()
	}

	if r.Deadline != nil {
		if d, ok := parseOptionalTime(*r.Deadline); ok {
			n.Deadline = &d
		}
	}
	if r.Progress != nil && finite(*r.Progress) {
		n.Progress = int(math.Round(math.Max(MinProgress, math.Min(MaxProgress, *r.Progress))))
	}
	if r.CurrentPage != nil {
		n.CurrentPage = Page(*r.CurrentPage).Normalize()
	}
	return n
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime accepts ISO-8601 timestamps with or without fractional seconds,
// with or without a zone, as well as plain dates.
func ParseTime(v string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatTime renders t as an ISO-8601 UTC timestamp.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	t, err := ParseTime(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
