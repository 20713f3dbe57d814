// Package views derives read-only projections of a note collection. Every
// function works on a copy; the input slice is never reordered or modified.
package views

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/timeutil"
)

// Status buckets a deadline by the number of days left.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusToday   Status = "today"
	StatusUrgent  Status = "urgent"
	StatusWarning Status = "warning"
	StatusNormal  Status = "normal"
)

// DeadlineStatus returns the bucket for deadline relative to now along with
// the whole-day difference it was computed from.
func DeadlineStatus(deadline, now time.Time) (Status, int) {
	days := timeutil.DaysUntil(deadline, now)
	switch {
	case days < 0:
		return StatusOverdue, days
	case days == 0:
		return StatusToday, days
	case days <= 3:
		return StatusUrgent, days
	case days <= 7:
		return StatusWarning, days
	default:
		return StatusNormal, days
	}
}

// Label renders the bucket with its day count for humans.
func (s Status) Label(days int) string {
	switch s {
	case StatusOverdue:
		return fmt.Sprintf("%s overdue", plural(-days, "day"))
	case StatusToday:
		return "due today"
	default:
		return fmt.Sprintf("%s left", plural(days, "day"))
	}
}

// DeadlineItem is one row of the deadline view.
type DeadlineItem struct {
	Note   note.Note `json:"note"`
	Status Status    `json:"status"`
	Days   int       `json:"days"`
}

// ByProgress returns the notes ordered by progress, highest first. Notes with
// equal progress keep their collection order.
func ByProgress(notes []note.Note) []note.Note {
	out := clone(notes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Progress > out[j].Progress
	})
	return out
}

// ByDeadline returns the notes that have a deadline, soonest first, each
// annotated with its status relative to now.
func ByDeadline(notes []note.Note, now time.Time) []DeadlineItem {
	items := make([]DeadlineItem, 0, len(notes))
	for _, n := range notes {
		if n.Deadline == nil {
			continue
		}
		status, days := DeadlineStatus(*n.Deadline, now)
		items = append(items, DeadlineItem{Note: n.Clone(), Status: status, Days: days})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Note.Deadline.Before(*items[j].Note.Deadline)
	})
	return items
}

func clone(notes []note.Note) []note.Note {
	out := make([]note.Note, len(notes))
	for i := range notes {
		out[i] = notes[i].Clone()
	}
	return out
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
