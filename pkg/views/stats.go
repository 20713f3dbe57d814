package views

import (
	"time"

	"tableflip.dev/stickies/pkg/note"
)

// Stats aggregates the collection. Urgent counts deadlines 0 to 3 days out,
// so it includes notes due today.
type Stats struct {
	Total        int                `json:"total" yaml:"total"`
	Completed    int                `json:"completed" yaml:"completed"`
	InProgress   int                `json:"inProgress" yaml:"inProgress"`
	NotStarted   int                `json:"notStarted" yaml:"notStarted"`
	WithDeadline int                `json:"withDeadline" yaml:"withDeadline"`
	Overdue      int                `json:"overdue" yaml:"overdue"`
	Urgent       int                `json:"urgent" yaml:"urgent"`
	Colors       map[note.Color]int `json:"colors" yaml:"colors"`
}

// Summarize counts notes by progress, deadline and color.
func Summarize(notes []note.Note, now time.Time) Stats {
	st := Stats{
		Total:  len(notes),
		Colors: make(map[note.Color]int, len(note.AllColors())),
	}
	for _, n := range notes {
		switch {
		case n.Progress >= note.MaxProgress:
			st.Completed++
		case n.Progress > note.MinProgress:
			st.InProgress++
		default:
			st.NotStarted++
		}
		st.Colors[n.Color]++

		if n.Deadline == nil {
			continue
		}
		st.WithDeadline++
		switch status, _ := DeadlineStatus(*n.Deadline, now); status {
		case StatusOverdue:
			st.Overdue++
		case StatusToday, StatusUrgent:
			st.Urgent++
		}
	}
	return st
}
