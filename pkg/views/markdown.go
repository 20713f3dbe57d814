package views

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/stickies/pkg/note"
)

const (
	reportTitle    = "Sticky Notes Report"
	dateTimeLayout = "2006-01-02 15:04"
	progressCells  = 10
)

var (
	colorEmoji = map[note.Color]string{
		note.Yellow: "🟡",
		note.Pink:   "🌸",
		note.Blue:   "🔵",
		note.Green:  "🟢",
		note.Orange: "🟠",
		note.Purple: "🟣",
	}
	statusEmoji = map[Status]string{
		StatusOverdue: "🚨",
		StatusToday:   "⏰",
		StatusUrgent:  "🔥",
		StatusWarning: "⚠️",
		StatusNormal:  "📅",
	}
)

// ProgressEmoji marks a note as completed, in progress or not started.
func ProgressEmoji(progress int) string {
	switch {
	case progress >= note.MaxProgress:
		return "✅"
	case progress > note.MinProgress:
		return "🔄"
	default:
		return "⏸️"
	}
}

// StatusEmoji returns the indicator used for a deadline bucket.
func StatusEmoji(s Status) string {
	return statusEmoji[s]
}

// ProgressBar draws progress as ten block cells.
func ProgressBar(progress int) string {
	filled := note.ClampProgress(progress) * progressCells / note.MaxProgress
	return strings.Repeat("█", filled) + strings.Repeat("░", progressCells-filled)
}

// Markdown renders the collection as a report. The output depends only on
// notes and now; times are shown in now's location.
func Markdown(notes []note.Note, now time.Time) string {
	loc := now.Location()
	stats := Summarize(notes, now)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(dateTimeLayout))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---:|\n")
	for _, row := range []struct {
		label string
		count int
	}{
		{"Total", stats.Total},
		{"✅ Completed", stats.Completed},
		{"🔄 In progress", stats.InProgress},
		{"⏸️ Not started", stats.NotStarted},
		{"📅 With deadline", stats.WithDeadline},
		{"🚨 Overdue", stats.Overdue},
		{"🔥 Urgent (0-3 days)", stats.Urgent},
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", row.label, row.count)
	}
	b.WriteString("\n")

	b.WriteString("## Colors\n\n")
	if stats.Total == 0 {
		b.WriteString("_No notes._\n\n")
	} else {
		b.WriteString("| Color | Count |\n|---|---:|\n")
		for _, c := range note.AllColors() {
			if stats.Colors[c] == 0 {
				continue
			}
			fmt.Fprintf(&b, "| %s %s | %d |\n", colorEmoji[c], c, stats.Colors[c])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Notes\n\n")
	if len(notes) == 0 {
		b.WriteString("_No notes._\n\n")
	} else {
		b.WriteString("| # | Title | Color | Progress | Deadline | Status |\n")
		b.WriteString("|---:|---|---|---:|---|---|\n")
		for i, n := range notes {
			deadline, status := "-", "-"
			if n.Deadline != nil {
				s, days := DeadlineStatus(*n.Deadline, now)
				deadline = n.Deadline.In(loc).Format(dateTimeLayout)
				status = statusEmoji[s] + " " + s.Label(days)
			}
			fmt.Fprintf(&b, "| %d | %s | %s %s | %s %d%% | %s | %s |\n",
				i+1, EscapeCell(n.Title), colorEmoji[n.Color], n.Color,
				ProgressEmoji(n.Progress), n.Progress, deadline, status)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Deadlines\n\n")
	items := ByDeadline(notes, now)
	if len(items) == 0 {
		b.WriteString("_No deadlines set._\n\n")
	} else {
		for i, it := range items {
			fmt.Fprintf(&b, "%d. %s **%s** - %s (%s)\n",
				i+1, statusEmoji[it.Status], inline(it.Note.Title),
				it.Note.Deadline.In(loc).Format(dateTimeLayout), it.Status.Label(it.Days))
		}
		b.WriteString("\n")
	}

	if len(notes) > 0 {
		b.WriteString("## Details\n\n")
		for _, n := range notes {
			writeDetail(&b, n, now)
		}
	}

	b.WriteString("## Legend\n\n")
	b.WriteString("- ✅ completed, 🔄 in progress, ⏸️ not started\n")
	b.WriteString("- 🚨 overdue, ⏰ due today, 🔥 due in 1-3 days, ⚠️ due in 4-7 days, 📅 due later\n")
	return b.String()
}

func writeDetail(b *strings.Builder, n note.Note, now time.Time) {
	loc := now.Location()
	fmt.Fprintf(b, "### %s %s\n\n", colorEmoji[n.Color], inline(n.Title))
	fmt.Fprintf(b, "- Progress: %s `%s` %d%%\n", ProgressEmoji(n.Progress), ProgressBar(n.Progress), n.Progress)
	if n.Deadline != nil {
		s, days := DeadlineStatus(*n.Deadline, now)
		fmt.Fprintf(b, "- Deadline: %s %s (%s)\n", statusEmoji[s], n.Deadline.In(loc).Format(dateTimeLayout), s.Label(days))
	} else {
		b.WriteString("- Deadline: none\n")
	}
	fmt.Fprintf(b, "- Created: %s\n", n.CreatedAt.In(loc).Format(dateTimeLayout))
	fmt.Fprintf(b, "- Updated: %s\n\n", n.UpdatedAt.In(loc).Format(dateTimeLayout))

	if content := strings.TrimSpace(n.Content); content != "" {
		for _, line := range strings.Split(normalizeNewlines(content), "\n") {
			fmt.Fprintf(b, "> %s\n", line)
		}
		b.WriteString("\n")
	}
}

var cellReplacer = strings.NewReplacer(
	"\r\n", "<br>",
	"\r", "<br>",
	"\n", "<br>",
	"|", `\|`,
)

// EscapeCell makes s safe inside a Markdown table cell.
func EscapeCell(s string) string {
	return cellReplacer.Replace(s)
}

// inline flattens s onto one line for headings and list items.
func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeNewlines(s string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}
