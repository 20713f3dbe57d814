// Package printers renders notes and views for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/views"
)

const (
	titleWidth   = 32
	contentWidth = 60
	dateLayout   = "2006-01-02 15:04"
)

// PrettyPrint writes colored tables to Out, or color.Output when Out is nil.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var noteColors = map[note.Color][]color.Attribute{
	note.Yellow: {color.FgYellow},
	note.Pink:   {color.FgHiMagenta},
	note.Blue:   {color.FgBlue},
	note.Green:  {color.FgGreen},
	note.Orange: {color.FgHiRed},
	note.Purple: {color.FgMagenta},
}

var statusColors = map[views.Status][]color.Attribute{
	views.StatusOverdue: {color.FgRed, color.Bold},
	views.StatusToday:   {color.FgHiRed},
	views.StatusUrgent:  {color.FgHiYellow},
	views.StatusWarning: {color.FgYellow},
	views.StatusNormal:  {color.Faint},
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// Notes prints one row per note in the given order.
func (pp *PrettyPrint) Notes(notes []note.Note, now time.Time) {
	if len(notes) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Title"), bold.Sprint("Color"), bold.Sprint("Progress"), bold.Sprint("Deadline")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, n := range notes {
		row := []interface{}{
			truncate.StringWithTail(n.Title, titleWidth, "…"),
			colorize(n.Color),
			progressCell(n.Progress),
			deadlineCell(n, now),
		}
		if pp.ShowID {
			row = append([]interface{}{id.Sprint(n.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Note prints every field of a single note.
func (pp *PrettyPrint) Note(n note.Note, now time.Time) {
	faint := color.New(color.Faint)
	_, _ = noteColor(n.Color).Add(color.Bold).Fprintln(pp.out(), n.Title)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("id"), n.ID)
	tbl.AddRow(faint.Sprint("color"), colorize(n.Color))
	tbl.AddRow(faint.Sprint("progress"), progressCell(n.Progress))
	tbl.AddRow(faint.Sprint("deadline"), deadlineCell(n, now))
	tbl.AddRow(faint.Sprint("page"), pageName(n.CurrentPage))
	tbl.AddRow(faint.Sprint("position"), fmt.Sprintf("%.0f, %.0f", n.Position.X, n.Position.Y))
	tbl.AddRow(faint.Sprint("created"), n.CreatedAt.In(now.Location()).Format(dateLayout))
	tbl.AddRow(faint.Sprint("updated"), n.UpdatedAt.In(now.Location()).Format(dateLayout))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if strings.TrimSpace(n.Content) != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(n.Content, contentWidth), 2))
	}
	pp.NewLine()
}

// Deadlines prints the deadline view.
func (pp *PrettyPrint) Deadlines(items []views.DeadlineItem, now time.Time) {
	if len(items) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, it := range items {
		tbl.AddRow(
			views.StatusEmoji(it.Status),
			truncate.StringWithTail(it.Note.Title, titleWidth, "…"),
			it.Note.Deadline.In(now.Location()).Format(dateLayout),
			statusColor(it.Status).Sprint(it.Status.Label(it.Days)),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Stats prints the aggregate counts and the color histogram.
func (pp *PrettyPrint) Stats(st views.Stats) {
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("total"), st.Total)
	tbl.AddRow(faint.Sprint("completed"), st.Completed)
	tbl.AddRow(faint.Sprint("in progress"), st.InProgress)
	tbl.AddRow(faint.Sprint("not started"), st.NotStarted)
	tbl.AddRow(faint.Sprint("with deadline"), st.WithDeadline)
	tbl.AddRow(faint.Sprint("overdue"), st.Overdue)
	tbl.AddRow(faint.Sprint("urgent"), st.Urgent)
	for _, c := range note.AllColors() {
		if st.Colors[c] > 0 {
			tbl.AddRow(colorize(c), st.Colors[c])
		}
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Legend explains the glyphs used in the deadline and progress columns.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mark"), bold.Sprint("Meaning"))
	for _, row := range [][2]string{
		{views.ProgressEmoji(note.MaxProgress), "completed"},
		{views.ProgressEmoji(50), "in progress"},
		{views.ProgressEmoji(note.MinProgress), "not started"},
		{views.StatusEmoji(views.StatusOverdue), "overdue"},
		{views.StatusEmoji(views.StatusToday), "due today"},
		{views.StatusEmoji(views.StatusUrgent), "due in 1-3 days"},
		{views.StatusEmoji(views.StatusWarning), "due in 4-7 days"},
		{views.StatusEmoji(views.StatusNormal), "due later"},
	} {
		tbl.AddRow(row[0], row[1])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func noteColor(c note.Color) *color.Color {
	return color.New(noteColors[c]...)
}

func statusColor(s views.Status) *color.Color {
	return color.New(statusColors[s]...)
}

func colorize(c note.Color) string {
	return noteColor(c).Sprint("● " + c.String())
}

// progressCell colors the percentage in five bands from red to green.
func progressCell(progress int) string {
	var attr color.Attribute
	switch {
	case progress >= 80:
		attr = color.FgGreen
	case progress >= 60:
		attr = color.FgHiGreen
	case progress >= 40:
		attr = color.FgHiYellow
	case progress >= 20:
		attr = color.FgYellow
	default:
		attr = color.FgRed
	}
	return fmt.Sprintf("%s %s", views.ProgressEmoji(progress), color.New(attr).Sprintf("%3d%% %s", progress, views.ProgressBar(progress)))
}

func deadlineCell(n note.Note, now time.Time) string {
	if n.Deadline == nil {
		return color.New(color.Faint).Sprint("-")
	}
	status, days := views.DeadlineStatus(*n.Deadline, now)
	return fmt.Sprintf("%s %s %s",
		views.StatusEmoji(status),
		n.Deadline.In(now.Location()).Format(dateLayout),
		statusColor(status).Sprintf("(%s)", status.Label(days)))
}

func pageName(p note.Page) string {
	if p == note.PageDetail {
		return "detail"
	}
	return "content"
}
