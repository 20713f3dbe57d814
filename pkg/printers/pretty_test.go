package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/views"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestNotesTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	deadline := now.Add(-24 * time.Hour)
	milk := note.New("id-1", "Buy milk", "", note.Yellow, note.Position{}, now)
	milk.Progress = 100
	milk.Deadline = &deadline
	long := note.New("id-2", strings.Repeat("x", 80), "", note.Blue, note.Position{}, now)

	pp.Notes([]note.Note{milk, long}, now)

	out := buf.String()
	for _, want := range []string{"ID", "id-1", "Buy milk", "yellow", "100%", "2025-06-09 12:00", "(1 day overdue)", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("x", 80)) {
		t.Errorf("long title was not truncated:\n%s", out)
	}
}

func TestNotesEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Notes(nil, now)
	if !strings.Contains(buf.String(), "none") {
		t.Errorf("expected none marker, got %q", buf.String())
	}
}

func TestNoteDetail(t *testing.T) {
	var buf bytes.Buffer
	n := note.New("id-1", "Plan", "first line of a fairly long body that will need wrapping once it passes sixty columns", note.Green, note.Position{X: 320, Y: 50}, now)
	n.CurrentPage = note.PageDetail

	(&PrettyPrint{Out: &buf}).Note(n, now)

	out := buf.String()
	for _, want := range []string{"Plan", "detail", "320, 50", "  first line"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestStatsAndDeadlines(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	soon := now.Add(2 * time.Hour)
	n := note.New("a", "Ship", "", note.Pink, note.Position{}, now)
	n.Deadline = &soon

	pp.Stats(views.Summarize([]note.Note{n}, now))
	pp.Deadlines(views.ByDeadline([]note.Note{n}, now), now)
	pp.TitleWithCount("Board", 1)

	out := buf.String()
	for _, want := range []string{"with deadline", "pink", "Ship", "1 day left", "- 1 note"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}
