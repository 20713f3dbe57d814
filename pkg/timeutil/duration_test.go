package timeutil

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		deadline time.Time
		want     int
	}{
		"now":             {deadline: now, want: 0},
		"one hour ahead":  {deadline: now.Add(time.Hour), want: 1},
		"exactly a day":   {deadline: now.Add(Day), want: 1},
		"25 hours":        {deadline: now.Add(25 * time.Hour), want: 2},
		"one hour behind": {deadline: now.Add(-time.Hour), want: 0},
		"a day behind":    {deadline: now.Add(-Day), want: -1},
		"36 hours behind": {deadline: now.Add(-36 * time.Hour), want: -1},
		"two weeks":       {deadline: now.Add(14 * Day), want: 14},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := DaysUntil(tc.deadline, now); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 7*Day {
		t.Fatalf("expected %v, got %v", 7*Day, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w 2d 6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 9*Day + 6*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3y", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := map[string]time.Time{
		"today":                time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		"Tomorrow":             time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		"+3d":                  now.Add(3 * Day),
		"2025-07-01":           time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		"2025-07-01T08:00:00Z": time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := ParseDeadline(in, now)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}

	if _, err := ParseDeadline("someday", now); err == nil {
		t.Error("expected error for unparseable deadline")
	}
}
