// Package timeutil holds the date arithmetic shared by the deadline views and
// the CLI: whole-day differences, compact "1w2d" windows and deadline parsing.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/stickies/pkg/note"
)

// Day is the length used for deadline day counts. Calendar days are not
// used: a deadline 25 hours away is two days out.
const Day = 24 * time.Hour

// DefaultWindow is used by ParseWindow when the input is blank.
const DefaultWindow = "1w"

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       Day,
		"day":     Day,
		"days":    Day,
		"w":       7 * Day,
		"wk":      7 * Day,
		"week":    7 * Day,
		"weeks":   7 * Day,
	}
)

// DaysUntil returns ceil((deadline - now) / 24h). Zero means due within the
// next 24 hours or just passed; negative means overdue by at least a day.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(now)) / float64(Day)))
}

// ParseWindow parses a compact duration such as "3d", "1w2d" or "36h" and
// returns it with its canonical spelling. Blank input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unknown window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow spells d with week, day, hour and minute tokens.
func FormatWindow(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{
		{"w", 7 * Day},
		{"d", Day},
		{"h", time.Hour},
		{"m", time.Minute},
	} {
		if d < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/u.size, u.label)
		d %= u.size
	}
	return b.String()
}

// ParseDeadline accepts "today", "tomorrow", a relative window prefixed with
// '+' ("+3d"), or anything note.ParseTime understands. Dates without a time
// resolve to the start of that day in now's location, so a date of yesterday
// is overdue and today's date is due today.
func ParseDeadline(input string, now time.Time) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(input))
	switch {
	case v == "":
		return time.Time{}, fmt.Errorf("timeutil: empty deadline")
	case v == "today":
		return startOfDay(now), nil
	case v == "tomorrow":
		return startOfDay(now.AddDate(0, 0, 1)), nil
	case strings.HasPrefix(v, "+"):
		d, _, err := ParseWindow(v[1:])
		if err != nil {
			return time.Time{}, err
		}
		return now.Add(d), nil
	}

	if d, err := time.ParseInLocation("2006-01-02", v, now.Location()); err == nil {
		return startOfDay(d), nil
	}
	t, err := note.ParseTime(strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: invalid deadline %q", input)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
