// Package note defines the sticky note entity and its persisted shape.
package note

import (
	"fmt"
	"strings"
)

// Color is the background color of a note.
type Color string

const (
	// Yellow is the default note color.
	Yellow Color = "yellow"
	Pink   Color = "pink"
	Blue   Color = "blue"
	Green  Color = "green"
	Orange Color = "orange"
	Purple Color = "purple"
)

// DefaultColor is applied when a note is created without a color or when a
// persisted record carries an unknown one.
const DefaultColor = Yellow

// AllColors returns the closed set of supported colors in display order.
func AllColors() []Color {
	return []Color{
		Yellow,
		Pink,
		Blue,
		Green,
		Orange,
		Purple,
	}
}

// Valid reports whether c is one of AllColors.
func (c Color) Valid() bool {
	for _, candidate := range AllColors() {
		if candidate == c {
			return true
		}
	}
	return false
}

func (c Color) String() string {
	return string(c)
}

// ParseColor converts a string to a Color or returns an error for unknown values.
// Empty input yields DefaultColor.
func ParseColor(raw string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return DefaultColor, nil
	}
	if c.Valid() {
		return c, nil
	}
	return DefaultColor, fmt.Errorf("note: unknown color %q", raw)
}

// normalizeColor maps anything outside the closed set to DefaultColor.
func normalizeColor(raw string) Color {
	c, err := ParseColor(raw)
	if err != nil {
		return DefaultColor
	}
	return c
}
