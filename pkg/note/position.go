package note

import "math/rand/v2"

// Position is a coordinate in logical canvas space. It is independent of the
// viewport size and zoom level.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	// ReferenceWidth and ReferenceHeight bound randomly placed notes.
	ReferenceWidth  = 1200
	ReferenceHeight = 800

	placementMargin = 50
	placementSpread = 0.8
)

// RandomPosition returns a position inside the reference canvas, keeping a
// margin from the top-left edge and a fifth of the canvas free on the
// bottom-right.
func RandomPosition(r *rand.Rand) Position {
	maxX := ReferenceWidth * placementSpread
	maxY := ReferenceHeight * placementSpread
	return Position{
		X: r.Float64()*(maxX-placementMargin) + placementMargin,
		Y: r.Float64()*(maxY-placementMargin) + placementMargin,
	}
}

// InReferenceBounds reports whether p lies where RandomPosition can place a note.
func (p Position) InReferenceBounds() bool {
	return p.X >= placementMargin && p.X < ReferenceWidth*placementSpread &&
		p.Y >= placementMargin && p.Y < ReferenceHeight*placementSpread
}
