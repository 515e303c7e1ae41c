package input

import "math"

// View maps world coordinates to logical pixels: pan X/Y in world units,
// zoom K as a ratio (1 = 100%).
type View struct {
	X, Y float64
	K    float64
}

// ToWorld converts a logical pixel position into world coordinates for a
// drawing area of width w and height h.
func (v View) ToWorld(px, py, w, h float64) (float64, float64) {
	return (px-w/2)/v.K - v.X, (py-h/2)/v.K - v.Y
}

// ToScreen converts world coordinates into logical pixels.
func (v View) ToScreen(x, y, w, h float64) (float64, float64) {
	return (x+v.X)*v.K + w/2, (y+v.Y)*v.K + h/2
}

// Pointer is the pointer as the controller last saw it.
type Pointer struct {
	PhysX, PhysY float64 // Logical pixels
	Present      bool    // False before the first move and after leaving

	X, Y float64 // World coordinates, valid when Present

	Down     bool
	Dragging bool

	// Target is the hovered node, or the held node during a drag.
	Target *Node

	// DX/DY is the grab offset: pointer minus node for a node drag, the
	// grabbed world point for a pan.
	DX, DY float64
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
