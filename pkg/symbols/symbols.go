// Package symbols supplies the canonical bounding box and port offsets for
// each element category. The layout engine sizes elements from these
// constants; the artwork itself (the strokes inside the box) lives in
// package render and never influences geometry.
package symbols

import "github.com/circmark/circmark/pkg/circuit"

// Size is a width/height pair in schematic units.
type Size struct {
	W, H float64
}

// Canonical symbol boxes. Every element spans its full box horizontally:
// the lead wires from the box edges to the symbol body are part of the
// artwork, so series members can abut with zero-length junction wires.
const (
	bodyWidth  = 200.0
	bodyHeight = 60.0
	// Sources are drawn as circles and need a taller box.
	sourceHeight = 80.0
)

// Metrics returns the bounding box for an element category.
func Metrics(kind circuit.ElementKind) Size {
	switch kind {
	case circuit.VoltageSource, circuit.CurrentSource:
		return Size{W: bodyWidth, H: sourceHeight}
	default:
		return Size{W: bodyWidth, H: bodyHeight}
	}
}

// PortY returns the vertical offset of both ports within a box of the given
// size. Ports sit at the vertical center, on the extreme left/right edges.
func PortY(s Size) float64 {
	return s.H / 2
}
