// Package schematic is the canonical serialization format for positioned
// circuit geometry. It is the handoff boundary between the layout engine and
// every rendering or storage consumer: the JSON output format, the artifact
// cache, and the HTTP API all speak this format. It carries no tokens, no
// source text, and no tree structure — only placed boxes, wires, and
// junctions.
package schematic

import (
	"encoding/json"

	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/layout"
)

// Symbol kind strings used in serialized schematics. They match
// circuit.ElementKind.String.
const (
	KindResistor      = "resistor"
	KindCapacitor     = "capacitor"
	KindInductor      = "inductor"
	KindVoltageSource = "voltage-source"
	KindCurrentSource = "current-source"
	KindImpedance     = "impedance"
	KindOpen          = "open"
)

// Schematic is a fully positioned diagram in document coordinates (origin at
// the top-left corner). The format is designed for round-trip fidelity:
// compute → export → re-import renders identically.
type Schematic struct {
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Symbols   []Symbol `json:"symbols"`
	Wires     []Wire   `json:"wires,omitempty"`
	Junctions []Point  `json:"junctions,omitempty"`
}

// Symbol is one placed element. X/Y is the top-left corner of the placed
// bounding box; for rotated symbols Width/Height are the placed extents and
// the artwork is drawn a quarter turn clockwise.
type Symbol struct {
	Kind    string  `json:"kind"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated,omitempty"`
}

// Wire is an axis-aligned connecting segment.
type Wire struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Point is a junction dot position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromPlan flattens a layout plan into its serialization format. Element
// leaves become symbols in tree order; wires and junctions carry over as-is.
func FromPlan(p *layout.Plan) Schematic {
	s := Schematic{
		Width:   p.Width,
		Height:  p.Height,
		Symbols: collectSymbols(p.Root, nil),
	}
	for _, w := range p.Wires {
		s.Wires = append(s.Wires, Wire{X1: w.From.X, Y1: w.From.Y, X2: w.To.X, Y2: w.To.Y})
	}
	for _, j := range p.Junctions {
		s.Junctions = append(s.Junctions, Point{X: j.X, Y: j.Y})
	}
	return s
}

func collectSymbols(n *layout.Node, out []Symbol) []Symbol {
	if el, ok := n.AST.(*circuit.Element); ok {
		return append(out, Symbol{
			Kind:    el.Kind.String(),
			Label:   el.Label(),
			X:       n.Origin.X,
			Y:       n.Origin.Y,
			Width:   n.Width,
			Height:  n.Height,
			Rotated: n.Rotated,
		})
	}
	for _, c := range n.Children {
		out = collectSymbols(c, out)
	}
	return out
}

// Marshal serializes a schematic to indented JSON.
func Marshal(s Schematic) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes to a Schematic.
func Unmarshal(data []byte) (Schematic, error) {
	var s Schematic
	if err := json.Unmarshal(data, &s); err != nil {
		return Schematic{}, err
	}
	return s, nil
}
