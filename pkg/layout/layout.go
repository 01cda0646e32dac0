package layout

import (
	"fmt"

	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/symbols"
)

// Spacing constants, in the same schematic units as the symbol boxes.
const (
	// BranchSpacing is the vertical gap between parallel branches.
	BranchSpacing = 20.0
	// StubLength is the minimum signal-path width reserved for a twoport
	// shunt drop. A shunt slot widens to the target's rotated extent when
	// that is larger.
	StubLength = 20.0
	// RailClearance is the gap between the deepest shunt branch and the
	// return rail of a twoport chain.
	RailClearance = 40.0
)

// Plan is the fully positioned geometry of one document: the sized and
// placed node tree plus every connecting wire and junction dot. It is built
// fresh per Compute call and never mutated afterwards.
type Plan struct {
	Root      *Node
	Width     float64
	Height    float64
	Wires     []Wire
	Junctions []Point
}

// Compute lays out a topology tree. It cannot fail: every tree the parser
// produces has a well-defined layout, and the result depends on nothing but
// the tree itself.
func Compute(doc circuit.Node) *Plan {
	root := measure(doc)
	p := &Plan{Root: root, Width: root.Width, Height: root.Height}
	p.position(root, Point{})
	return p
}

// =============================================================================
// Sizing Pass
// =============================================================================

// measure computes bounding boxes and port offsets bottom-up.
func measure(ast circuit.Node) *Node {
	switch v := ast.(type) {
	case *circuit.Element:
		s := symbols.Metrics(v.Kind)
		return &Node{
			AST:       ast,
			Width:     s.W,
			Height:    s.H,
			LeftPort:  Point{X: 0, Y: symbols.PortY(s)},
			RightPort: Point{X: s.W, Y: symbols.PortY(s)},
		}

	case *circuit.SeriesGroup:
		n := &Node{AST: ast}
		for _, m := range v.Members {
			c := measure(m)
			n.Width += c.Width
			if c.Height > n.Height {
				n.Height = c.Height
			}
			n.Children = append(n.Children, c)
		}
		n.LeftPort = Point{X: 0, Y: n.Height / 2}
		n.RightPort = Point{X: n.Width, Y: n.Height / 2}
		return n

	case *circuit.ParallelGroup:
		n := &Node{AST: ast}
		for _, b := range v.Branches {
			c := measure(b)
			n.Height += c.Height
			if c.Width > n.Width {
				n.Width = c.Width
			}
			n.Children = append(n.Children, c)
		}
		n.Height += BranchSpacing * float64(len(v.Branches)-1)
		n.LeftPort = Point{X: 0, Y: n.Height / 2}
		n.RightPort = Point{X: n.Width, Y: n.Height / 2}
		return n

	case *circuit.Twoport:
		n := &Node{AST: ast}
		shuntDepth := 0.0
		for _, l := range v.Links {
			c := measure(l.Target)
			n.Children = append(n.Children, c)
			if l.Kind == circuit.Series {
				n.Width += c.Width
			} else {
				// Shunt targets hang rotated: the target's height
				// becomes the slot width, its width the drop depth.
				n.Width += shuntSlot(c)
				if c.Width > shuntDepth {
					shuntDepth = c.Width
				}
			}
		}
		pathH := signalPathHeight(v, n.Children)
		n.Height = pathH + shuntDepth + RailClearance
		n.LeftPort = Point{X: 0, Y: pathH / 2}
		n.RightPort = Point{X: n.Width, Y: pathH / 2}
		return n

	default:
		panic(fmt.Sprintf("layout: unknown node type %T", ast))
	}
}

// signalPathHeight is the height of a twoport's horizontal signal path: the
// tallest series-link target, or the canonical element height when the chain
// has no series links. children may be nil before they are measured.
func signalPathHeight(tp *circuit.Twoport, children []*Node) float64 {
	h := symbols.Metrics(circuit.Open).H
	for i, l := range tp.Links {
		if l.Kind != circuit.Series || children == nil {
			continue
		}
		if ch := children[i].Height; ch > h {
			h = ch
		}
	}
	return h
}

// =============================================================================
// Positioning Pass
// =============================================================================

// position assigns the node its absolute origin, then places children and
// records connecting wires and junctions.
func (p *Plan) position(n *Node, at Point) {
	n.Origin = at

	switch v := n.AST.(type) {
	case *circuit.Element:
		// Leaf: the artwork spans the whole box, ports on the edges.

	case *circuit.SeriesGroup:
		// Members abut left to right, each centered on the group's
		// horizontal center line, so adjacent ports coincide exactly.
		x := at.X
		for _, c := range n.Children {
			p.position(c, Point{X: x, Y: at.Y + (n.Height-c.Height)/2})
			x += c.Width
		}

	case *circuit.ParallelGroup:
		p.positionParallel(n, at)

	case *circuit.Twoport:
		p.positionTwoport(n, v, at)

	default:
		panic(fmt.Sprintf("layout: unknown node type %T", n.AST))
	}
}

// positionParallel stacks branches top to bottom between two vertical bus
// wires at the group's left and right edges. Branches are left-aligned on
// the left bus; narrower branches reach the right bus through a horizontal
// stub wire. The group's own ports tap the buses at mid-height.
func (p *Plan) positionParallel(n *Node, at Point) {
	busL := at.X
	busR := at.X + n.Width

	p.Wires = append(p.Wires,
		Wire{From: Point{X: busL, Y: at.Y}, To: Point{X: busL, Y: at.Y + n.Height}},
		Wire{From: Point{X: busR, Y: at.Y}, To: Point{X: busR, Y: at.Y + n.Height}},
	)

	y := at.Y
	for _, c := range n.Children {
		p.position(c, Point{X: busL, Y: y})
		if c.Width < n.Width {
			cy := y + c.Height/2
			p.Wires = append(p.Wires, Wire{
				From: Point{X: busL + c.Width, Y: cy},
				To:   Point{X: busR, Y: cy},
			})
		}
		y += c.Height + BranchSpacing
	}

	mid := at.Y + n.Height/2
	p.Junctions = append(p.Junctions, Point{X: busL, Y: mid}, Point{X: busR, Y: mid})
}

// positionTwoport lays the chain out along a horizontal signal path with a
// return rail along the bottom edge. Series targets sit in the path; shunt
// targets drop rotated from the path to the rail.
func (p *Plan) positionTwoport(n *Node, tp *circuit.Twoport, at Point) {
	pathH := signalPathHeight(tp, n.Children)
	signalY := at.Y + pathH/2
	railY := at.Y + n.Height

	x := at.X
	last := len(tp.Links) - 1
	for i, link := range tp.Links {
		c := n.Children[i]
		if link.Kind == circuit.Series {
			p.position(c, Point{X: x, Y: signalY - c.Height/2})
			p.Wires = append(p.Wires, Wire{
				From: Point{X: x, Y: railY},
				To:   Point{X: x + c.Width, Y: railY},
			})
			x += c.Width
			continue
		}

		slot := shuntSlot(c)
		cx := x + slot/2
		span := railY - signalY
		drop := c.Width // rotated vertical extent; positionShunt swaps the node's axes
		dropTop := signalY + (span-drop)/2
		p.positionShunt(c, Point{X: cx - c.Height/2, Y: dropTop})

		p.Wires = append(p.Wires,
			Wire{From: Point{X: cx, Y: signalY}, To: Point{X: cx, Y: dropTop}},
			Wire{From: Point{X: cx, Y: dropTop + drop}, To: Point{X: cx, Y: railY}},
		)
		if i > 0 {
			p.Wires = append(p.Wires,
				Wire{From: Point{X: x, Y: signalY}, To: Point{X: cx, Y: signalY}},
				Wire{From: Point{X: x, Y: railY}, To: Point{X: cx, Y: railY}},
			)
		}
		if i < last {
			p.Wires = append(p.Wires,
				Wire{From: Point{X: cx, Y: signalY}, To: Point{X: x + slot, Y: signalY}},
				Wire{From: Point{X: cx, Y: railY}, To: Point{X: x + slot, Y: railY}},
			)
		}
		if i > 0 && i < last {
			p.Junctions = append(p.Junctions, Point{X: cx, Y: signalY}, Point{X: cx, Y: railY})
		}
		x += slot
	}
}

// shuntSlot is the signal-path width a shunt link occupies: the target's
// rotated horizontal extent, never less than StubLength.
func shuntSlot(c *Node) float64 {
	if c.Height > StubLength {
		return c.Height
	}
	return StubLength
}

// positionShunt lays the target out in its own local frame, then folds the
// resulting geometry into the plan rotated a quarter turn clockwise, so the
// target's left port attaches to the signal path and its right port to the
// return rail. topLeft is the placed position of the rotated bounding box.
func (p *Plan) positionShunt(c *Node, topLeft Point) {
	sub := &Plan{Root: c}
	sub.position(c, Point{})

	// Clockwise quarter turn of a point in the target's local w×h frame:
	// (x, y) → (h − y, x), then translate to topLeft.
	h := c.Height
	rot := func(pt Point) Point {
		return Point{X: topLeft.X + h - pt.Y, Y: topLeft.Y + pt.X}
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		x, y := n.Origin.X, n.Origin.Y
		n.Origin = Point{X: topLeft.X + h - y - n.Height, Y: topLeft.Y + x}
		n.Width, n.Height = n.Height, n.Width
		n.LeftPort = Point{X: n.Width / 2, Y: 0}
		n.RightPort = Point{X: n.Width / 2, Y: n.Height}
		n.Rotated = true
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	walk(c)

	for _, w := range sub.Wires {
		p.Wires = append(p.Wires, Wire{From: rot(w.From), To: rot(w.To)})
	}
	for _, j := range sub.Junctions {
		p.Junctions = append(p.Junctions, rot(j))
	}
}
