package layout

import "github.com/circmark/circmark/pkg/circuit"

// Point is an absolute coordinate. The origin is the document's top-left
// corner; x grows rightward, y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Wire is a straight horizontal or vertical connecting segment.
type Wire struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Node wraps a topology tree node with its computed geometry. Width, Height
// and the port offsets are filled by the sizing pass; Origin by the
// positioning pass. After Compute returns, the tree is not mutated again.
//
// Shunt targets in a twoport chain are rotated a quarter turn clockwise so
// the signal-side port faces up. For such nodes Rotated is true, Width and
// Height are the placed (post-rotation) extents, and LeftPort/RightPort are
// the top/bottom attachment points.
type Node struct {
	AST       circuit.Node
	Width     float64
	Height    float64
	LeftPort  Point // offset relative to Origin
	RightPort Point // offset relative to Origin
	Origin    Point
	Rotated   bool
	Children  []*Node
}

// AbsLeftPort returns the left port in absolute coordinates.
func (n *Node) AbsLeftPort() Point {
	return Point{X: n.Origin.X + n.LeftPort.X, Y: n.Origin.Y + n.LeftPort.Y}
}

// AbsRightPort returns the right port in absolute coordinates.
func (n *Node) AbsRightPort() Point {
	return Point{X: n.Origin.X + n.RightPort.X, Y: n.Origin.Y + n.RightPort.Y}
}
