package layout

import (
	"reflect"
	"testing"

	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/symbols"
)

func computePlan(t *testing.T, src string) *Plan {
	t.Helper()
	doc, err := circuit.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Compute(doc)
}

func TestComputeElement(t *testing.T) {
	p := computePlan(t, "R1")

	want := symbols.Metrics(circuit.Resistor)
	if p.Width != want.W || p.Height != want.H {
		t.Errorf("plan size: got %gx%g, want %gx%g", p.Width, p.Height, want.W, want.H)
	}
	if got := p.Root.AbsLeftPort(); got != (Point{X: 0, Y: want.H / 2}) {
		t.Errorf("left port: got %v", got)
	}
	if got := p.Root.AbsRightPort(); got != (Point{X: want.W, Y: want.H / 2}) {
		t.Errorf("right port: got %v", got)
	}
	if len(p.Wires) != 0 || len(p.Junctions) != 0 {
		t.Errorf("element plan has %d wires, %d junctions; want none", len(p.Wires), len(p.Junctions))
	}
}

func TestComputeSeriesSizing(t *testing.T) {
	// Widths add, height is the tallest member (the 80-high source).
	p := computePlan(t, "(R1+V1+C1)")

	if p.Width != 600 {
		t.Errorf("width: got %g, want 600", p.Width)
	}
	if p.Height != 80 {
		t.Errorf("height: got %g, want 80", p.Height)
	}

	// Shorter members are vertically centered.
	r := p.Root.Children[0]
	if r.Origin.Y != 10 {
		t.Errorf("resistor origin y: got %g, want 10", r.Origin.Y)
	}
	v := p.Root.Children[1]
	if v.Origin.Y != 0 {
		t.Errorf("source origin y: got %g, want 0", v.Origin.Y)
	}
}

func TestComputeSeriesPortsAbut(t *testing.T) {
	p := computePlan(t, "(R1+V1+C1)")
	for i := 0; i+1 < len(p.Root.Children); i++ {
		a, b := p.Root.Children[i], p.Root.Children[i+1]
		if a.AbsRightPort() != b.AbsLeftPort() {
			t.Errorf("member %d right port %v != member %d left port %v",
				i, a.AbsRightPort(), i+1, b.AbsLeftPort())
		}
	}
}

func TestComputeParallelSizing(t *testing.T) {
	p := computePlan(t, "(R1||R2||R3)")

	if p.Width != 200 {
		t.Errorf("width: got %g, want 200", p.Width)
	}
	wantH := 3*60 + 2*BranchSpacing
	if p.Height != wantH {
		t.Errorf("height: got %g, want %g", p.Height, wantH)
	}

	// Group ports tap the buses at mid-height.
	if got := p.Root.AbsLeftPort(); got != (Point{X: 0, Y: wantH / 2}) {
		t.Errorf("left port: got %v", got)
	}

	// Equal-width branches need no stub wires: just the two buses.
	if len(p.Wires) != 2 {
		t.Errorf("wires: got %d, want 2", len(p.Wires))
	}
	if len(p.Junctions) != 2 {
		t.Errorf("junctions: got %d, want 2", len(p.Junctions))
	}
}

func TestComputeParallelStubWires(t *testing.T) {
	// The single-element branch is half the width of the series branch, so
	// it needs a stub wire to reach the right bus.
	p := computePlan(t, "((R1+R2)||R3)")

	if p.Width != 400 {
		t.Errorf("width: got %g, want 400", p.Width)
	}
	if len(p.Wires) != 3 {
		t.Fatalf("wires: got %d, want 3 (two buses + one stub)", len(p.Wires))
	}

	stub := p.Wires[2]
	r3 := p.Root.Children[1]
	wantY := r3.Origin.Y + r3.Height/2
	if stub.From.Y != wantY || stub.To.Y != wantY {
		t.Errorf("stub wire y: got %g-%g, want %g", stub.From.Y, stub.To.Y, wantY)
	}
	if stub.From.X != 200 || stub.To.X != 400 {
		t.Errorf("stub wire x: got %g-%g, want 200-400", stub.From.X, stub.To.X)
	}
}

func TestComputeTwoport(t *testing.T) {
	p := computePlan(t, "|V1-R1|O")

	// Shunt slots flank the series resistor, each as wide as its target's
	// rotated extent: 80 for the source, 60 for the open terminals.
	wantW := 80.0 + 200 + 60
	if p.Width != wantW {
		t.Errorf("width: got %g, want %g", p.Width, wantW)
	}

	// Signal path height is the series resistor; the deepest shunt hangs
	// its full 200-unit width below it, then the rail clearance.
	wantH := 60 + 200 + RailClearance
	if p.Height != wantH {
		t.Errorf("height: got %g, want %g", p.Height, wantH)
	}
}

func TestComputeTwoportShuntRotation(t *testing.T) {
	p := computePlan(t, "|V1-R1|O")

	v := p.Root.Children[0]
	if !v.Rotated {
		t.Fatal("shunt target not rotated")
	}
	// Placed extents are the swapped canonical source box.
	if v.Width != 80 || v.Height != 200 {
		t.Errorf("rotated size: got %gx%g, want 80x200", v.Width, v.Height)
	}
	// Ports move to top and bottom edges.
	if v.LeftPort != (Point{X: v.Width / 2, Y: 0}) {
		t.Errorf("rotated left port: got %v", v.LeftPort)
	}
	if v.RightPort != (Point{X: v.Width / 2, Y: v.Height}) {
		t.Errorf("rotated right port: got %v", v.RightPort)
	}

	r := p.Root.Children[1]
	if r.Rotated {
		t.Error("series target must not be rotated")
	}
}

func TestComputeTwoportShuntStubs(t *testing.T) {
	// The vertical stub wires must end exactly at the rotated symbol's top
	// and bottom edges.
	p := computePlan(t, "|V1-R1|O")

	v := p.Root.Children[0]
	top := v.Origin.Y
	bottom := v.Origin.Y + v.Height
	cx := v.Origin.X + v.Width/2

	var toTop, fromBottom bool
	for _, w := range p.Wires {
		if w.From.X == cx && w.To.X == cx {
			if w.To.Y == top {
				toTop = true
			}
			if w.From.Y == bottom {
				fromBottom = true
			}
		}
	}
	if !toTop {
		t.Error("no stub wire reaching the shunt symbol's top edge")
	}
	if !fromBottom {
		t.Error("no stub wire leaving the shunt symbol's bottom edge")
	}
}

func TestComputeTwoportShuntGroup(t *testing.T) {
	// A whole group as shunt target: the group's geometry, wires, and
	// junctions all rotate into the parent plan.
	p := computePlan(t, "|V1-R1|(C1||C2)")

	shunt := p.Root.Children[2]
	if !shunt.Rotated {
		t.Fatal("group shunt target not rotated")
	}
	// Group is 200 wide, 140 high before rotation.
	if shunt.Width != 140 || shunt.Height != 200 {
		t.Errorf("rotated group size: got %gx%g, want 140x200", shunt.Width, shunt.Height)
	}
	for _, c := range shunt.Children {
		if !c.Rotated {
			t.Error("group shunt child not rotated")
		}
	}
	// The parallel group's two junctions survive the rotation.
	if len(p.Junctions) < 2 {
		t.Errorf("junctions: got %d, want at least 2", len(p.Junctions))
	}
}

func TestComputePrecedenceLayout(t *testing.T) {
	// (R1||R2+R3): parallel pair followed in series by R3.
	p := computePlan(t, "(R1||R2+R3)")

	if p.Width != 400 {
		t.Errorf("width: got %g, want 400", p.Width)
	}
	wantH := 2*60 + BranchSpacing
	if p.Height != wantH {
		t.Errorf("height: got %g, want %g", p.Height, wantH)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	doc, err := circuit.Parse("|V1-(R1+L1||C1)|O")
	if err != nil {
		t.Fatal(err)
	}
	a := Compute(doc)
	b := Compute(doc)
	if !reflect.DeepEqual(a, b) {
		t.Error("two Compute calls over the same tree differ")
	}
}

func TestComputeGeometryWithinBounds(t *testing.T) {
	sources := []string{
		"R1",
		"(R1+R2||R3)",
		"((R4+R5)||R6)",
		"|V1-R1|C1-R2|O",
		"|V1-(R1+L1||C1)|O",
	}
	for _, src := range sources {
		p := computePlan(t, src)
		var walk func(n *Node)
		walk = func(n *Node) {
			if n.Origin.X < 0 || n.Origin.Y < 0 ||
				n.Origin.X+n.Width > p.Width || n.Origin.Y+n.Height > p.Height {
				t.Errorf("%q: node %gx%g at %v escapes plan %gx%g",
					src, n.Width, n.Height, n.Origin, p.Width, p.Height)
			}
			for _, c := range n.Children {
				walk(c)
			}
		}
		walk(p.Root)

		for _, w := range p.Wires {
			for _, pt := range []Point{w.From, w.To} {
				if pt.X < 0 || pt.Y < 0 || pt.X > p.Width || pt.Y > p.Height {
					t.Errorf("%q: wire point %v escapes plan %gx%g", src, pt, p.Width, p.Height)
				}
			}
		}
	}
}
