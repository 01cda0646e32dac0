package circuit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Element Kinds
// =============================================================================

// ElementKind identifies the category of a circuit element.
type ElementKind int

// Element categories, one per letter of the notation.
const (
	Resistor ElementKind = iota
	Capacitor
	Inductor
	VoltageSource
	CurrentSource
	Impedance
	Open
)

// Letter returns the notation letter for the kind.
func (k ElementKind) Letter() string {
	switch k {
	case Resistor:
		return "R"
	case Capacitor:
		return "C"
	case Inductor:
		return "L"
	case VoltageSource:
		return "V"
	case CurrentSource:
		return "I"
	case Impedance:
		return "Z"
	case Open:
		return "O"
	default:
		return "?"
	}
}

// String returns the lowercase category name, e.g. "resistor". This is the
// form used in serialized schematics and DOT output.
func (k ElementKind) String() string {
	switch k {
	case Resistor:
		return "resistor"
	case Capacitor:
		return "capacitor"
	case Inductor:
		return "inductor"
	case VoltageSource:
		return "voltage-source"
	case CurrentSource:
		return "current-source"
	case Impedance:
		return "impedance"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// kindForLetter maps an element letter to its kind. Open is handled
// separately by the lexer and has no identifier.
func kindForLetter(c byte) (ElementKind, bool) {
	switch c {
	case 'R':
		return Resistor, true
	case 'C':
		return Capacitor, true
	case 'L':
		return Inductor, true
	case 'V':
		return VoltageSource, true
	case 'I':
		return CurrentSource, true
	case 'Z':
		return Impedance, true
	default:
		return 0, false
	}
}

// =============================================================================
// Topology Tree
// =============================================================================

// Node is the closed set of topology tree nodes: Element, SeriesGroup,
// ParallelGroup, and Twoport. The tree is immutable once built; each parent
// owns its children outright.
type Node interface {
	node()
	// Notation renders the node back into circmark form.
	Notation() string
}

// Element is a single two-legged circuit element, e.g. R1 or Zth1. ID is
// empty only for Open.
type Element struct {
	Kind ElementKind
	ID   string
}

// Label returns the display label, e.g. "R1". Open elements have no label.
func (e *Element) Label() string {
	if e.Kind == Open {
		return ""
	}
	return e.Kind.Letter() + e.ID
}

// Notation implements Node.
func (e *Element) Notation() string {
	if e.Kind == Open {
		return "O"
	}
	return e.Kind.Letter() + e.ID
}

// SeriesGroup is a left-to-right chain of two or more subcircuits connected
// end-to-end. Adjacent '+' terms at the same nesting level are flattened
// into a single group.
type SeriesGroup struct {
	Members []Node
}

// Notation implements Node.
func (g *SeriesGroup) Notation() string {
	parts := make([]string, len(g.Members))
	for i, m := range g.Members {
		parts[i] = m.Notation()
	}
	return "(" + strings.Join(parts, "+") + ")"
}

// ParallelGroup is two or more subcircuits connected at both ends to shared
// left/right rails. Adjacent '||' branches are flattened into a single group.
type ParallelGroup struct {
	Branches []Node
}

// Notation implements Node.
func (g *ParallelGroup) Notation() string {
	parts := make([]string, len(g.Branches))
	for i, b := range g.Branches {
		parts[i] = b.Notation()
	}
	return "(" + strings.Join(parts, "||") + ")"
}

// LinkKind distinguishes the two twoport link arrangements.
type LinkKind int

const (
	// Shunt connects the target between the signal path and the return rail.
	Shunt LinkKind = iota
	// Series inserts the target directly into the signal path.
	Series
)

// String returns "shunt" or "series".
func (k LinkKind) String() string {
	if k == Series {
		return "series"
	}
	return "shunt"
}

// Link is one element of a twoport chain: a target subcircuit placed either
// in the signal path ('-') or between the path and the return rail ('|').
type Link struct {
	Kind   LinkKind
	Target Node
}

// Twoport is a chain of shunt/series links describing a path between an
// input and output port pair, e.g. |V1-R1|O for a loaded source.
type Twoport struct {
	Links []Link
}

// Notation implements Node.
func (t *Twoport) Notation() string {
	var b strings.Builder
	for _, l := range t.Links {
		if l.Kind == Series {
			b.WriteByte('-')
		} else {
			b.WriteByte('|')
		}
		b.WriteString(l.Target.Notation())
	}
	return b.String()
}

func (*Element) node()       {}
func (*SeriesGroup) node()   {}
func (*ParallelGroup) node() {}
func (*Twoport) node()       {}

// =============================================================================
// JSON Serialization
// =============================================================================

// MarshalJSON emits a tagged object, e.g. {"type":"element","kind":"resistor","id":"1"}.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Kind string `json:"kind"`
		ID   string `json:"id,omitempty"`
	}{Type: "element", Kind: e.Kind.String(), ID: e.ID})
}

// MarshalJSON emits a tagged object with the ordered member list.
func (g *SeriesGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Members []Node `json:"members"`
	}{Type: "series", Members: g.Members})
}

// MarshalJSON emits a tagged object with the ordered branch list.
func (g *ParallelGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Branches []Node `json:"branches"`
	}{Type: "parallel", Branches: g.Branches})
}

// MarshalJSON emits a tagged object with the ordered link list.
func (t *Twoport) MarshalJSON() ([]byte, error) {
	type link struct {
		Kind   string `json:"kind"`
		Target Node   `json:"target"`
	}
	links := make([]link, len(t.Links))
	for i, l := range t.Links {
		links[i] = link{Kind: l.Kind.String(), Target: l.Target}
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Links []link `json:"links"`
	}{Type: "twoport", Links: links})
}

// CountElements returns the number of element leaves in the tree.
func CountElements(n Node) int {
	switch v := n.(type) {
	case *Element:
		return 1
	case *SeriesGroup:
		total := 0
		for _, m := range v.Members {
			total += CountElements(m)
		}
		return total
	case *ParallelGroup:
		total := 0
		for _, b := range v.Branches {
			total += CountElements(b)
		}
		return total
	case *Twoport:
		total := 0
		for _, l := range v.Links {
			total += CountElements(l.Target)
		}
		return total
	default:
		panic(fmt.Sprintf("circuit: unknown node type %T", n))
	}
}
