package render

import (
	"bytes"
	"fmt"

	"github.com/circmark/circmark/pkg/schematic"
)

// Option configures SVG rendering.
type Option func(*svgConfig)

type svgConfig struct {
	theme Theme
}

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option {
	return func(c *svgConfig) {
		c.theme = t
	}
}

// =============================================================================
// SVG Rendering
// =============================================================================

// Symbol artwork dimensions, in schematic units. The artwork for each element
// is drawn inside the canonical box from package symbols; these constants
// describe the body within that box.
const (
	resistorBodyW = 70.0
	resistorBodyH = 20.0
	capPlateGap   = 8.0  // half the gap between capacitor plates
	capPlateHalf  = 20.0 // half the plate length
	inductorHalf  = 45.0 // half the winding span
	inductorR     = 15.0 // single winding arc radius
	sourceR       = 25.0 // source circle radius
	openR         = 5.0  // open terminal circle radius
	junctionR     = 3.0  // junction dot radius
	labelRise     = 18.0 // label baseline above the symbol center line
)

// RenderSVG renders a schematic to SVG markup. The default theme is used
// unless overridden with WithTheme.
func RenderSVG(s schematic.Schematic, opts ...Option) ([]byte, error) {
	cfg := svgConfig{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.theme.Validate(); err != nil {
		return nil, err
	}

	t := cfg.theme
	w := s.Width + 2*t.Margin
	h := s.Height + 2*t.Margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(w), num(h), num(w), num(h))
	if t.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", t.Background)
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s %s)" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round">`+"\n",
		num(t.Margin), num(t.Margin), t.Stroke, num(t.StrokeWidth))

	for _, wire := range s.Wires {
		fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(wire.X1), num(wire.Y1), num(wire.X2), num(wire.Y2))
	}
	for _, sym := range s.Symbols {
		drawSymbol(&buf, sym, t)
	}
	for _, j := range s.Junctions {
		fmt.Fprintf(&buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="none"/>`+"\n",
			num(j.X), num(j.Y), num(junctionR), t.Stroke)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

// drawSymbol emits the artwork for one placed symbol. Rotated symbols are
// drawn in their unrotated frame inside a quarter-turn group transform that
// maps the frame onto the placed bounding box.
func drawSymbol(buf *bytes.Buffer, sym schematic.Symbol, t Theme) {
	w, h := sym.Width, sym.Height
	x, y := sym.X, sym.Y
	if sym.Rotated {
		// rotate(90) about the origin maps (lx, ly) to (−ly, lx); with
		// the translation the unrotated w×h frame lands exactly on the
		// placed box, turned clockwise.
		fmt.Fprintf(buf, `    <g transform="translate(%s %s) rotate(90)">`+"\n",
			num(sym.X+sym.Width), num(sym.Y))
		w, h = sym.Height, sym.Width
		x, y = 0, 0
	}

	cx := x + w/2
	cy := y + h/2

	switch sym.Kind {
	case schematic.KindResistor, schematic.KindImpedance:
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(x), num(cy), num(cx-resistorBodyW/2), num(cy))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx+resistorBodyW/2), num(cy), num(x+w), num(cy))
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			num(cx-resistorBodyW/2), num(cy-resistorBodyH/2), num(resistorBodyW), num(resistorBodyH))

	case schematic.KindCapacitor:
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(x), num(cy), num(cx-capPlateGap), num(cy))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx+capPlateGap), num(cy), num(x+w), num(cy))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx-capPlateGap), num(cy-capPlateHalf), num(cx-capPlateGap), num(cy+capPlateHalf))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx+capPlateGap), num(cy-capPlateHalf), num(cx+capPlateGap), num(cy+capPlateHalf))

	case schematic.KindInductor:
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(x), num(cy), num(cx-inductorHalf), num(cy))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx+inductorHalf), num(cy), num(x+w), num(cy))
		// Three half-circle windings left to right.
		px := cx - inductorHalf
		for i := 0; i < 3; i++ {
			fmt.Fprintf(buf, `    <path d="M %s %s A %s %s 0 0 1 %s %s"/>`+"\n",
				num(px), num(cy), num(inductorR), num(inductorR), num(px+2*inductorR), num(cy))
			px += 2 * inductorR
		}

	case schematic.KindVoltageSource:
		drawSourceLeads(buf, x, cx, cy, w)
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(cx), num(cy), num(sourceR))
		// Plus on the left terminal side, minus on the right.
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx-14), num(cy), num(cx-6), num(cy))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx-10), num(cy-4), num(cx-10), num(cy+4))
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx+6), num(cy), num(cx+14), num(cy))

	case schematic.KindCurrentSource:
		drawSourceLeads(buf, x, cx, cy, w)
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(cx), num(cy), num(sourceR))
		// Arrow in the direction of flow, left to right.
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(cx-14), num(cy), num(cx+14), num(cy))
		fmt.Fprintf(buf, `    <path d="M %s %s L %s %s L %s %s" fill="%s" stroke="none"/>`+"\n",
			num(cx+14), num(cy), num(cx+6), num(cy-5), num(cx+6), num(cy+5), t.Stroke)

	case schematic.KindOpen:
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(x+openR), num(cy), num(openR))
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(x+w-openR), num(cy), num(openR))

	default:
		// Unknown kinds render as a labeled box so stale schematics stay
		// legible instead of vanishing.
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			num(x), num(y), num(w), num(h))
	}

	if t.ShowLabels && sym.Label != "" {
		fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s" stroke="none">%s</text>`+"\n",
			num(cx), num(cy-labelRise), t.FontFamily, num(t.FontSize), t.Stroke, sym.Label)
	}

	if sym.Rotated {
		buf.WriteString("    </g>\n")
	}
}

// drawSourceLeads emits the two horizontal leads flanking a source circle.
func drawSourceLeads(buf *bytes.Buffer, x, cx, cy, w float64) {
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		num(x), num(cy), num(cx-sourceR), num(cy))
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		num(cx+sourceR), num(cy), num(x+w), num(cy))
}

// num formats a coordinate compactly, trimming trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
