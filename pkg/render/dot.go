package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/circmark/circmark/pkg/circuit"
	apperrors "github.com/circmark/circmark/pkg/errors"
)

// =============================================================================
// Topology View
// =============================================================================

// ToDOT converts a topology tree to Graphviz DOT format. The result is a
// structural view of the notation, not a schematic: elements are leaves,
// groups are labeled interior nodes, and twoport links carry their kind on
// the edge. Render it with [RenderDOTSVG] or [RenderDOTPNG].
func ToDOT(doc circuit.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf}
	w.walk(doc)

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	next int
}

// walk emits the node and its subtree, returning the node's DOT identifier.
func (w *dotWriter) walk(n circuit.Node) string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++

	switch v := n.(type) {
	case *circuit.Element:
		fmt.Fprintf(w.buf, "  %s [label=%q, fillcolor=lightyellow];\n", id, elementLabel(v))

	case *circuit.SeriesGroup:
		fmt.Fprintf(w.buf, "  %s [label=\"series\"];\n", id)
		for _, m := range v.Members {
			fmt.Fprintf(w.buf, "  %s -> %s;\n", id, w.walk(m))
		}

	case *circuit.ParallelGroup:
		fmt.Fprintf(w.buf, "  %s [label=\"parallel\"];\n", id)
		for _, b := range v.Branches {
			fmt.Fprintf(w.buf, "  %s -> %s;\n", id, w.walk(b))
		}

	case *circuit.Twoport:
		fmt.Fprintf(w.buf, "  %s [label=\"twoport\", fillcolor=lightgrey];\n", id)
		for _, l := range v.Links {
			fmt.Fprintf(w.buf, "  %s -> %s [label=%q];\n", id, w.walk(l.Target), l.Kind.String())
		}
	}

	return id
}

func elementLabel(el *circuit.Element) string {
	if el.Kind == circuit.Open {
		return "open"
	}
	return fmt.Sprintf("%s\n%s", el.Label(), el.Kind.String())
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderDOTPNG renders a DOT graph to PNG using Graphviz.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "render DOT")
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element into a
// zero-origin pixel viewBox so the output embeds predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
