// Package pkg provides the core libraries for circmark schematic rendering.
//
// # Overview
//
// Circmark turns a compact textual circuit notation like (R1+R2||R3) into a
// two-dimensional schematic diagram. The pkg directory is organized into
// four main areas:
//
//  1. [circuit] - Notation parsing (lexer, parser, topology tree)
//  2. [layout] / [symbols] / [schematic] - Geometry (sizing, positioning, serialization)
//  3. [render] - Output formats (SVG schematics, Graphviz topology views)
//  4. [pipeline] / [cache] - Orchestration and content-hash caching
//
// # Architecture
//
// The typical data flow through circmark:
//
//	circmark notation
//	         ↓
//	    [circuit] package (lex + parse into a topology tree)
//	         ↓
//	    [layout] package (two-pass sizing and positioning)
//	         ↓
//	    [schematic] package (flattened, serializable geometry)
//	         ↓
//	    [render] package (SVG / DOT / PNG output)
//
// # Quick Start
//
// Parse notation and render an SVG:
//
//	import (
//	    "github.com/circmark/circmark/pkg/circuit"
//	    "github.com/circmark/circmark/pkg/layout"
//	    "github.com/circmark/circmark/pkg/render"
//	    "github.com/circmark/circmark/pkg/schematic"
//	)
//
//	// 1. Parse the notation
//	doc, err := circuit.Parse("(R1+R2||R3)")
//	if err != nil {
//	    return err
//	}
//
//	// 2. Compute the layout
//	plan := layout.Compute(doc)
//
//	// 3. Flatten to the serialization format
//	s := schematic.FromPlan(plan)
//
//	// 4. Render to SVG
//	svg, err := render.RenderSVG(s)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "(R1+R2||R3)",
//	    Formats: []string{"svg"},
//	})
//
// # Main Packages
//
// [circuit] - The notation front end: tokens, lexer, recursive descent
// parser, and the immutable topology tree (elements, series groups,
// parallel groups, twoport chains). Errors carry byte positions.
//
// [symbols] - Canonical bounding boxes and port positions for each element
// category. The single source of truth for symbol dimensions.
//
// [layout] - The two-pass layout engine: a bottom-up sizing pass followed
// by a top-down positioning pass that places boxes, wires, and junctions.
//
// [schematic] - Serialization boundary between layout and rendering. A
// positioned schematic is plain data (symbols, wires, junctions) with JSON
// round-trip fidelity.
//
// [render] - Output adapters: themed SVG schematics and Graphviz DOT/PNG
// topology views. Consumes schematics and trees, never notation.
//
// [pipeline] - Complete parse → layout → render pipeline used by both the
// CLI and the HTTP API, with per-stage content-hash caching.
//
// [cache] - Cache backends (file, Redis, MongoDB, null) behind one
// interface, plus key generation.
//
// [errors] - Structured error codes shared by the CLI and API.
//
// [observability] - Optional instrumentation hooks for pipeline, cache,
// and HTTP events.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/circuit/...  # Specific package
//
// [circuit]: https://pkg.go.dev/github.com/circmark/circmark/pkg/circuit
// [symbols]: https://pkg.go.dev/github.com/circmark/circmark/pkg/symbols
// [layout]: https://pkg.go.dev/github.com/circmark/circmark/pkg/layout
// [schematic]: https://pkg.go.dev/github.com/circmark/circmark/pkg/schematic
// [render]: https://pkg.go.dev/github.com/circmark/circmark/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/circmark/circmark/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/circmark/circmark/pkg/cache
// [errors]: https://pkg.go.dev/github.com/circmark/circmark/pkg/errors
// [observability]: https://pkg.go.dev/github.com/circmark/circmark/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/circmark/circmark/pkg/buildinfo
package pkg
