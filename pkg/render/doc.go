// Package render turns positioned schematics into output artifacts.
//
// # Overview
//
// The schematic renderer consumes the serialized geometry from package
// schematic — never tokens or source text — and emits SVG markup with the
// symbol artwork for each element category ([RenderSVG]). A separate
// structural view renders the topology tree itself as Graphviz DOT ([ToDOT]),
// with SVG/PNG rasterization via goccy/go-graphviz.
//
// # Themes
//
// SVG appearance (stroke, colors, font, margin) is controlled by a [Theme],
// optionally loaded from a TOML file. Themes bind at this boundary only:
// geometry is computed before any theme is consulted, so the same schematic
// renders identically under every theme modulo styling.
package render
