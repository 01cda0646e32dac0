package pipeline

import (
	"context"
	"time"

	"github.com/circmark/circmark/pkg/circuit"
	apperrors "github.com/circmark/circmark/pkg/errors"
	"github.com/circmark/circmark/pkg/observability"
	"github.com/circmark/circmark/pkg/render"
	"github.com/circmark/circmark/pkg/schematic"
)

// Render generates output artifacts in the requested formats. The schematic
// formats (svg, json) consume the positioned geometry; the topology formats
// (dot, png) consume the tree directly.
func Render(ctx context.Context, doc circuit.Node, s schematic.Schematic, opts Options) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, doc, s, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, doc circuit.Node, s schematic.Schematic, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(s, render.WithTheme(opts.theme()))
		case FormatJSON:
			data, err = schematic.Marshal(s)
		case FormatDOT:
			data = []byte(render.ToDOT(doc))
		case FormatPNG:
			data, err = render.RenderDOTPNG(ctx, render.ToDOT(doc))
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
