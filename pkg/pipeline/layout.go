package pipeline

import (
	"context"
	"time"

	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/layout"
	"github.com/circmark/circmark/pkg/observability"
	"github.com/circmark/circmark/pkg/schematic"
)

// ComputeSchematic runs the layout engine and flattens the result into the
// serialization format the render and cache layers consume.
func ComputeSchematic(ctx context.Context, doc circuit.Node) schematic.Schematic {
	observability.Pipeline().OnLayoutStart(ctx, circuit.CountElements(doc))
	start := time.Now()

	plan := layout.Compute(doc)
	s := schematic.FromPlan(plan)

	observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), nil)
	return s
}
