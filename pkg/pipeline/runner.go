package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/circmark/circmark/pkg/cache"
	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/observability"
	"github.com/circmark/circmark/pkg/schematic"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse. Always runs - it is cheap and its errors carry the
	// positions callers report.
	parseStart := time.Now()
	doc, err := Parse(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.SourceHash = cache.Hash([]byte(opts.Source))
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ElementCount = circuit.CountElements(doc)

	r.Logger.Info("parsed document",
		"elements", result.Stats.ElementCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	s, layoutHit, err := r.SchematicWithCacheInfo(ctx, doc, result.SourceHash, opts)
	if err != nil {
		return nil, err
	}
	result.Schematic = s
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.WireCount = len(s.Wires)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed schematic",
		"symbols", len(s.Symbols),
		"wires", len(s.Wires),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, s, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SchematicWithCacheInfo computes the positioned schematic with caching and
// returns cache hit info. sourceHash is the content hash of the notation.
func (r *Runner) SchematicWithCacheInfo(ctx context.Context, doc circuit.Node, sourceHash string, opts Options) (schematic.Schematic, bool, error) {
	cacheKey := r.Keyer.SchematicKey(sourceHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := schematic.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "schematic")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "schematic")
	}

	s := ComputeSchematic(ctx, doc)

	if data, err := schematic.Marshal(s); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSchematic)
		observability.Cache().OnCacheSet(ctx, "schematic", len(data))
	}

	return s, false, nil
}

// Schematic is a convenience wrapper that discards the cache hit info.
func (r *Runner) Schematic(ctx context.Context, doc circuit.Node, sourceHash string, opts Options) (schematic.Schematic, error) {
	s, _, err := r.SchematicWithCacheInfo(ctx, doc, sourceHash, opts)
	return s, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc circuit.Node, s schematic.Schematic, opts Options) (map[string][]byte, bool, error) {
	data, err := schematic.Marshal(s)
	if err != nil {
		return nil, false, err
	}
	schematicHash := cache.Hash(data)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(schematicHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, doc, s, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(schematicHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
