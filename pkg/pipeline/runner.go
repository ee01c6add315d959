package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/elecciones/pkg/cache"
	"github.com/matzehuels/elecciones/pkg/choropleth"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/observability"
)

// Geometry names the map outlines in cache keys.
const GeometryTiles = "tiles"

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the site use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger, dataset and map
// outlines - it doesn't store pipeline results. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Data   *election.Dataset

	// Boundaries are province outlines for maps; nil draws tiles.
	Boundaries *choropleth.Boundaries
	// Geometry identifies Boundaries in layout keys.
	Geometry string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, data *election.Dataset) *Runner {
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
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Data:     data,
		Geometry: GeometryTiles,
	}
}

// SetBoundaries draws maps from b. id names the outlines in cache keys,
// typically a hash of the GeoJSON file.
func (r *Runner) SetBoundaries(b *choropleth.Boundaries, id string) {
	r.Boundaries = b
	r.Geometry = id
	if b == nil {
		r.Geometry = GeometryTiles
	}
}

// Execute runs the complete resolve → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1+2: Resolve and layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.Items = layout.Items()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout",
		"chart", layout.Chart,
		"items", result.Stats.Items,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, layoutHash, renderHit, err := r.renderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve looks up the chart's data in the runner's dataset.
func (r *Runner) Resolve(opts Options) (Source, error) {
	return Resolve(r.Data, opts)
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
// Refresh skips the lookup but still stores the new layout.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, opts Options) (Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForResolve(); err != nil {
		return Layout{}, false, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, false, err
	}
	if r.Data == nil {
		return Layout{}, false, errors.New(errors.ErrCodeInternal, "no dataset loaded")
	}

	cacheKey := r.Keyer.LayoutKey(r.Data.Hash(), opts.LayoutKeyOpts(r.Geometry))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	src, err := r.Resolve(opts)
	if err != nil {
		return Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Chart, sourceItems(src, opts))
	start := time.Now()
	layout, err := GenerateLayout(src, mapShapes(r.Boundaries, opts), opts)
	hooks.OnLayoutComplete(ctx, opts.Chart, time.Since(start), err)
	if err != nil {
		return Layout{}, false, err
	}

	if data, err := MarshalLayout(layout); err == nil {
		r.store(ctx, "layout", cacheKey, data, cache.TTLLayout)
	}

	return layout, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, opts Options) (Layout, error) {
	layout, _, err := r.GenerateLayoutWithCacheInfo(ctx, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout Layout, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.renderWithCacheInfo(ctx, layout, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, layout Layout, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	opts.Chart = layout.Chart
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	// Artifact keys derive from the layout bytes, not from the request.
	layoutData, err := MarshalLayout(layout)
	if err != nil {
		return nil, "", false, err
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, layoutHash, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, layout.Chart, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, layout.Chart, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", cacheKey, data, cache.TTLArtifact)
	}

	return rendered, layoutHash, false, nil
}

// store writes to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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

// sourceItems is the number of elements a layout of src will draw.
func sourceItems(src Source, opts Options) int {
	switch opts.Chart {
	case ChartHemicycle:
		return src.Result.TotalSeats
	case ChartMap:
		return len(src.Provinces)
	}
	return len(src.Result.Parties)
}
