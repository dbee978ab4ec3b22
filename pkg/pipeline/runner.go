package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/render/sink"
	"github.com/matzehuels/mondrian/pkg/stats"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	in, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Input = in
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = in.Dataset.Len()
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"name", in.Dataset.Name,
		"records", in.Dataset.Len(),
		"invalid", len(in.Dataset.Errors),
		"relations", len(in.Relations),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Blocks = len(layout.Blocks)
	result.Stats.Rejected = len(layout.Rejected)
	result.Stats.Connectors = len(layout.Connectors)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"blocks", len(layout.Blocks),
		"rejected", len(layout.Rejected),
		"connectors", len(layout.Connectors),
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"kind", opts.Kind,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads and parses the inputs with caching and returns
// cache hit info. Only the dataset parse is cached; relations and pathway
// info are applied afterwards.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (in *Input, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	src, err := readSource(opts)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, src.name)
	defer func() {
		records, invalid := 0, 0
		if in != nil {
			records, invalid = in.Dataset.Len(), len(in.Dataset.Errors)
		}
		observability.Pipeline().OnLoadComplete(ctx, src.name, records, invalid, time.Since(start), err)
	}()

	hash := cache.Hash(src.dataset)
	cacheKey := r.Keyer.DatasetKey(hash)

	if !opts.Refresh {
		if data, ok := r.get(ctx, "dataset", cacheKey); ok {
			if ds, err := unmarshalDataset(data); err == nil {
				ds.Name = src.name
				in, err := attach(ds, src, hash)
				return in, err == nil, err
			}
		}
	}

	ds, err := parseDataset(src.dataset, src.name)
	if err != nil {
		return nil, false, err
	}
	if data, err := marshalDataset(ds); err == nil {
		r.set(ctx, "dataset", cacheKey, data, cache.TTLDataset)
	}

	in, err = attach(ds, src, hash)
	if err != nil {
		return nil, false, err
	}
	return in, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*Input, error) {
	in, _, err := r.LoadWithCacheInfo(ctx, opts)
	return in, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, in *Input, opts Options) (l mondrian.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return mondrian.Layout{}, false, err
	}
	if opts.Title == "" {
		opts.Title = in.Dataset.Name
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, in.Dataset.Name, in.Dataset.Len())
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, in.Dataset.Name, len(l.Blocks), time.Since(start), err)
	}()

	cacheKey := r.Keyer.LayoutKey(in.Hash, opts.LayoutKeyOpts(in))

	if !opts.Refresh {
		if data, ok := r.get(ctx, "layout", cacheKey); ok {
			if cached, err := mondrian.UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
			// Undecodable entries fall through to a recompute
		}
	}

	l, err = GenerateLayout(in, opts)
	if err != nil {
		return mondrian.Layout{}, false, err
	}
	for _, rej := range l.Rejected {
		opts.Logger.Warn("skipped pathway", "row", rej.Row, "reason", rej.Message)
	}

	if data, err := mondrian.MarshalLayout(l); err == nil {
		r.set(ctx, "layout", cacheKey, data, cache.TTLLayout)
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, in *Input, opts Options) (mondrian.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, in, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l mondrian.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Kind, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Kind, opts.Formats, time.Since(start), err)
	}()

	layoutData, err := mondrian.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	cached := make(map[string][]byte)
	for _, format := range opts.Formats {
		data, ok := r.get(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			break
		}
		cached[format] = data
	}
	if len(cached) == len(opts.Formats) {
		return cached, true, nil
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l mondrian.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Summarize loads a dataset and computes its statistics. Hubs are ranked
// over all relations between known pathways, not only the drawn ones.
func (r *Runner) Summarize(ctx context.Context, opts Options, topN int) (stats.Summary, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return stats.Summary{}, err
	}
	in, err := r.Load(ctx, opts)
	if err != nil {
		return stats.Summary{}, err
	}
	rels := in.Selected(len(in.Relations) + 1)
	return stats.Summarize(in.Dataset, opts.Thresholds, rels, topN), nil
}

// Canvas lays out several datasets and renders them side by side in a
// rows×cols SVG grid. Each entry of maps is run through load and layout
// with its own options and is titled with its dataset name unless set.
// The render options of the first entry apply to all.
func (r *Runner) Canvas(ctx context.Context, maps []Options, rows, cols int) ([]byte, error) {
	if len(maps) == 0 {
		return sink.RenderCanvas(nil, rows, cols)
	}
	layouts := make([]mondrian.Layout, 0, len(maps))
	for _, opts := range maps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, err := r.Load(ctx, opts)
		if err != nil {
			return nil, err
		}
		l, err := r.Layout(ctx, in, opts)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}

	first := maps[0]
	first.SetRenderDefaults()
	svgOpts, err := SVGOptions(first)
	if err != nil {
		return nil, err
	}
	return sink.RenderCanvas(layouts, rows, cols, svgOpts...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key and reports hit or miss to the cache hooks. Backend errors
// count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes key; failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
