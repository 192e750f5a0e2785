package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/boxbake/pkg/cache"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/observability"
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

// Execute runs the complete load → bake → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if opts.HasSize() {
		doc = doc.WithSize(opts.Width, opts.Height)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = CountNodes(doc)
	if data, err := layoutfile.Marshal(doc, layoutfile.FormatJSON); err == nil {
		result.DocHash = cache.Hash(data)
	}

	r.Logger.Info("loaded document",
		"kind", doc.Kind(),
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Bake
	bakeStart := time.Now()
	res, bakeHit, err := r.BakeWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}
	result.Bake = res
	result.Stats.BakeTime = time.Since(bakeStart)
	result.Stats.Placed = len(res.Nodes)
	result.CacheInfo.BakeHit = bakeHit

	r.Logger.Info("baked layout",
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"placed", len(res.Nodes),
		"cached", bakeHit,
		"duration", result.Stats.BakeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
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

// BakeWithCacheInfo bakes doc with caching and returns cache hit info.
// opts.Width and opts.Height, when set, resize the document first.
func (r *Runner) BakeWithCacheInfo(ctx context.Context, doc layoutfile.Document, opts Options) (*layoutfile.Result, bool, error) {
	if err := opts.ValidateForBake(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	if opts.HasSize() {
		doc = doc.WithSize(opts.Width, opts.Height)
	}

	// Compute cache key
	docData, err := layoutfile.Marshal(doc, layoutfile.FormatJSON)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	cacheKey := r.Keyer.BakeKey(cache.Hash(docData), opts.BakeKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			res, err := layoutfile.ReadResult(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "bake")
				return res, true, nil // Cache hit
			}
			// If deserialization fails, fall through to rebake
		}
		observability.Cache().OnCacheMiss(ctx, "bake")
	}

	// Bake
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnBakeStart(ctx, doc.Kind(), CountNodes(doc))
	res, err := doc.Bake()
	placed := 0
	if res != nil {
		placed = len(res.Nodes)
	}
	hooks.OnBakeComplete(ctx, doc.Kind(), placed, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("baked", "name", doc.Name(), "kind", doc.Kind(), "placed", placed)

	// Cache the result
	var buf bytes.Buffer
	if err := layoutfile.WriteResult(res, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLBake); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "bake", buf.Len())
		}
	}

	return res, false, nil // Cache miss
}

// Bake is a convenience wrapper that calls BakeWithCacheInfo and discards the cache hit info.
func (r *Runner) Bake(ctx context.Context, doc layoutfile.Document, opts Options) (*layoutfile.Result, error) {
	res, _, err := r.BakeWithCacheInfo(ctx, doc, opts)
	return res, err
}

// BakeSizes bakes doc once per size, concurrently. The results are in the
// order of sizes. The first failure cancels the remaining bakes.
func (r *Runner) BakeSizes(ctx context.Context, doc layoutfile.Document, sizes []Size, opts Options) ([]*layoutfile.Result, error) {
	results := make([]*layoutfile.Result, len(sizes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, size := range sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := opts
			o.Width, o.Height = size.Width, size.Height
			res, err := r.Bake(gctx, doc, o)
			if err != nil {
				return fmt.Errorf("bake %s: %w", size, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc layoutfile.Document, res *layoutfile.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the bake and, for tree formats, the document
	var key bytes.Buffer
	if err := layoutfile.WriteResult(res, &key); err != nil {
		return nil, false, fmt.Errorf("serialize result for cache key: %w", err)
	}
	if docData, err := layoutfile.Marshal(doc, layoutfile.FormatJSON); err == nil {
		key.Write(docData)
	}
	cacheKeyHash := cache.Hash(key.Bytes())

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(doc, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc layoutfile.Document, res *layoutfile.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, res, opts)
	return artifacts, err
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
