package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/observability"
	"github.com/matzehuels/graphstat/pkg/stats"

	errs "github.com/matzehuels/graphstat/pkg/errors"
	pkgio "github.com/matzehuels/graphstat/pkg/io"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
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

// ExecuteFile reads the edge list at path and runs Execute on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return r.Execute(ctx, data, opts)
}

// Execute runs load → analyze over data with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{DataHash: cache.Hash(data)}
	key := r.Keyer.StatsKey(result.DataHash, opts.StatsKeyOpts())

	if r.useCache(opts) && !opts.Refresh {
		if cached, ok := r.cacheGet(ctx, key, cache.KeyTypeStats); ok {
			if s, err := stats.Unmarshal(cached); err == nil {
				r.Logger.Debug("stats cache hit", "source", opts.Source, "key", key)
				result.Stats = s
				result.CacheInfo.StatsHit = true
				return result, nil
			}
			// Undecodable entry: fall through to recompute
		}
	}

	loadStart := time.Now()
	imp, err := r.Load(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = imp.Graph
	result.Lines = imp.Lines
	result.Malformed = imp.Malformed
	result.Timings.Load = time.Since(loadStart)

	r.Logger.Info("loaded graph",
		"nodes", imp.Graph.NodeCount(),
		"edges", imp.Graph.EdgeCount(),
		"ignored", imp.Graph.Ignored(),
		"malformed", imp.Malformed,
		"duration", result.Timings.Load)

	analyzeStart := time.Now()
	s, err := r.Analyze(ctx, imp.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Stats = s
	result.Timings.Analyze = time.Since(analyzeStart)

	r.Logger.Info("computed stats",
		"diameter", s.DiameterString(),
		"method", s.Method,
		"searches", s.Searches,
		"duration", result.Timings.Analyze)

	if r.useCache(opts) {
		if encoded, err := stats.Marshal(s); err == nil {
			r.cacheSet(ctx, key, cache.KeyTypeStats, encoded, cache.TTLStats)
		}
	}
	return result, nil
}

// Load parses data into a graph.
func (r *Runner) Load(ctx context.Context, data []byte, opts Options) (*pkgio.ImportResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source, opts.Format)
	start := time.Now()

	imp, err := pkgio.Load(bytes.NewReader(data), opts.ImportOptions())
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Source, imp.Graph.NodeCount(), imp.Graph.EdgeCount(), time.Since(start), nil)
	return imp, nil
}

// Analyze computes statistics for g. Cancelling ctx stops the diameter
// search between origins.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph, opts Options) (*stats.Stats, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, opts.Method, g.NodeCount())
	start := time.Now()

	s, err := stats.Compute(ctx, g, opts.StatsOptions())
	diam := -1
	if err == nil && s.Diameter != nil {
		diam = *s.Diameter
	}
	hooks.OnAnalyzeComplete(ctx, opts.Method, diam, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// ReadFile reads an edge-list file, mapping a missing file to
// FILE_NOT_FOUND.
func ReadFile(path string) ([]byte, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// =============================================================================
// Cache helpers
// =============================================================================

func (r *Runner) useCache(opts Options) bool {
	return !opts.NoCache
}

// cacheGet treats backend errors as misses.
func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

// cacheSet logs and drops write failures.
func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
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
