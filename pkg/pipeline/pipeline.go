// Package pipeline provides the load → analyze pipeline shared by the CLI and
// the HTTP API.
//
// This package turns raw edge-list bytes into [stats.Stats]. Centralizing it
// keeps caching, hooks and logging identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: parse the edge list (CSV, tab or JSON) into a [graph.Graph]
//  2. Analyze: compute degree statistics, components and the diameter
//
// Statistics are cached under a key derived from the content hash of the
// input and the options that change the result, so repeated runs over the
// same file are served from the cache without loading the graph at all.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, data, pipeline.Options{
//	    Source: "roads.csv",
//	    Method: "strip",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stats.DiameterString())
//
// Run individual stages:
//
//	imp, err := runner.Load(ctx, data, opts)
//	s, err := runner.Analyze(ctx, imp.Graph, opts)
//	dist, err := runner.Distances(ctx, imp.Graph, origin, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/diameter"
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/stats"

	errs "github.com/matzehuels/graphstat/pkg/errors"
	pkgio "github.com/matzehuels/graphstat/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMethod is the diameter method used when none is given.
	DefaultMethod = stats.MethodStrip

	// DefaultFormat is used when neither a format nor a recognizable source
	// name is given, which is the usual case for HTTP request bodies.
	DefaultFormat = pkgio.FormatTab
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source    string `json:"source,omitempty"` // file path or label; used for format detection and logs
	Format    string `json:"format,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
	NodeLimit int    `json:"node_limit,omitempty"` // 0 means graph.MaxNodeLimit
	Directed  bool   `json:"directed,omitempty"`
	Limit     int    `json:"limit,omitempty"`

	// Analyze options
	Method  string `json:"method,omitempty"`
	Workers int    `json:"workers,omitempty"`

	// Cache options
	NoCache bool `json:"no_cache,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Progress    diameter.Progress     `json:"-"`
	OnMalformed func(pkgio.Malformed) `json:"-"`
	Logger      *log.Logger           `json:"-"`

	format    pkgio.Format
	method    stats.Method
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Stats is the computed summary.
	Stats *stats.Stats

	// Graph is the loaded graph. Nil when Stats came from the cache.
	Graph *graph.Graph

	// DataHash is the content hash of the input bytes.
	DataHash string

	// Lines and Malformed describe the load. Zero on a cache hit.
	Lines     int
	Malformed int

	// Timings contains per-stage durations.
	Timings Timings

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Timings contains pipeline execution durations.
type Timings struct {
	Load    time.Duration
	Analyze time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	StatsHit  bool // Whether stats came from cache
	RenderHit bool // Whether the rendering came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	switch {
	case o.Format != "":
		f, err := pkgio.ParseFormat(o.Format, o.Source)
		if err != nil {
			return err
		}
		o.format = f
	case o.Source != "":
		f, err := pkgio.DetectFormat(o.Source)
		if err != nil {
			return err
		}
		o.format = f
	default:
		o.format = DefaultFormat
	}
	o.Format = string(o.format)

	method, err := stats.ParseMethod(o.Method)
	if err != nil {
		return err
	}
	o.method = method
	o.Method = string(method)

	if err := errs.ValidateNodeLimit(o.NodeLimit, graph.MaxNodeLimit); err != nil {
		return err
	}
	if o.NodeLimit == 0 {
		o.NodeLimit = graph.MaxNodeLimit
	}
	if err := errs.ValidateCapacity(o.Capacity, o.NodeLimit); err != nil {
		return err
	}
	if err := errs.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Limit < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "limit must not be negative, got %d", o.Limit)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Kind returns the graph kind selected by Directed.
func (o *Options) Kind() graph.Kind {
	if o.Directed {
		return graph.Directed
	}
	return graph.Undirected
}

// ImportOptions returns the loader options.
func (o *Options) ImportOptions() pkgio.ImportOptions {
	return pkgio.ImportOptions{
		Format: o.format,
		Build: graph.BuildOptions{
			Capacity:  o.Capacity,
			Kind:      o.Kind(),
			Limit:     o.Limit,
			NodeLimit: o.NodeLimit,
		},
		OnMalformed: o.OnMalformed,
	}
}

// StatsOptions returns the analysis options.
func (o *Options) StatsOptions() stats.Options {
	return stats.Options{
		Method: o.method,
		Engine: diameter.Options{
			Progress: o.Progress,
			Workers:  o.Workers,
			Logger:   o.Logger,
		},
	}
}

// StatsKeyOpts returns cache key options for computed statistics.
func (o *Options) StatsKeyOpts() cache.StatsKeyOpts {
	return cache.StatsKeyOpts{
		Format:    o.Format,
		Capacity:  o.Capacity,
		NodeLimit: o.NodeLimit,
		Directed:  o.Directed,
		Limit:     o.Limit,
		Method:    o.Method,
	}
}
