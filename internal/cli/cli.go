// Package cli implements the graphstat command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/config"
	"github.com/matzehuels/graphstat/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "graphstat"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Output encodings shared by stats and distance.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var outputFormats = []string{outputText, outputJSON, outputYAML}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is replaced by the loaded file before any command runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file selected by --config (or the lookup
// order) and applies its log level unless --verbose was given.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.openCache(ctx, noCache), nil, c.Logger)
}

// openCache opens the configured backend. An unreachable backend is not
// fatal: the command runs uncached.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts := c.Config.CacheOptions()
	cch, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", opts.Backend, "err", err)
		return cache.NewNullCache()
	}
	c.Logger.Debug("opened cache", "backend", opts.Backend)
	return cch
}

// =============================================================================
// Options Helpers
// =============================================================================

// analysisFlags are the load and analysis flags shared by stats, distance
// and render.
type analysisFlags struct {
	format    string
	capacity  int
	nodeLimit int
	directed  bool
	limit     int
	method    string
	workers   int
	noCache   bool
	refresh   bool
}

// registerLoad adds the flags that control reading the edge list.
func (f *analysisFlags) registerLoad(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "input-format", "i", "", "input format: csv, tab, json (default: from extension)")
	cmd.Flags().IntVar(&f.capacity, "capacity", 0, "node capacity; edges outside it are ignored (0 grows to fit)")
	cmd.Flags().IntVar(&f.nodeLimit, "node-limit", 0, "largest node count to grow to; edges past it are ignored (0 uses the config value)")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "treat edges as directed")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "read at most N edges (0 reads all)")
}

// registerCache adds the result cache flags.
func (f *analysisFlags) registerCache(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// registerAnalysis adds the diameter method and worker flags.
func (f *analysisFlags) registerAnalysis(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "diameter method: strip, bfs, priority")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "parallel searches (0 uses the config value)")
}

// options merges flags over the loaded config. Flags left unset keep the
// config values.
func (c *CLI) options(cmd *cobra.Command, source string, f *analysisFlags) pipeline.Options {
	a := c.Config.Analysis
	opts := pipeline.Options{
		Source:    source,
		Format:    f.format,
		Capacity:  a.Capacity,
		NodeLimit: a.NodeLimit,
		Directed:  a.Directed,
		Limit:     f.limit,
		Method:    a.Method,
		Workers:   a.Workers,
		NoCache:   f.noCache,
		Refresh:   f.refresh,
		Logger:    c.Logger,
	}
	if cmd.Flags().Changed("capacity") {
		opts.Capacity = f.capacity
	}
	if cmd.Flags().Changed("node-limit") {
		opts.NodeLimit = f.nodeLimit
	}
	if cmd.Flags().Changed("directed") {
		opts.Directed = f.directed
	}
	if f.method != "" {
		opts.Method = f.method
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	return opts
}
