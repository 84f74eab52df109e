// Package config loads graphstat settings from a TOML file and the
// environment.
//
// # Lookup order
//
// The first existing file wins:
//
//  1. the path passed to [Load] (the --config flag); it must exist
//  2. $GRAPHSTAT_CONFIG
//  3. $XDG_CONFIG_HOME/graphstat/config.toml
//  4. ~/.config/graphstat/config.toml
//
// A missing file is not an error: [Default] values apply. Environment
// variables then override file values, and CLI flags override both.
//
// # Example
//
//	[analysis]
//	method = "strip"
//	workers = 4
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	node_limit = 4194304
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/stats"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

const appName = "graphstat"

// Environment variables read by ApplyEnv.
const (
	EnvConfig       = "GRAPHSTAT_CONFIG"
	EnvCacheBackend = "GRAPHSTAT_CACHE_BACKEND"
	EnvCacheDir     = "GRAPHSTAT_CACHE_DIR"
	EnvRedisURL     = "GRAPHSTAT_REDIS_URL"
	EnvMongoURI     = "GRAPHSTAT_MONGO_URI"
	EnvServerAddr   = "GRAPHSTAT_SERVER_ADDR"
	EnvLogLevel     = "GRAPHSTAT_LOG_LEVEL"
	EnvWorkers      = "GRAPHSTAT_WORKERS"
)

// Config is the full settings tree.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// AnalysisConfig holds defaults for stats runs.
type AnalysisConfig struct {
	Capacity  int    `toml:"capacity"`
	NodeLimit int    `toml:"node_limit"`
	Directed  bool   `toml:"directed"`
	Method    string `toml:"method"`
	Workers   int    `toml:"workers"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	Prefix          string `toml:"prefix"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	NodeLimit    int    `toml:"node_limit"`
}

// DefaultServerNodeLimit bounds graphs built from request bodies.
const DefaultServerNodeLimit = 1 << 22

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Method: string(stats.MethodStrip),
		},
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			Dir:             DefaultCacheDir(),
			Prefix:          appName + ":",
			MongoDatabase:   appName,
			MongoCollection: "cache",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 64 << 20,
			NodeLimit:    DefaultServerNodeLimit,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the config file, decodes it over the defaults, applies
// environment overrides and validates the result. explicit may be empty.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path, err := resolvePath(explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath applies the lookup order. It returns "" when no file exists.
func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", explicit)
		}
		return explicit, nil
	}
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func candidatePaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfig); p != "" {
		paths = append(paths, p)
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, appName, "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}
	return paths
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Source = path
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with
// lookup (os.LookupEnv outside tests).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvCacheBackend, &c.Cache.Backend)
	set(EnvCacheDir, &c.Cache.Dir)
	set(EnvRedisURL, &c.Cache.RedisURL)
	set(EnvMongoURI, &c.Cache.MongoURI)
	set(EnvServerAddr, &c.Server.Addr)
	set(EnvLogLevel, &c.Log.Level)

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s must be an integer", EnvWorkers)
		}
		c.Analysis.Workers = n
	}
	return nil
}

// Validate checks every enumerated and numeric field.
func (c *Config) Validate() error {
	if err := errs.ValidateChoice(errs.ErrCodeInvalidConfig, "cache backend", c.Cache.Backend, cache.Backends...); err != nil {
		return err
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidConfig, "method", c.Analysis.Method, stats.Methods...); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid log level %q", c.Log.Level)
	}
	if err := errs.ValidateNodeLimit(c.Analysis.NodeLimit, graph.MaxNodeLimit); err != nil {
		return err
	}
	limit := c.Analysis.NodeLimit
	if limit == 0 {
		limit = graph.MaxNodeLimit
	}
	if err := errs.ValidateCapacity(c.Analysis.Capacity, limit); err != nil {
		return err
	}
	if err := errs.ValidateWorkers(c.Analysis.Workers); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache backend mongo needs mongo_uri")
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server max_body_bytes must be positive")
	}
	if c.Server.NodeLimit <= 0 || c.Server.NodeLimit > graph.MaxNodeLimit {
		return errs.New(errs.ErrCodeInvalidConfig, "server node_limit must be in [1,%d], got %d", graph.MaxNodeLimit, c.Server.NodeLimit)
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.OpenOptions {
	opts := cache.OpenOptions{
		Backend:    c.Cache.Backend,
		Dir:        c.Cache.Dir,
		Prefix:     c.Cache.Prefix,
		Database:   c.Cache.MongoDatabase,
		Collection: c.Cache.MongoCollection,
	}
	switch c.Cache.Backend {
	case cache.BackendRedis:
		opts.URL = c.Cache.RedisURL
	case cache.BackendMongo:
		opts.URL = c.Cache.MongoURI
	}
	return opts
}

// DefaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/graphstat/). It falls back to the system temp directory when no
// home directory is available.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
