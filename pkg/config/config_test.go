package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/cache"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// isolate points every lookup location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{EnvConfig, EnvCacheBackend, EnvCacheDir, EnvRedisURL, EnvMongoURI, EnvServerAddr, EnvLogLevel, EnvWorkers} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Analysis.Method != "strip" {
		t.Errorf("Method = %q, want strip", cfg.Analysis.Method)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if want := filepath.Join(dir, "cache", "graphstat"); cfg.Cache.Dir != want {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, want)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "gs.toml")
	writeFile(t, path, `
[analysis]
method = "bfs"
workers = 4
directed = true

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Analysis.Method != "bfs" || cfg.Analysis.Workers != 4 || !cfg.Analysis.Directed {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel())
	}

	opts := cfg.CacheOptions()
	if opts.Backend != cache.BackendRedis || opts.URL != "redis://localhost:6379/1" {
		t.Errorf("CacheOptions = %+v", opts)
	}
	if opts.Prefix != "graphstat:" {
		t.Errorf("Prefix = %q, want default graphstat:", opts.Prefix)
	}
	// Unset keys keep their defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadLookupOrder(t *testing.T) {
	dir := isolate(t)
	xdg := filepath.Join(dir, "config", "graphstat", "config.toml")
	writeFile(t, xdg, "[analysis]\nmethod = \"priority\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != xdg || cfg.Analysis.Method != "priority" {
		t.Errorf("XDG config not used: source %q method %q", cfg.Source, cfg.Analysis.Method)
	}

	env := filepath.Join(dir, "env.toml")
	writeFile(t, env, "[analysis]\nmethod = \"bfs\"\n")
	t.Setenv(EnvConfig, env)

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != env || cfg.Analysis.Method != "bfs" {
		t.Errorf("$%s should win over XDG: source %q method %q", EnvConfig, cfg.Source, cfg.Analysis.Method)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"syntax", "[analysis\n", errs.ErrCodeInvalidConfig},
		{"unknown key", "[analysis]\nspeed = 3\n", errs.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidConfig},
		{"bad method", "[analysis]\nmethod = \"dfs\"\n", errs.ErrCodeInvalidConfig},
		{"bad level", "[log]\nlevel = \"loud\"\n", errs.ErrCodeInvalidConfig},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errs.ErrCodeInvalidConfig},
		{"negative workers", "[analysis]\nworkers = -2\n", errs.ErrCodeInvalidInput},
		{"huge capacity", "[analysis]\ncapacity = 1152921504606846976\n", errs.ErrCodeInvalidCapacity},
		{"capacity above node limit", "[analysis]\nnode_limit = 10\ncapacity = 11\n", errs.ErrCodeInvalidCapacity},
		{"huge node limit", "[analysis]\nnode_limit = 1152921504606846976\n", errs.ErrCodeInvalidInput},
		{"zero server node limit", "[server]\nnode_limit = 0\n", errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if !errs.Is(err, tt.code) {
				t.Errorf("Load error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvCacheBackend: "mongo",
		EnvMongoURI:     "mongodb://db:27017",
		EnvServerAddr:   ":9090",
		EnvWorkers:      "8",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Cache.Backend != "mongo" || cfg.Server.Addr != ":9090" || cfg.Analysis.Workers != 8 {
		t.Errorf("env not applied: %+v %+v %+v", cfg.Cache, cfg.Server, cfg.Analysis)
	}
	if opts := cfg.CacheOptions(); opts.URL != "mongodb://db:27017" || opts.Collection != "cache" {
		t.Errorf("CacheOptions = %+v", opts)
	}

	env[EnvWorkers] = "many"
	if err := Default().ApplyEnv(lookup); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("non-numeric workers error = %v, want INVALID_CONFIG", err)
	}
}
