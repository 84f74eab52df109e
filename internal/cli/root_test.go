package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphstat/pkg/config"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// isolate points config and cache lookups at a temp dir and clears the
// environment overrides. It returns the temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{
		config.EnvConfig, config.EnvCacheBackend, config.EnvCacheDir, config.EnvRedisURL,
		config.EnvMongoURI, config.EnvServerAddr, config.EnvLogLevel, config.EnvWorkers,
	} {
		t.Setenv(k, "")
	}
	return dir
}

// execute runs the root command with args and returns what it wrote to
// its output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeEdges writes content to name inside dir and returns the path.
func writeEdges(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"stats", "distance", "convert", "render", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "graphstat version") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "cache", "path")
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing --config error = %v, want FILE_NOT_FOUND", err)
	}

	cacheDir := filepath.Join(dir, "elsewhere")
	cfg := writeEdges(t, dir, "gs.toml", "[cache]\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n")
	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(cacheDir) {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), cacheDir)
	}
}

func TestVerboseOverridesConfigLevel(t *testing.T) {
	dir := isolate(t)
	cfg := writeEdges(t, dir, "gs.toml", "[log]\nlevel = \"error\"\n")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", cfg, "-v", "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if c.Config.Source != cfg {
		t.Errorf("Config.Source = %q, want %q", c.Config.Source, cfg)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "graphstat") {
			t.Errorf("completion %s output does not mention graphstat", shell)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
