package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/observability"
	"github.com/matzehuels/graphstat/pkg/search"

	errs "github.com/matzehuels/graphstat/pkg/errors"
	pkgio "github.com/matzehuels/graphstat/pkg/io"
)

// pathData is the tab edge list of a path 0-1-2-3 plus a comment line.
const pathData = "# a path\n0 1\n1 2\n2 3\n"

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should validate: %v", err)
	}
	if opts.Format != string(DefaultFormat) {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if opts.Method != string(DefaultMethod) {
		t.Errorf("Method = %q, want %q", opts.Method, DefaultMethod)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.NodeLimit != graph.MaxNodeLimit {
		t.Errorf("NodeLimit = %d, want %d", opts.NodeLimit, graph.MaxNodeLimit)
	}
}

func TestOptionsFormatDetection(t *testing.T) {
	tests := []struct {
		source, format string
		want           pkgio.Format
		wantErr        bool
	}{
		{"roads.csv", "", pkgio.FormatCSV, false},
		{"roads.txt", "", pkgio.FormatTab, false},
		{"graph.json", "", pkgio.FormatJSON, false},
		{"roads.csv", "tab", pkgio.FormatTab, false},
		{"", "tsv", pkgio.FormatTab, false},
		{"roads.xlsx", "", "", true},
		{"", "xml", "", true},
	}

	for _, tt := range tests {
		opts := Options{Source: tt.source, Format: tt.format}
		err := opts.ValidateAndSetDefaults()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q, %q) error = %v, wantErr %v", tt.source, tt.format, err, tt.wantErr)
			continue
		}
		if err == nil && opts.format != tt.want {
			t.Errorf("Validate(%q, %q) format = %q, want %q", tt.source, tt.format, opts.format, tt.want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"bad method", Options{Method: "dijkstra"}, errs.ErrCodeInvalidMethod},
		{"negative capacity", Options{Capacity: -1}, errs.ErrCodeInvalidCapacity},
		{"huge capacity", Options{Capacity: 1152921504606846976}, errs.ErrCodeInvalidCapacity},
		{"capacity above node limit", Options{Capacity: 11, NodeLimit: 10}, errs.ErrCodeInvalidCapacity},
		{"negative node limit", Options{NodeLimit: -1}, errs.ErrCodeInvalidInput},
		{"huge node limit", Options{NodeLimit: graph.MaxNodeLimit + 1}, errs.ErrCodeInvalidInput},
		{"negative limit", Options{Limit: -5}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "a.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}
	format, method := opts.Format, opts.Method

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
	if opts.Format != format || opts.Method != method {
		t.Error("options changed on second call")
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), []byte(pathData), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	s := res.Stats
	if s.Nodes != 4 || s.Edges != 3 {
		t.Errorf("nodes, edges = %d, %d, want 4, 3", s.Nodes, s.Edges)
	}
	if s.DiameterString() != "3" {
		t.Errorf("diameter = %s, want 3", s.DiameterString())
	}
	if res.Lines != 4 {
		t.Errorf("Lines = %d, want 4", res.Lines)
	}
	if res.Graph == nil {
		t.Error("Graph should be set on a computed result")
	}
	if res.CacheInfo.StatsHit {
		t.Error("NullCache run should not be a hit")
	}
}

func TestExecuteNodeLimit(t *testing.T) {
	r := quietRunner(nil)
	data := []byte("0 1\n0 1152921504606846976\n1 2\n2 9\n")
	res, err := r.Execute(context.Background(), data, Options{NodeLimit: 5})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if s := res.Stats; s.Nodes != 3 || s.Edges != 2 || s.Ignored != 2 {
		t.Errorf("nodes, edges, ignored = %d, %d, %d, want 3, 2, 2", s.Nodes, s.Edges, s.Ignored)
	}
}

func TestExecuteCachesStats(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)

	first, err := r.Execute(ctx, []byte(pathData), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.StatsHit {
		t.Fatal("first run should miss")
	}

	second, err := r.Execute(ctx, []byte(pathData), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.StatsHit {
		t.Fatal("second run should hit the cache")
	}
	if second.Graph != nil {
		t.Error("cache hit should not load the graph")
	}
	if second.Stats.DiameterString() != first.Stats.DiameterString() {
		t.Errorf("cached diameter = %s, want %s", second.Stats.DiameterString(), first.Stats.DiameterString())
	}

	// A different method is a different key
	third, _ := r.Execute(ctx, []byte(pathData), Options{Method: "bfs"})
	if third.CacheInfo.StatsHit {
		t.Error("different method should miss")
	}

	// Refresh recomputes
	fourth, _ := r.Execute(ctx, []byte(pathData), Options{Refresh: true})
	if fourth.CacheInfo.StatsHit {
		t.Error("refresh should bypass the cache")
	}

	// NoCache never reads
	fifth, _ := r.Execute(ctx, []byte(pathData), Options{NoCache: true})
	if fifth.CacheInfo.StatsHit {
		t.Error("no-cache should bypass the cache")
	}
}

// failingCache returns errors for every operation.
type failingCache struct{ cache.NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func TestExecuteCacheFailureNotFatal(t *testing.T) {
	r := quietRunner(&failingCache{})
	res, err := r.Execute(context.Background(), []byte(pathData), Options{})
	if err != nil {
		t.Fatalf("cache failure should not fail the run: %v", err)
	}
	if res.Stats.DiameterString() != "3" {
		t.Errorf("diameter = %s, want 3", res.Stats.DiameterString())
	}
}

func TestExecuteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.csv")
	if err := os.WriteFile(path, []byte("id_1,id_2\n0,1\n1,2\nx,y\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var malformed []pkgio.Malformed
	r := quietRunner(nil)
	res, err := r.ExecuteFile(context.Background(), path, Options{
		OnMalformed: func(m pkgio.Malformed) { malformed = append(malformed, m) },
	})
	if err != nil {
		t.Fatalf("ExecuteFile: %v", err)
	}
	if res.Stats.DiameterString() != "2" {
		t.Errorf("diameter = %s, want 2", res.Stats.DiameterString())
	}
	if len(malformed) != 1 || malformed[0].Line != 4 {
		t.Errorf("malformed = %+v, want one at line 4", malformed)
	}

	_, err = r.ExecuteFile(context.Background(), filepath.Join(dir, "missing.csv"), Options{})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cycle survives stripping, so the search observes ctx.
	_, err := quietRunner(nil).Execute(ctx, []byte("0 1\n1 2\n2 3\n3 0\n"), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDistances(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(nil)
	imp, err := r.Load(ctx, []byte(pathData+"7 8\n"), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, method := range DistanceMethods {
		rep, err := r.Distances(ctx, imp.Graph, 0, method)
		if err != nil {
			t.Fatalf("Distances(%s): %v", method, err)
		}
		if rep.Eccentricity != 3 || rep.Farthest != 3 {
			t.Errorf("%s: eccentricity, farthest = %d, %d, want 3, 3", method, rep.Eccentricity, rep.Farthest)
		}
		if rep.Reached != 4 {
			t.Errorf("%s: reached = %d, want 4", method, rep.Reached)
		}
		if rep.Distances[8] != search.Unreached {
			t.Errorf("%s: distance to 8 = %d, want unreached", method, rep.Distances[8])
		}
	}

	if _, err := r.Distances(ctx, imp.Graph, 99, ""); !errs.Is(err, errs.ErrCodeInvalidOrigin) {
		t.Errorf("out of range origin err = %v, want INVALID_ORIGIN", err)
	}
	if _, err := r.Distances(ctx, imp.Graph, 0, "strip"); !errs.Is(err, errs.ErrCodeInvalidMethod) {
		t.Errorf("strip method err = %v, want INVALID_METHOD", err)
	}
}

func TestRenderDOT(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(fc)

	out, hit, err := r.Render(ctx, []byte(pathData), Options{}, RenderOptions{Output: OutputDOT})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if !strings.HasPrefix(string(out), "graph G {") {
		t.Errorf("unexpected DOT:\n%s", out)
	}

	again, hit, err := r.Render(ctx, []byte(pathData), Options{}, RenderOptions{Output: OutputDOT})
	if err != nil || !hit || string(again) != string(out) {
		t.Errorf("second render = hit %v, err %v, want cached copy", hit, err)
	}

	if _, _, err := r.Render(ctx, []byte(pathData), Options{}, RenderOptions{Output: "png"}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("png output err = %v, want INVALID_FORMAT", err)
	}
}

// recordingHooks captures pipeline events.
type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *recordingHooks) OnLoadStart(context.Context, string, string) { h.add("load") }
func (h *recordingHooks) OnAnalyzeComplete(_ context.Context, method string, d int, _ time.Duration, err error) {
	if err == nil && d == 3 {
		h.add("analyze:" + method)
	}
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	if _, err := quietRunner(nil).Execute(context.Background(), []byte(pathData), Options{}); err != nil {
		t.Fatal(err)
	}
	got := strings.Join(hooks.events, ",")
	if got != "load,analyze:strip" {
		t.Errorf("events = %s, want load,analyze:strip", got)
	}
}
