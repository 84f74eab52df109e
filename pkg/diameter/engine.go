package diameter

import (
	"cmp"
	"context"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/search"
)

// Options configures an Engine.
type Options struct {
	// Progress receives events while the engine runs. Nil disables
	// reporting.
	Progress Progress

	// Workers is the number of origin searches run concurrently. Values
	// below 2 run searches one at a time.
	Workers int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Result is the outcome of Engine.Analyze.
type Result struct {
	// Diameter is the longest shortest path. Only meaningful when Empty is
	// false.
	Diameter int `json:"diameter"`

	// Empty is true when the graph has no nodes.
	Empty bool `json:"empty"`

	// Core marks the nodes left after tree stripping. Nil for directed
	// graphs, which are not stripped.
	Core []bool `json:"-"`

	// Weights holds the stripped-tree summary of every node. Nil for
	// directed graphs.
	Weights []Weight `json:"-"`

	CoreNodes      int           `json:"core_nodes"`
	CoreComponents int           `json:"core_components"`
	Stripped       int           `json:"stripped"`
	Searches       int           `json:"searches"` // origin searches performed
	Pruned         int           `json:"pruned"`   // core nodes never searched
	Elapsed        time.Duration `json:"elapsed"`
}

// Value returns the diameter and whether it is defined.
func (r *Result) Value() (int, bool) {
	return r.Diameter, !r.Empty
}

// Engine computes graph diameters. An Engine is stateless between calls and
// safe for concurrent use.
type Engine struct {
	progress Progress
	workers  int
	logger   *log.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		progress: opts.Progress,
		workers:  max(opts.Workers, 1),
		logger:   opts.Logger,
	}
	if e.progress == nil {
		e.progress = noopProgress{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Diameter returns the longest shortest path of g, or false for an empty
// graph. Unreachable pairs are ignored, so a disconnected graph yields the
// largest diameter among its components.
func (e *Engine) Diameter(ctx context.Context, g *graph.Graph) (int, bool, error) {
	res, err := e.Analyze(ctx, g)
	if err != nil {
		return 0, false, err
	}
	d, ok := res.Value()
	return d, ok, nil
}

// Analyze computes the diameter of g together with the details of the
// reduction. It returns ctx.Err() if the context is cancelled between
// origin searches.
func (e *Engine) Analyze(ctx context.Context, g *graph.Graph) (*Result, error) {
	start := time.Now()
	if g.NodeCount() == 0 {
		return &Result{Empty: true}, nil
	}

	var (
		res *Result
		err error
	)
	if g.Directed() {
		res, err = e.exhaustive(ctx, g, search.PrioritySearch)
	} else {
		res, err = e.reduced(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	e.logger.Debug("diameter computed",
		"diameter", res.Diameter,
		"core", res.CoreNodes,
		"searches", res.Searches,
		"pruned", res.Pruned,
		"elapsed", res.Elapsed)
	return res, nil
}

// =============================================================================
// Undirected graphs: strip, then bounded search on the core
// =============================================================================

// coreSearch holds the per-node state of the bounded search.
type coreSearch struct {
	view     *graph.Graph
	core     []bool
	deep     []int
	upper    []int // upper bound on each node's best path through it
	searched []bool
	longest  int
}

func (e *Engine) reduced(ctx context.Context, g *graph.Graph) (*Result, error) {
	view := simpleView(g)
	n := view.NodeCount()

	s := strip(view, func(v, done, longest int) {
		e.progress.Report(Event{Stage: StageStrip, Node: v, Done: done, Total: n, Longest: longest})
	})

	res := &Result{
		Core:     s.core,
		Weights:  s.weights,
		Stripped: s.stripped,
	}
	for _, kept := range s.core {
		if kept {
			res.CoreNodes++
		}
	}
	e.logger.Debug("trees stripped", "nodes", n, "stripped", s.stripped, "core", res.CoreNodes, "longest", s.longest)

	cs := &coreSearch{
		view:     view,
		core:     s.core,
		deep:     make([]int, n),
		upper:    make([]int, n),
		searched: make([]bool, n),
		longest:  s.longest,
	}
	for v := range n {
		cs.deep[v] = s.weights[v].Deep
		cs.upper[v] = math.MaxInt
	}

	// One search per core component establishes finite bounds everywhere.
	for v := range n {
		if !cs.core[v] || cs.upper[v] != math.MaxInt {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dist, err := cs.search(v)
		if err != nil {
			return nil, err
		}
		cs.absorb(v, dist)
		res.CoreComponents++
		res.Searches++
		e.progress.Report(Event{Stage: StageRoots, Node: v, Done: res.CoreComponents, Longest: cs.longest})
	}

	// Search candidates whose bound still beats the best path found, most
	// promising first.
	for {
		batch := cs.candidates(e.workers)
		if len(batch) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := e.searchAll(ctx, cs, batch)
		if err != nil {
			return nil, err
		}
		for i, o := range batch {
			cs.absorb(o, results[i])
			res.Searches++
			e.progress.Report(Event{
				Stage:   StageSearch,
				Node:    o,
				Done:    res.Searches - res.CoreComponents,
				Total:   res.Searches - res.CoreComponents + cs.pending(),
				Longest: cs.longest,
			})
		}
	}

	res.Pruned = res.CoreNodes - res.Searches
	res.Diameter = cs.longest
	return res, nil
}

// searchAll runs one search per origin, concurrently when the engine has
// more than one worker. Results are returned in origin order.
func (e *Engine) searchAll(ctx context.Context, cs *coreSearch, origins []int) ([]search.Distances, error) {
	results := make([]search.Distances, len(origins))
	if len(origins) == 1 {
		d, err := cs.search(origins[0])
		results[0] = d
		return results, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for i, o := range origins {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := cs.search(o)
			results[i] = d
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// search runs BFS from o over core nodes only. It only reads shared state.
func (cs *coreSearch) search(o int) (search.Distances, error) {
	return search.BFS(cs.view, o, search.WithFilter(func(v int) bool { return cs.core[v] }))
}

// absorb folds the distances from origin o into the running best path and
// the per-node bounds.
//
// For core nodes a and b the longest path that leaves a's stripped trees,
// crosses the core and enters b's is deep[a] + d(a,b) + deep[b]. With
// far(o) = max over n of d(o,n) + deep[n], the triangle inequality bounds
// every path through v by deep[v] + d(v,o) + far(o).
func (cs *coreSearch) absorb(o int, dist search.Distances) {
	cs.searched[o] = true
	far := 0
	for v, d := range dist {
		if d == search.Unreached {
			continue
		}
		far = max(far, d+cs.deep[v])
		if v != o {
			cs.longest = max(cs.longest, cs.deep[o]+d+cs.deep[v])
		}
	}
	for v, d := range dist {
		if d == search.Unreached {
			continue
		}
		cs.upper[v] = min(cs.upper[v], cs.deep[v]+d+far)
	}
}

// candidates returns up to k unsearched core nodes whose bound exceeds the
// longest path found, highest bound first, lowest id on ties.
func (cs *coreSearch) candidates(k int) []int {
	var out []int
	for v, kept := range cs.core {
		if kept && !cs.searched[v] && cs.upper[v] > cs.longest {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b int) int {
		if c := cmp.Compare(cs.upper[b], cs.upper[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out[:min(k, len(out))]
}

// pending counts the core nodes that would still be searched.
func (cs *coreSearch) pending() int {
	n := 0
	for v, kept := range cs.core {
		if kept && !cs.searched[v] && cs.upper[v] > cs.longest {
			n++
		}
	}
	return n
}

// =============================================================================
// Exhaustive search from every origin
// =============================================================================

// SearchFunc is a single-origin shortest-path search such as search.BFS.
type SearchFunc func(g *graph.Graph, origin int, opts ...search.Option) (search.Distances, error)

// Exhaustive computes the diameter with one search per node and no
// reduction. Directed graphs always take this path.
func (e *Engine) Exhaustive(ctx context.Context, g *graph.Graph, fn SearchFunc) (*Result, error) {
	start := time.Now()
	if g.NodeCount() == 0 {
		return &Result{Empty: true}, nil
	}
	res, err := e.exhaustive(ctx, g, fn)
	if err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (e *Engine) exhaustive(ctx context.Context, g *graph.Graph, fn SearchFunc) (*Result, error) {
	n := g.NodeCount()
	res := &Result{CoreNodes: n}

	longest := 0
	fold := func(o int, dist search.Distances) {
		if m, ok := dist.Max(); ok {
			longest = max(longest, m)
		}
		res.Searches++
		e.progress.Report(Event{Stage: StageSearch, Node: o, Done: res.Searches, Total: n, Longest: longest})
	}

	batch := make([]int, 0, e.workers)
	results := make([]search.Distances, e.workers)
	for start := 0; start < n; start += e.workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch = batch[:0]
		for o := start; o < min(start+e.workers, n); o++ {
			batch = append(batch, o)
		}

		eg, gctx := errgroup.WithContext(ctx)
		for i, o := range batch {
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, err := fn(g, o)
				results[i] = d
				return err
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		for i, o := range batch {
			fold(o, results[i])
		}
	}

	res.Diameter = longest
	return res, nil
}

// =============================================================================
// Reference implementation
// =============================================================================

// BruteForce returns the largest finite distance over all ordered node
// pairs, or false for an empty graph. It runs one BFS per node and is meant
// as a reference for testing and small inputs.
func BruteForce(g *graph.Graph) (int, bool) {
	n := g.NodeCount()
	if n == 0 {
		return 0, false
	}
	longest := 0
	for o := range n {
		dist, err := search.BFS(g, o)
		if err != nil {
			continue
		}
		if m, ok := dist.Max(); ok {
			longest = max(longest, m)
		}
	}
	return longest, true
}
