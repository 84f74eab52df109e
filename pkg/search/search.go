package search

import (
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/queue"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// BFS returns the hop distance from origin to every node.
func BFS(g *graph.Graph, origin int, opts ...Option) (Distances, error) {
	if err := errs.ValidateOrigin(origin, g.NodeCount()); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	if o.weight != nil {
		return nil, errs.New(errs.ErrCodeUnsupported, "BFS does not support edge weights, use PrioritySearch")
	}

	dist := newDistances(g.NodeCount())
	dist[origin] = 0

	f := queue.NewFrontier(0)
	f.PushBack(origin)
	for {
		u, ok := f.PopFront()
		if !ok {
			break
		}
		next := dist[u] + 1
		for _, v := range g.Children(u) {
			if dist[v] != Unreached || !o.allowed(v) {
				continue
			}
			dist[v] = next
			f.PushBack(v)
		}
	}
	return dist, nil
}

// PrioritySearch returns the shortest distance from origin to every node,
// settling nodes in order of distance.
//
// Each node enters the heap once, when it is first reached; later
// improvements lower its key in place because the heap reads keys from the
// distance array at extraction time. The distance of the last settled node
// is a lower bound for every key still in the heap, so extraction can stop
// at the first element matching it.
func PrioritySearch(g *graph.Graph, origin int, opts ...Option) (Distances, error) {
	if err := errs.ValidateOrigin(origin, g.NodeCount()); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	n := g.NodeCount()
	dist := newDistances(n)
	settled := make([]bool, n)
	dist[origin] = 0

	h := queue.NewHeap(0)
	h.Push(origin)
	key := func(v int) (int, bool) { return dist[v], true }

	lower := 0
	for {
		u, ok := h.ExtractNext(lower, key)
		if !ok {
			break
		}
		settled[u] = true
		lower = dist[u]
		for _, v := range g.Children(u) {
			if settled[v] || !o.allowed(v) {
				continue
			}
			step := 1
			if o.weight != nil {
				step = o.weight(u, v)
				if step < 0 {
					return nil, errs.New(errs.ErrCodeInvalidInput, "negative edge weight %d on %d→%d", step, u, v)
				}
			}
			cand := lower + step
			switch {
			case dist[v] == Unreached:
				dist[v] = cand
				h.Push(v)
			case cand < dist[v]:
				dist[v] = cand
			}
		}
	}
	return dist, nil
}
