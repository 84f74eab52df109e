// Package testgraph builds small deterministic graphs for tests.
package testgraph

import (
	"math/rand/v2"

	"github.com/matzehuels/graphstat/pkg/graph"
)

// Path returns an undirected path over n nodes: 0-1-...-(n-1).
func Path(n int) *graph.Graph {
	g := graph.New(n, graph.Undirected)
	for i := 1; i < n; i++ {
		g.Add(i-1, i)
	}
	return g
}

// Cycle returns an undirected cycle over n nodes.
func Cycle(n int) *graph.Graph {
	g := Path(n)
	if n > 2 {
		g.Add(n-1, 0)
	}
	return g
}

// Star returns node 0 joined to k leaves.
func Star(k int) *graph.Graph {
	g := graph.New(k+1, graph.Undirected)
	for i := 1; i <= k; i++ {
		g.Add(0, i)
	}
	return g
}

// Spider returns a center node 0 with one chain per entry of legs, each
// chain having that many nodes.
func Spider(legs ...int) *graph.Graph {
	g := graph.New(1, graph.Undirected)
	next := 1
	for _, l := range legs {
		prev := 0
		for range l {
			g.Push(prev, next)
			prev = next
			next++
		}
	}
	return g
}

// Random returns a graph of n nodes with m uniformly chosen edges.
// Self loops and duplicates are allowed.
func Random(r *rand.Rand, n, m int, kind graph.Kind) *graph.Graph {
	g := graph.New(n, kind)
	if n == 0 {
		return g
	}
	for range m {
		g.Add(r.IntN(n), r.IntN(n))
	}
	return g
}

// Forest returns a random forest of n nodes: each node i>0 attaches to a
// random earlier node with probability p, otherwise starts a new tree.
func Forest(r *rand.Rand, n int, p float64) *graph.Graph {
	g := graph.New(n, graph.Undirected)
	for i := 1; i < n; i++ {
		if r.Float64() < p {
			g.Add(r.IntN(i), i)
		}
	}
	return g
}

// Hairy returns a random cycle-rich core of coreSize nodes with random
// trees of total size hair hanging off it.
func Hairy(r *rand.Rand, coreSize, extra, hair int) *graph.Graph {
	g := Cycle(coreSize)
	for range extra {
		g.Add(r.IntN(coreSize), r.IntN(coreSize))
	}
	for i := coreSize; i < coreSize+hair; i++ {
		g.Push(r.IntN(i), i)
	}
	return g
}

// Rand returns a PCG source seeded with seed.
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
