package search

import "github.com/matzehuels/graphstat/pkg/graph"

// Components labels every node with the index of its connected component
// and returns the labels with the number of components. Edge direction is
// ignored, so directed graphs are split into weakly connected components.
// Labels are assigned in order of the lowest node id of each component.
func Components(g *graph.Graph) ([]int, int) {
	n := g.NodeCount()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for u := range n {
		for _, v := range g.Children(u) {
			a, b := find(u), find(v)
			if a == b {
				continue
			}
			if a < b {
				parent[b] = a
			} else {
				parent[a] = b
			}
		}
	}

	labels := make([]int, n)
	index := make(map[int]int)
	for u := range n {
		r := find(u)
		id, ok := index[r]
		if !ok {
			id = len(index)
			index[r] = id
		}
		labels[u] = id
	}
	return labels, len(index)
}
