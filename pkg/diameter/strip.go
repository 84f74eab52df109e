package diameter

import "github.com/matzehuels/graphstat/pkg/graph"

// simpleView returns an undirected copy of g without self loops or
// duplicate edges.
func simpleView(g *graph.Graph) *graph.Graph {
	n := g.NodeCount()
	view := graph.New(n, graph.Undirected)
	seen := make([]int, n)
	for u := range n {
		stamp := u + 1
		for _, v := range g.Children(u) {
			if v == u || seen[v] == stamp {
				continue
			}
			seen[v] = stamp
			if u < v {
				view.Add(u, v)
			}
		}
	}
	return view
}

// stripping is the outcome of the leaf peeling pass.
type stripping struct {
	core     []bool   // node survived peeling
	weights  []Weight // per node; final for core nodes
	longest  int      // longest path fully inside a stripped tree
	stripped int
}

// strip peels nodes with at most one remaining neighbor until a fixed
// point. A peeled node hands its walked weight to its one remaining
// neighbor. A node left with no neighbors closes a tree.
func strip(view *graph.Graph, report func(v, done int, longest int)) stripping {
	n := view.NodeCount()
	s := stripping{
		core:    make([]bool, n),
		weights: make([]Weight, n),
	}
	remaining := make([]int, n)
	gone := make([]bool, n)
	stack := make([]int, 0, n)
	for v := range n {
		remaining[v] = view.Degree(v)
		if remaining[v] <= 1 {
			stack = append(stack, v)
		}
	}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if gone[v] {
			continue
		}
		gone[v] = true
		s.stripped++

		if remaining[v] == 0 {
			s.longest = max(s.longest, s.weights[v].Max())
		} else {
			parent := -1
			for _, u := range view.Children(v) {
				if !gone[u] {
					parent = u
					break
				}
			}
			s.weights[parent] = s.weights[parent].Merge(s.weights[v].Walk())
			remaining[parent]--
			if remaining[parent] <= 1 {
				stack = append(stack, parent)
			}
		}
		report(v, s.stripped, s.longest)
	}

	for v := range n {
		if !gone[v] {
			s.core[v] = true
			s.longest = max(s.longest, s.weights[v].Branch)
		}
	}
	return s
}
