package graph

import (
	"iter"
	"slices"
)

// Kind selects how edges are stored.
type Kind int

const (
	// Undirected stores each edge in the lists of both endpoints.
	Undirected Kind = iota
	// Directed stores each edge in the list of its source only.
	Directed
)

// String returns "undirected" or "directed".
func (k Kind) String() string {
	if k == Directed {
		return "directed"
	}
	return "undirected"
}

// Edge is a pair of node ids. For undirected graphs the orientation carries
// no meaning.
type Edge struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Graph is an adjacency-list graph over dense integer node ids.
//
// The zero value is an empty undirected graph that grows through Push.
type Graph struct {
	adj     [][]int
	kind    Kind
	edges   int
	ignored int
	limit   int
}

// MaxNodeLimit is the largest node count a Graph holds. Adjacency headers
// alone cost 24 bytes per node, so this bounds an empty skeleton at about
// 800 MB no matter which ids the input names.
const MaxNodeLimit = 1 << 25

// New creates a graph with capacity nodes (ids 0..capacity-1) and no edges.
// A non-positive capacity yields an empty graph; a capacity above
// MaxNodeLimit is clamped to it.
func New(capacity int, kind Kind) *Graph {
	return &Graph{
		adj:  make([][]int, min(max(capacity, 0), MaxNodeLimit)),
		kind: kind,
	}
}

// SetNodeLimit lowers the node count Push and Grow may reach. Values that
// are not positive, or above MaxNodeLimit, restore MaxNodeLimit. Nodes that
// already exist are kept.
func (g *Graph) SetNodeLimit(n int) {
	if n <= 0 || n > MaxNodeLimit {
		n = MaxNodeLimit
	}
	g.limit = n
}

// NodeLimit returns the current node ceiling. The zero Graph uses
// MaxNodeLimit.
func (g *Graph) NodeLimit() int {
	if g.limit == 0 {
		return MaxNodeLimit
	}
	return g.limit
}

// =============================================================================
// Mutation
// =============================================================================

// Add inserts the edge u→v (and v→u for undirected graphs).
// If either endpoint is outside 0..NodeCount()-1 the edge is dropped, the
// ignored counter is incremented, and Add returns false.
func (g *Graph) Add(u, v int) bool {
	n := len(g.adj)
	if u < 0 || v < 0 || u >= n || v >= n {
		g.ignored++
		return false
	}
	g.insert(u, v)
	return true
}

// Push grows the graph so that both endpoints exist, then inserts the edge.
// Negative ids and ids at or above NodeLimit cannot be represented; such
// edges are counted as ignored and Push returns false.
func (g *Graph) Push(u, v int) bool {
	if limit := g.NodeLimit(); u < 0 || v < 0 || u >= limit || v >= limit {
		g.ignored++
		return false
	}
	g.Grow(max(u, v) + 1)
	g.insert(u, v)
	return true
}

// Grow extends the graph to at least n nodes, but never past NodeLimit.
// New nodes have no neighbors.
func (g *Graph) Grow(n int) {
	limit := g.NodeLimit()
	n = min(n, limit)
	if n <= len(g.adj) {
		return
	}
	if n <= cap(g.adj) {
		g.adj = g.adj[:n]
		return
	}
	grown := make([][]int, n, min(max(n, 2*cap(g.adj)), limit))
	copy(grown, g.adj)
	g.adj = grown
}

func (g *Graph) insert(u, v int) {
	g.adj[u] = append(g.adj[u], v)
	if g.kind == Undirected {
		g.adj[v] = append(g.adj[v], u)
	}
	g.edges++
}

// =============================================================================
// Queries
// =============================================================================

// Kind returns the graph's edge storage mode.
func (g *Graph) Kind() Kind { return g.kind }

// Directed reports whether edges are stored one way only.
func (g *Graph) Directed() bool { return g.kind == Directed }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of accepted insertions. Duplicates and self
// loops count once per insertion.
func (g *Graph) EdgeCount() int { return g.edges }

// Ignored returns the number of edges dropped because an endpoint was out of
// range.
func (g *Graph) Ignored() int { return g.ignored }

// Children returns the neighbor list of u, or nil if u is out of range.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Children(u int) []int {
	if u < 0 || u >= len(g.adj) {
		return nil
	}
	return g.adj[u]
}

// Degree returns the length of u's neighbor list, or 0 if u is out of range.
func (g *Graph) Degree(u int) int {
	return len(g.Children(u))
}

// MaxDegree returns the largest degree, or 0 for an empty graph.
func (g *Graph) MaxDegree() int {
	m := 0
	for _, ns := range g.adj {
		m = max(m, len(ns))
	}
	return m
}

// AverageDegree returns the mean neighbor list length, or 0 for an empty
// graph.
func (g *Graph) AverageDegree() float64 {
	if len(g.adj) == 0 {
		return 0
	}
	total := 0
	for _, ns := range g.adj {
		total += len(ns)
	}
	return float64(total) / float64(len(g.adj))
}

// DegreeHistogram returns h where h[d] is the number of nodes with degree d.
// The slice has length MaxDegree()+1, or is empty for an empty graph.
func (g *Graph) DegreeHistogram() []int {
	if len(g.adj) == 0 {
		return []int{}
	}
	h := make([]int, g.MaxDegree()+1)
	for _, ns := range g.adj {
		h[len(ns)]++
	}
	return h
}

// Edges yields every stored edge. Undirected graphs yield each inserted edge
// once with From <= To; directed graphs yield every u→v.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for u, ns := range g.adj {
			loops := 0
			for _, v := range ns {
				if g.kind == Directed || u < v {
					if !yield(Edge{From: u, To: v}) {
						return
					}
					continue
				}
				if u == v {
					// Undirected self loops appear twice in the list.
					loops++
					if loops%2 == 1 {
						if !yield(Edge{From: u, To: v}) {
							return
						}
					}
				}
			}
		}
	}
}

// =============================================================================
// Construction from edge streams
// =============================================================================

// BuildOptions configures FromEdges.
type BuildOptions struct {
	// Capacity is the expected node count. When positive the graph is
	// created with exactly that many nodes, clamped to NodeLimit, and
	// out-of-range edges are ignored. When zero the graph grows to fit
	// every edge.
	Capacity int

	// Kind selects directed or undirected storage.
	Kind Kind

	// Limit stops after this many edges have been read. Zero means no limit.
	Limit int

	// NodeLimit caps the node count when growing to fit. Edges naming an id
	// at or above it are ignored. Zero means MaxNodeLimit.
	NodeLimit int
}

// FromEdges builds a graph by draining edges.
func FromEdges(edges iter.Seq[Edge], opts BuildOptions) *Graph {
	capacity := opts.Capacity
	if opts.NodeLimit > 0 {
		capacity = min(capacity, opts.NodeLimit)
	}
	g := New(capacity, opts.Kind)
	g.SetNodeLimit(opts.NodeLimit)
	bounded := opts.Capacity > 0
	read := 0
	for e := range edges {
		if opts.Limit > 0 && read >= opts.Limit {
			break
		}
		read++
		if bounded {
			g.Add(e.From, e.To)
		} else {
			g.Push(e.From, e.To)
		}
	}
	return g
}

// FromSlice is FromEdges over an in-memory edge list.
func FromSlice(edges []Edge, opts BuildOptions) *Graph {
	return FromEdges(slices.Values(edges), opts)
}
