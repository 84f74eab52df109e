// Package graph provides the adjacency-list graph analyzed by graphstat.
//
// # Overview
//
// A [Graph] holds nodes identified by dense integer ids 0..n-1 and, for every
// node, the list of its neighbors. The graph has a [Kind] fixed at
// construction:
//
//   - [Undirected]: inserting u-v stores v in u's list and u in v's list.
//   - [Directed]: inserting u→v stores v in u's list only.
//
// Duplicate edges are kept. A self loop on an undirected graph stores the
// node twice in its own list, so degree sums stay equal to twice the edge
// count.
//
// # Building Graphs
//
// There are two insertion modes:
//
//   - [Graph.Add] is bounded: edges with an endpoint outside 0..n-1 are
//     dropped and counted in [Graph.Ignored].
//   - [Graph.Push] grows the graph to fit both endpoints first, up to
//     [Graph.NodeLimit] ([MaxNodeLimit] unless lowered). Ids past it are
//     ignored like out-of-range edges.
//
// [FromEdges] drains an edge sequence using either mode depending on
// [BuildOptions].Capacity:
//
//	g := graph.FromEdges(edges, graph.BuildOptions{Capacity: 1000})
//	fmt.Println(g.NodeCount(), g.EdgeCount(), g.Ignored())
//
// # Degree Statistics
//
// [Graph.Degree], [Graph.MaxDegree], [Graph.AverageDegree] and
// [Graph.DegreeHistogram] summarize neighbor list lengths. For directed
// graphs these are out-degrees.
//
// # Thread Safety
//
// Graph is not safe for concurrent mutation. Once built it is read-only for
// every consumer in this module, and concurrent reads are safe.
package graph
