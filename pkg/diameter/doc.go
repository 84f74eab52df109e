// Package diameter computes the diameter of a graph: the largest finite
// shortest-path distance between any two nodes.
//
// # Algorithm
//
// The [Engine] avoids one full search per node by working in three passes
// over an undirected, loop-free, duplicate-free view of the graph:
//
//  1. Tree stripping. Nodes with at most one remaining neighbor are peeled
//     off repeatedly. Each peeled node passes a [Weight] to its neighbor:
//     the longest chain hanging below it (Deep) and the longest path inside
//     the peeled subtrees (Branch). A node that runs out of neighbors closes
//     a tree whose diameter is its Weight.Max. What survives is the core:
//     every node on a cycle or on a path between cycles.
//
//  2. Root searches. One breadth-first search per core component gives
//     finite upper bounds on the longest path through every core node.
//
//  3. Bounded searches. Core nodes whose bound still exceeds the best path
//     found are searched, highest bound first. Each search tightens the
//     bounds of the whole component. Nodes whose bound drops to the best
//     path found are never searched.
//
// Trees collapse entirely, so forests cost a single linear pass. Graphs with
// a small core and long hair, typical of road and social networks, need few
// searches. Vertex-transitive cores such as plain cycles still require a
// search from every core node.
//
// Directed graphs are not stripped: the reduction relies on symmetric
// adjacency. They fall back to a search from every node.
//
// # Progress
//
// Long runs report [Event]s through [Options].Progress. Events arrive in
// order on one goroutine, even when [Options].Workers allows concurrent
// searches.
//
// # Reference
//
// [BruteForce] runs a search from every node. It is slow and obviously
// correct, and the tests compare the engine against it.
package diameter
