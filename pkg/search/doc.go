// Package search computes single-origin shortest-path distances over a
// [graph.Graph].
//
// Two primitives are provided:
//
//   - [BFS] explores level by level with a [queue.Frontier]. Every edge has
//     length one.
//   - [PrioritySearch] extracts the closest unsettled node from a
//     [queue.Heap] using a running lower bound, which lets it stop scanning
//     early on unit-weight graphs. [WithWeight] supplies non-negative edge
//     lengths.
//
// On unit weights both return identical [Distances].
//
// Neither primitive mutates the graph. Each call allocates its own distance
// array, so concurrent searches over the same graph are safe.
//
// An origin outside the graph is reported as an error carrying
// errors.ErrCodeInvalidOrigin; no other node is substituted.
package search
