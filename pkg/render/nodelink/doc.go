// Package nodelink renders graphs as node-link diagrams, highlighting the
// reduced core left by tree stripping.
//
// # Overview
//
// [ToDOT] produces Graphviz DOT source. When a [diameter.Result] from an
// undirected analysis is supplied, core nodes are filled and stripped nodes
// are drawn grey with dashed outlines, so the reduction that the diameter
// engine searched is visible at a glance.
//
//	res, _ := diameter.New(diameter.Options{}).Analyze(ctx, g)
//	dot, err := nodelink.ToDOT(g, res, nodelink.Options{Weights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Weights: label nodes with their stripped-tree Weight (deep/branch)
//   - MaxNodes: refuse graphs larger than this (Graphviz layout is
//     superlinear, so rendering a million-node graph is never useful)
//
// # Output
//
// Undirected graphs produce a "graph" with "--" edges, directed graphs a
// "digraph" with "->" edges. Each undirected edge appears once.
//
// # Dependencies
//
// SVG rendering runs Graphviz in-process through [github.com/goccy/go-graphviz].
package nodelink
