// Package io reads and writes edge lists.
//
// # Formats
//
// Three formats are supported, selected by [DetectFormat] from the file
// extension or named explicitly with [ParseFormat]:
//
//   - CSV (.csv): the first line is a header and is always skipped. Each
//     following line holds two integer node ids separated by a comma.
//     Empty fields are skipped and extra columns are ignored.
//
//     id_1,id_2
//     0,1
//     1,2
//
//   - Tab (.txt, .tsv, .tab, .edges): whitespace separated pairs. Text after
//     '#' is a comment; blank lines are skipped.
//
//     # from	to
//     0	1
//     1	2
//
//   - JSON (.json): a node-link document carrying the node count, the graph
//     kind and the edge array.
//
//     {"directed": false, "nodes": 3, "edges": [{"from": 0, "to": 1}]}
//
// # Reading
//
// CSV and tab input is streamed. A [Reader] yields edges through
// [Reader.Edges], which plugs directly into graph.FromEdges:
//
//	r := io.NewReader(f, io.FormatCSV)
//	r.OnMalformed = func(m io.Malformed) { log.Warn("skipped", "line", m.Line) }
//	g := graph.FromEdges(r.Edges(), graph.BuildOptions{})
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// Lines that do not hold two non-negative integers are reported through
// OnMalformed and skipped; they never stop the read. [Reader.Err] only
// reports I/O failures.
//
// [ImportFile] wraps the above for a path.
//
// # Writing
//
// [Write] and [ExportFile] emit any of the three formats. Undirected graphs
// write each edge once, with the smaller id first.
package io
