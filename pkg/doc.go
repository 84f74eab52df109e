// Package pkg provides the core libraries for graphstat.
//
// # Overview
//
// Graphstat reads large edge lists and reports node and edge counts, the
// degree distribution, connectivity and the exact diameter. The diameter
// engine strips tree-like parts of the graph first, then runs bounded
// searches over the remaining core only. The pkg directory is organized into
// three areas:
//
//  1. Domain logic: [graph], [queue], [search], [diameter], [stats]
//  2. Input and output: [io], [render/nodelink]
//  3. Infrastructure: [pipeline], [cache], [config], [observability],
//     [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Edge list file or request body
//	         ↓
//	    [io] package (parse text, CSV or JSON edges)
//	         ↓
//	    [graph] package (adjacency lists)
//	         ↓
//	    [diameter] package (strip, root search, bounded origin search)
//	         ↓
//	    [stats] package (summary as text, JSON or YAML)
//
// [pipeline] runs these steps for the CLI and the HTTP server and keeps
// results in a [cache] keyed by the input hash and the analysis options.
//
// # Quick Start
//
//	r, err := io.ImportFile("roads.txt", io.ImportOptions{})
//	if err != nil {
//	    return err
//	}
//	res, err := diameter.New(diameter.Options{}).Analyze(ctx, r.Graph)
//	fmt.Println(res.Diameter)
//
// # Main Packages
//
// [graph] - Growable adjacency-list graph with dense integer node ids.
// Undirected edges are stored in both directions.
//
// [queue] - The double-buffered FIFO frontier and the scan-based priority bag
// used by the traversals.
//
// [search] - Single-origin distances by breadth-first or priority search.
//
// [diameter] - The tree-stripping diameter engine with progress reporting
// and parallel origin searches.
//
// [stats] - Graph summaries and their JSON and YAML encodings.
//
// [io] - Edge list readers and writers. Malformed lines are reported, not
// fatal.
//
// [render/nodelink] - Graphviz DOT and SVG drawings that color stripped and
// core nodes differently.
//
// [pipeline] - Load, analyze, distance and render operations with caching.
//
// [cache] - File, Redis and MongoDB result caches behind one interface.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Prometheus metrics wired through pipeline, cache and
// HTTP hooks.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/diameter/...    # Specific package
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/graph
// [queue]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/queue
// [search]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/search
// [diameter]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/diameter
// [stats]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/stats
// [io]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphstat/pkg/buildinfo
package pkg
