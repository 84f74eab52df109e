package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/graphstat/pkg/graph"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Malformed describes a skipped input line.
type Malformed struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // why it was rejected
}

// Reader streams edges from CSV or tab input.
type Reader struct {
	// OnMalformed, if set, is called for every skipped line.
	OnMalformed func(Malformed)

	src       io.Reader
	format    Format
	malformed int
	lines     int
	err       error
}

// NewReader returns a Reader over r. Only FormatCSV and FormatTab are
// streamable; use ReadJSON for JSON documents.
func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{src: r, format: format}
}

// Edges yields each well-formed edge. The sequence can be consumed once.
func (r *Reader) Edges() iter.Seq[graph.Edge] {
	return func(yield func(graph.Edge) bool) {
		var parse func(string) (graph.Edge, bool, error)
		switch r.format {
		case FormatCSV:
			parse = parseCSVLine
		case FormatTab:
			parse = parseTabLine
		default:
			r.err = errs.New(errs.ErrCodeInvalidFormat, "format %q cannot be streamed", r.format)
			return
		}

		sc := bufio.NewScanner(r.src)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			r.lines++
			if r.format == FormatCSV && r.lines == 1 {
				continue // header
			}
			text := sc.Text()
			e, ok, err := parse(text)
			if err != nil {
				r.malformed++
				if r.OnMalformed != nil {
					r.OnMalformed(Malformed{Line: r.lines, Text: text, Err: err})
				}
				continue
			}
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			r.err = errs.Wrap(errs.ErrCodeParse, err, "read line %d", r.lines+1)
		}
	}
}

// Err returns the first I/O error encountered by Edges.
func (r *Reader) Err() error { return r.err }

// Malformed returns the number of skipped lines so far.
func (r *Reader) Malformed() int { return r.malformed }

// Lines returns the number of lines read so far.
func (r *Reader) Lines() int { return r.lines }

// parseCSVLine splits on commas, drops empty fields and takes the first two.
// It returns ok=false for lines without content.
func parseCSVLine(line string) (graph.Edge, bool, error) {
	var fields []string
	for f := range strings.SplitSeq(line, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return edgeFromFields(fields)
}

// parseTabLine strips '#' comments and splits on whitespace.
func parseTabLine(line string) (graph.Edge, bool, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return edgeFromFields(strings.Fields(line))
}

func edgeFromFields(fields []string) (graph.Edge, bool, error) {
	switch len(fields) {
	case 0:
		return graph.Edge{}, false, nil
	case 1:
		return graph.Edge{}, false, fmt.Errorf("expected two node ids, got %q", fields[0])
	}
	from, err := parseID(fields[0])
	if err != nil {
		return graph.Edge{}, false, err
	}
	to, err := parseID(fields[1])
	if err != nil {
		return graph.Edge{}, false, err
	}
	return graph.Edge{From: from, To: to}, true, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q", s)
	}
	if id < 0 {
		return 0, fmt.Errorf("negative node id %d", id)
	}
	return id, nil
}

// =============================================================================
// JSON documents
// =============================================================================

type document struct {
	Directed bool         `json:"directed"`
	Nodes    int          `json:"nodes"`
	Edges    []graph.Edge `json:"edges"`
}

// ReadJSON decodes a node-link document into a graph. The node count in
// the document bounds the graph; edges outside it are counted as ignored.
// A missing or zero node count lets the graph grow to fit.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	return readJSON(r, graph.MaxNodeLimit)
}

// readJSON is ReadJSON with a node ceiling. A document declaring more nodes
// than limit is rejected rather than allocated.
func readJSON(r io.Reader, limit int) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "decode")
	}
	if doc.Nodes < 0 {
		return nil, errs.New(errs.ErrCodeParse, "negative node count %d", doc.Nodes)
	}
	if doc.Nodes > limit {
		return nil, errs.New(errs.ErrCodeInvalidCapacity, "node count %d exceeds the node limit %d", doc.Nodes, limit)
	}
	kind := graph.Undirected
	if doc.Directed {
		kind = graph.Directed
	}
	return graph.FromSlice(doc.Edges, graph.BuildOptions{Capacity: doc.Nodes, Kind: kind, NodeLimit: limit}), nil
}

// =============================================================================
// Files
// =============================================================================

// ImportOptions configures ImportFile and Load.
type ImportOptions struct {
	// Format overrides extension-based detection.
	Format Format

	// Build is passed to graph.FromEdges for CSV and tab input. JSON
	// documents carry their own capacity and kind and only honor
	// Build.NodeLimit.
	Build graph.BuildOptions

	// OnMalformed receives skipped lines.
	OnMalformed func(Malformed)
}

// ImportResult carries read statistics alongside the graph.
type ImportResult struct {
	Graph     *graph.Graph
	Format    Format
	Lines     int
	Malformed int
}

// Load reads a graph from r.
func Load(r io.Reader, opts ImportOptions) (*ImportResult, error) {
	if opts.Format == FormatJSON {
		limit := opts.Build.NodeLimit
		if limit <= 0 {
			limit = graph.MaxNodeLimit
		}
		g, err := readJSON(r, limit)
		if err != nil {
			return nil, err
		}
		return &ImportResult{Graph: g, Format: FormatJSON}, nil
	}

	rd := NewReader(r, opts.Format)
	rd.OnMalformed = opts.OnMalformed
	g := graph.FromEdges(rd.Edges(), opts.Build)
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return &ImportResult{
		Graph:     g,
		Format:    opts.Format,
		Lines:     rd.Lines(),
		Malformed: rd.Malformed(),
	}, nil
}

// ImportFile reads the edge list at path.
func ImportFile(path string, opts ImportOptions) (*ImportResult, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, opts)
}
