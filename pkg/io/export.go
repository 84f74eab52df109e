package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/matzehuels/graphstat/pkg/graph"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Header lines written before the edges.
const (
	csvHeader = "id_1,id_2"
	tabHeader = "# from\tto"
)

// Write encodes g to w in the given format. Undirected edges are written
// once with the smaller id first.
func Write(w io.Writer, g *graph.Graph, format Format) error {
	switch format {
	case FormatCSV:
		return writeLines(w, g, csvHeader, ',')
	case FormatTab:
		return writeLines(w, g, tabHeader, '\t')
	case FormatJSON:
		return writeJSON(w, g)
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

func writeLines(w io.Writer, g *graph.Graph, header string, sep byte) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	bw.WriteByte('\n')

	buf := make([]byte, 0, 32)
	for e := range g.Edges() {
		buf = strconv.AppendInt(buf[:0], int64(e.From), 10)
		buf = append(buf, sep)
		buf = strconv.AppendInt(buf, int64(e.To), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, g *graph.Graph) error {
	doc := document{
		Directed: g.Directed(),
		Nodes:    g.NodeCount(),
		Edges:    slices.Collect(g.Edges()),
	}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes g to path. An empty format is detected from the
// extension.
func ExportFile(g *graph.Graph, path string, format Format) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return err
		}
		format = f
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, g, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
