package nodelink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/graphstat/pkg/diameter"
	"github.com/matzehuels/graphstat/pkg/graph"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// DefaultMaxNodes is the node limit applied when Options.MaxNodes is zero.
const DefaultMaxNodes = 2000

// Options configures node-link diagram rendering.
type Options struct {
	// Weights adds the stripped-tree Weight of each core node to its label.
	Weights bool

	// MaxNodes is the largest graph ToDOT accepts. Zero means
	// DefaultMaxNodes; negative disables the limit.
	MaxNodes int
}

// Node colors.
const (
	coreFill     = "#8ecae6"
	strippedFill = "#e9ecef"
)

// ToDOT converts g to Graphviz DOT. res may be nil, in which case every node
// is drawn the same way.
func ToDOT(g *graph.Graph, res *diameter.Result, opts Options) (string, error) {
	limit := opts.MaxNodes
	if limit == 0 {
		limit = DefaultMaxNodes
	}
	if limit > 0 && g.NodeCount() > limit {
		return "", errs.New(errs.ErrCodeInvalidInput,
			"graph has %d nodes, render limit is %d", g.NodeCount(), limit)
	}

	kind, arrow := "graph", "--"
	if g.Directed() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for v := range g.NodeCount() {
		fmt.Fprintf(&buf, "  %d [%s];\n", v, nodeAttrs(v, res, opts.Weights))
	}

	buf.WriteString("\n")
	for e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d %s %d;\n", e.From, arrow, e.To)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeAttrs(v int, res *diameter.Result, weights bool) string {
	label := fmt.Sprintf("label=%q", fmt.Sprint(v))
	if res == nil || res.Core == nil {
		return label
	}
	if !res.Core[v] {
		return label + fmt.Sprintf(", fillcolor=%q, style=\"filled,dashed\", fontcolor=grey40", strippedFill)
	}
	if weights {
		w := res.Weights[v]
		label = fmt.Sprintf("label=%q", fmt.Sprintf("%d\n%d/%d", v, w.Deep, w.Branch))
	}
	return label + fmt.Sprintf(", fillcolor=%q", coreFill)
}
