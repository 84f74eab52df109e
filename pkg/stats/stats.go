// Package stats summarizes a graph: size, degree distribution, connectivity
// and diameter.
//
// [Compute] is the single entry point. The diameter method is selectable:
//
//   - [MethodStrip] (default): tree stripping plus bounded search
//   - [MethodBFS]: one breadth-first search per node
//   - [MethodPriority]: one priority search per node
//
// All methods produce the same diameter; they differ only in running time.
package stats

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/graphstat/pkg/diameter"
	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/search"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Method selects how the diameter is computed.
type Method string

const (
	MethodStrip    Method = "strip"
	MethodBFS      Method = "bfs"
	MethodPriority Method = "priority"
)

// Methods lists every supported method, default first.
var Methods = []string{string(MethodStrip), string(MethodBFS), string(MethodPriority)}

// ParseMethod validates a method name. The empty string selects MethodStrip.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return MethodStrip, nil
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidMethod, "method", s, Methods...); err != nil {
		return "", err
	}
	return Method(s), nil
}

// Stats is the summary of one graph.
type Stats struct {
	Nodes           int     `json:"nodes" yaml:"nodes"`
	Edges           int     `json:"edges" yaml:"edges"`
	Ignored         int     `json:"ignored" yaml:"ignored"`
	Directed        bool    `json:"directed" yaml:"directed"`
	MaxDegree       int     `json:"max_degree" yaml:"max_degree"`
	AverageDegree   float64 `json:"average_degree" yaml:"average_degree"`
	DegreeHistogram []int   `json:"degree_histogram" yaml:"degree_histogram"`

	// Diameter is nil only for the empty graph.
	Diameter   *int `json:"diameter" yaml:"diameter"`
	Components int  `json:"components" yaml:"components"`

	Method    Method `json:"method" yaml:"method"`
	CoreNodes int    `json:"core_nodes" yaml:"core_nodes"`
	Searches  int    `json:"searches" yaml:"searches"`

	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// Options configures Compute.
type Options struct {
	Method Method
	Engine diameter.Options
}

// Compute summarizes g.
func Compute(ctx context.Context, g *graph.Graph, opts Options) (*Stats, error) {
	start := time.Now()
	method := opts.Method
	if method == "" {
		method = MethodStrip
	}

	s := &Stats{
		Nodes:           g.NodeCount(),
		Edges:           g.EdgeCount(),
		Ignored:         g.Ignored(),
		Directed:        g.Directed(),
		MaxDegree:       g.MaxDegree(),
		AverageDegree:   g.AverageDegree(),
		DegreeHistogram: g.DegreeHistogram(),
		Method:          method,
	}
	_, s.Components = search.Components(g)

	engine := diameter.New(opts.Engine)
	var (
		res *diameter.Result
		err error
	)
	switch method {
	case MethodStrip:
		res, err = engine.Analyze(ctx, g)
	case MethodBFS:
		res, err = engine.Exhaustive(ctx, g, search.BFS)
	case MethodPriority:
		res, err = engine.Exhaustive(ctx, g, search.PrioritySearch)
	default:
		return nil, errs.New(errs.ErrCodeInvalidMethod, "unknown method %q", method)
	}
	if err != nil {
		return nil, err
	}

	if d, ok := res.Value(); ok {
		s.Diameter = &d
	}
	s.CoreNodes = res.CoreNodes
	s.Searches = res.Searches
	s.Elapsed = time.Since(start)
	return s, nil
}

// DiameterString formats the diameter, or "-" when it is undefined.
func (s *Stats) DiameterString() string {
	if s.Diameter == nil {
		return "-"
	}
	return strconv.Itoa(*s.Diameter)
}
