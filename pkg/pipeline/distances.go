package pipeline

import (
	"context"

	"github.com/matzehuels/graphstat/pkg/graph"
	"github.com/matzehuels/graphstat/pkg/search"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Distance methods accepted by Distances.
const (
	DistanceBFS      = "bfs"
	DistancePriority = "priority"
)

// DistanceMethods lists the methods accepted by Distances, default first.
var DistanceMethods = []string{DistanceBFS, DistancePriority}

// DistanceReport holds the single-source distances from one origin.
type DistanceReport struct {
	Origin       int              `json:"origin" yaml:"origin"`
	Method       string           `json:"method" yaml:"method"`
	Reached      int              `json:"reached" yaml:"reached"`
	Eccentricity int              `json:"eccentricity" yaml:"eccentricity"`
	Farthest     int              `json:"farthest" yaml:"farthest"`
	Distances    search.Distances `json:"distances" yaml:"distances"`
}

// Distances runs one search from origin over g. Unreached nodes hold
// search.Unreached. Distances are not cached: a single search costs no
// more than loading the graph.
func (r *Runner) Distances(ctx context.Context, g *graph.Graph, origin int, method string) (*DistanceReport, error) {
	if method == "" {
		method = DistanceBFS
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidMethod, "method", method, DistanceMethods...); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fn := search.BFS
	if method == DistancePriority {
		fn = search.PrioritySearch
	}
	dist, err := fn(g, origin)
	if err != nil {
		return nil, err
	}

	rep := &DistanceReport{
		Origin:    origin,
		Method:    method,
		Reached:   dist.Count(),
		Distances: dist,
	}
	rep.Eccentricity, _ = dist.Max()
	rep.Farthest, _ = dist.Farthest()

	r.Logger.Debug("distances computed",
		"origin", origin,
		"method", method,
		"reached", rep.Reached,
		"eccentricity", rep.Eccentricity)
	return rep, nil
}
