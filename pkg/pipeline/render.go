package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphstat/pkg/cache"
	"github.com/matzehuels/graphstat/pkg/diameter"
	"github.com/matzehuels/graphstat/pkg/render/nodelink"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Render output formats.
const (
	OutputDOT = "dot"
	OutputSVG = "svg"
)

// Outputs lists the supported render outputs.
var Outputs = []string{OutputDOT, OutputSVG}

// RenderOptions configures Render.
type RenderOptions struct {
	Output   string // dot or svg; default svg
	Weights  bool   // label core nodes with their stripped-tree weight
	MaxNodes int    // see nodelink.Options
}

// ValidateOutput checks that an output format is supported.
func ValidateOutput(output string) error {
	return errs.ValidateChoice(errs.ErrCodeInvalidFormat, "output", output, Outputs...)
}

// Render loads data, runs the diameter reduction for core highlighting, and
// renders the graph. The rendering is cached under the input hash.
func (r *Runner) Render(ctx context.Context, data []byte, opts Options, ropts RenderOptions) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if ropts.Output == "" {
		ropts.Output = OutputSVG
	}
	if err := ValidateOutput(ropts.Output); err != nil {
		return nil, false, err
	}

	key := r.Keyer.RenderKey(cache.Hash(data), cache.RenderKeyOpts{
		StatsKeyOpts: opts.StatsKeyOpts(),
		Output:       ropts.Output,
		Weights:      ropts.Weights,
		MaxNodes:     ropts.MaxNodes,
	})
	if r.useCache(opts) && !opts.Refresh {
		if cached, ok := r.cacheGet(ctx, key, cache.KeyTypeRender); ok {
			return cached, true, nil
		}
	}

	imp, err := r.Load(ctx, data, opts)
	if err != nil {
		return nil, false, fmt.Errorf("load: %w", err)
	}

	engine := diameter.New(diameter.Options{Logger: opts.Logger, Workers: opts.Workers})
	res, err := engine.Analyze(ctx, imp.Graph)
	if err != nil {
		return nil, false, fmt.Errorf("analyze: %w", err)
	}

	dot, err := nodelink.ToDOT(imp.Graph, res, nodelink.Options{
		Weights:  ropts.Weights,
		MaxNodes: ropts.MaxNodes,
	})
	if err != nil {
		return nil, false, err
	}

	out := []byte(dot)
	if ropts.Output == OutputSVG {
		if out, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return nil, false, fmt.Errorf("render svg: %w", err)
		}
	}

	r.Logger.Info("rendered graph",
		"output", ropts.Output,
		"nodes", imp.Graph.NodeCount(),
		"core", res.CoreNodes,
		"bytes", len(out))

	if r.useCache(opts) {
		r.cacheSet(ctx, key, cache.KeyTypeRender, out, cache.TTLRender)
	}
	return out, false, nil
}
