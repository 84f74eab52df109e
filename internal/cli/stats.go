package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/pkg/diameter"
	"github.com/matzehuels/graphstat/pkg/pipeline"
	"github.com/matzehuels/graphstat/pkg/stats"

	errs "github.com/matzehuels/graphstat/pkg/errors"
	pkgio "github.com/matzehuels/graphstat/pkg/io"
)

// maxMalformedWarnings bounds the per-line warnings of one run. The total
// is always reported.
const maxMalformedWarnings = 5

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		flags  analysisFlags
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Compute node, degree and diameter statistics of an edge list",
		Long: `Compute node, degree and diameter statistics of an edge list.

The input format is taken from the file extension (.csv, .txt/.tsv/.tab,
.json) unless --input-format is given. Lines that cannot be parsed are
skipped with a warning.

Methods:
  strip     strip tree-like parts, then search only the remaining core (default)
  bfs       breadth-first search from every node
  priority  priority search from every node`,
		Example: `  graphstat stats roads.csv
  graphstat stats web.txt --directed --method priority
  graphstat stats web.txt --format json --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateChoice(errs.ErrCodeInvalidFormat, "format", output, outputFormats...); err != nil {
				return err
			}
			opts := c.options(cmd, args[0], &flags)
			return c.runStats(cmd, args[0], opts, output, quiet)
		},
	}

	flags.registerLoad(cmd)
	flags.registerCache(cmd)
	flags.registerAnalysis(cmd)
	cmd.Flags().StringVarP(&output, "format", "f", outputText, "output format: text, json, yaml")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress view")

	return cmd
}

func (c *CLI) runStats(cmd *cobra.Command, path string, opts pipeline.Options, output string, quiet bool) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx, opts.NoCache)
	defer runner.Close()

	data, err := pipeline.ReadFile(path)
	if err != nil {
		return err
	}

	malformed := 0
	opts.OnMalformed = func(m pkgio.Malformed) {
		malformed++
		if malformed <= maxMalformedWarnings {
			c.Logger.Warn("skipped malformed line", "line", m.Line, "text", m.Text, "err", m.Err)
		}
	}

	var res *pipeline.Result
	execute := func(p diameter.Progress) error {
		opts.Progress = p
		r, err := runner.Execute(ctx, data, opts)
		res = r
		return err
	}

	if !quiet && isTerminal(os.Stderr) {
		err = runWithProgress(ctx, os.Stderr, path, execute)
	} else {
		err = execute(logProgress(c.Logger))
	}
	if err != nil {
		return err
	}

	if malformed > maxMalformedWarnings {
		c.Logger.Warn("skipped malformed lines", "count", malformed)
	}

	w := cmd.OutOrStdout()
	if output == outputText {
		printStatsText(w, path, res.Stats, res.CacheInfo.StatsHit)
		return nil
	}
	return stats.Encode(w, res.Stats, output)
}
