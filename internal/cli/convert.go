package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/pkg/pipeline"

	pkgio "github.com/matzehuels/graphstat/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags analysisFlags
		to    string
	)

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite an edge list as CSV, tab or JSON",
		Long: `Rewrite an edge list as CSV, tab or JSON.

Both formats are taken from the file extensions unless --input-format or
--to is given. Undirected graphs are written with each edge once.
Malformed input lines and edges outside --capacity are dropped.`,
		Example: `  graphstat convert roads.csv roads.txt
  graphstat convert web.txt web.json --directed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := pkgio.ParseFormat(to, args[1])
			if err != nil {
				return err
			}
			opts := c.options(cmd, args[0], &flags)
			return c.runConvert(cmd, args[0], args[1], outFormat, opts)
		},
	}

	flags.registerLoad(cmd)
	cmd.Flags().StringVarP(&to, "to", "t", "", "output format: csv, tab, json (default: from extension)")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, in, out string, format pkgio.Format, opts pipeline.Options) error {
	ctx := cmd.Context()
	timer := startStage(c.Logger, "convert")

	runner := c.newRunner(ctx, true)
	defer runner.Close()

	data, err := pipeline.ReadFile(in)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Reading %s...", in))
	spinner.Start()
	imp, err := runner.Load(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Failed to read " + in)
		return err
	}

	spinner.Update(fmt.Sprintf("Writing %s...", out))
	if err := pkgio.ExportFile(imp.Graph, out, format); err != nil {
		spinner.StopWithError("Failed to write " + out)
		return err
	}
	spinner.Stop()

	timer.done("converted", "edges", imp.Graph.EdgeCount(), "ignored", imp.Graph.Ignored(), "to", format)
	printSuccess("Converted %s to %s", imp.Format, format)
	printCounts(cmd.OutOrStdout(), imp.Graph.NodeCount(), imp.Graph.EdgeCount(), false)
	printFile(out)
	if imp.Malformed > 0 {
		printWarning("Skipped %d malformed lines", imp.Malformed)
	}
	printNextStep("Compute statistics", "graphstat stats "+out)
	return nil
}
