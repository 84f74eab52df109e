package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphstat/pkg/pipeline"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// distanceCommand creates the distance command.
func (c *CLI) distanceCommand() *cobra.Command {
	var (
		flags  analysisFlags
		method string
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "distance <file> <origin>",
		Short: "Print shortest-path distances from one node",
		Long: `Print shortest-path distances from one node.

The summary shows how many nodes are reachable, the eccentricity of the
origin (its largest finite distance) and the node where it is reached.
Use --all to list every reachable node with its distance.`,
		Example: `  graphstat distance roads.csv 0
  graphstat distance web.txt 17 --directed --method priority --all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := strconv.Atoi(args[1])
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidOrigin, err, "origin must be an integer, got %q", args[1])
			}
			if err := errs.ValidateChoice(errs.ErrCodeInvalidFormat, "format", output, outputFormats...); err != nil {
				return err
			}
			opts := c.options(cmd, args[0], &flags)
			return c.runDistance(cmd, args[0], origin, method, opts, output, all)
		},
	}

	flags.registerLoad(cmd)
	cmd.Flags().StringVarP(&method, "method", "m", pipeline.DistanceBFS, "search method: bfs, priority")
	cmd.Flags().StringVarP(&output, "format", "f", outputText, "output format: text, json, yaml")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every reachable node")

	return cmd
}

func (c *CLI) runDistance(cmd *cobra.Command, path string, origin int, method string, opts pipeline.Options, output string, all bool) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx, true)
	defer runner.Close()

	data, err := pipeline.ReadFile(path)
	if err != nil {
		return err
	}
	imp, err := runner.Load(ctx, data, opts)
	if err != nil {
		return err
	}
	rep, err := runner.Distances(ctx, imp.Graph, origin, method)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		printDistanceText(w, rep, all)
		return nil
	}
}
