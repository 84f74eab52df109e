package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --config and --verbose flags are resolved before any
// subcommand runs:
//   - the config file is loaded (see package config for the lookup order)
//   - the log level comes from the config, or debug with --verbose
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graphstat computes distance statistics of large graphs",
		Long: `Graphstat reads edge lists and reports node and edge counts, the degree
distribution and the exact diameter. The diameter search strips tree-like
parts of the graph first and only searches the remaining core.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(contextWithLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/graphstat/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.distanceCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
