package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/internal/server"
	"github.com/matzehuels/graphstat/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Edge lists are posted as request bodies to /v1/stats, /v1/distances and
/v1/render. Prometheus metrics are served on /metrics. The server stops
gracefully on SIGINT or SIGTERM.`,
		Example: `  graphstat serve --addr :9090
  curl --data-binary @roads.csv 'localhost:9090/v1/stats?format=csv'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner := c.newRunner(cmd.Context(), noCache)
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Addr:         cfg.Server.Addr,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Defaults: pipeline.Options{
					Capacity:  cfg.Analysis.Capacity,
					NodeLimit: cfg.Server.NodeLimit,
					Directed:  cfg.Analysis.Directed,
					Method:    cfg.Analysis.Method,
					Workers:   cfg.Analysis.Workers,
				},
				Logger: c.Logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from the config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
