package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphstat/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached statistics and renderings",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.CacheOptions()
			if opts.Backend == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			cch, err := cache.Open(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", opts.Backend, err)
			}
			defer cch.Close()

			clearer, ok := cch.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", opts.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s cache: %w", opts.Backend, err)
			}

			printSuccess("Cleared %s cache", opts.Backend)
			printDetail("%s", cacheLocation(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached results are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.Config.CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes the backend: the directory for the file cache,
// the connection string otherwise.
func cacheLocation(opts cache.OpenOptions) string {
	switch opts.Backend {
	case "", cache.BackendFile:
		return opts.Dir
	case cache.BackendRedis:
		return redact(opts.URL) + " (prefix " + opts.Prefix + ")"
	case cache.BackendMongo:
		return redact(opts.URL) + " (" + opts.Database + "." + opts.Collection + ")"
	default:
		return opts.Backend
	}
}

// redact hides the password of a connection string.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
