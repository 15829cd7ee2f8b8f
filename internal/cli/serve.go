package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/api"
	"github.com/matzehuels/units/pkg/builtin"
	"github.com/matzehuels/units/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry over HTTP",
		Long: `Serve the registry as a JSON API.

Units defined through the API are persisted in the configured store.
Request, conversion and registry counters are available at /v1/stats.
The server shuts down gracefully on interrupt.`,
		Example: `  units serve
  units serve --addr :9090
  curl -d '{"value": 6, "from": "in", "to": "cm"}' localhost:8080/v1/convert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = c.config.Server.Addr
			}

			stats := observability.NewStats()
			observability.Install(stats)

			prog := newProgress(logger)
			env, err := c.newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()
			prog.done(fmt.Sprintf("Loaded %d units", env.reg.Len()))

			srv := api.New(env.reg,
				api.WithStore(env.store),
				api.WithLogger(logger),
				api.WithStats(stats),
				api.WithProtected(builtin.IsBuiltin),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
