package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartcore/internal/api"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

  GET  /healthz
  POST /v1/bind
  POST /v1/layout?width=&height=&refresh=

Request bodies are JSON chart definitions. Reports are cached in the backend
chosen with --cache; use --cache=redis to share them between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s (cache: %s)", StyleHighlight.Render(addr), c.cacheBackend)
			return api.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
