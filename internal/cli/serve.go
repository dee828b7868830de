package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/server"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes generation, upload and rendering over HTTP. Graphs are
cached with the configured backend; set [cache] backend = "redis" to share
the cache between several instances.

Routes:
  GET  /healthz
  GET  /families
  GET  /generate/{family}?n=5&format=svg
  POST /graphs              upload .grphc or JSON
  GET  /graphs/{id}?format=tikz
  GET  /label?text=v_{1}
  GET  /colour?value=navy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			printSuccess("Listening on %s", StyleHighlight.Render(addr))
			printDetail("Cache: %s", cfg.Cache.Backend)
			if err := server.New(runner, cfg, c.Logger).ListenAndServe(ctx, addr); err != nil {
				return err
			}
			printInfo("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from settings)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the graph cache")

	return cmd
}
