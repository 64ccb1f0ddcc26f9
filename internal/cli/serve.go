package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/api"
	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		font     string
		fontSize float64
		noCache  bool
		cfg      api.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Endpoints:
  POST /v1/layout      lay out a scene document
  POST /v1/diagram     render the laid-out item tree (svg or dot)
  POST /v1/text-block  estimate the box needed for lines of text
  GET  /v1/widgets     list the item types
  GET  /healthz        liveness check
  GET  /version        build information

The listen address and font default to the [server] section of the config
file; the cache backend to [cache].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("font") {
				font = c.Config.Server.Font
			}

			store, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "api:"), c.Logger)
			runner.TTL = c.Config.Cache.TTL.Duration
			defer runner.Close()

			cfg.Font = font
			cfg.FontSize = fontSize
			cfg.Metrics = c.Config.Text.metrics()
			srv := api.NewServer(runner, cfg)

			printInfo("Serving on %s", addr)
			printDetail("cache: %s", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&font, "font", "", "TrueType/OpenType font for text items")
	cmd.Flags().Float64Var(&fontSize, "font-size", 0, "font size in points")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", api.DefaultMaxBodyBytes, "request body limit in bytes")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "timeout", api.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
