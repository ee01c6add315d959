package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/internal/server"
)

// serveCommand creates the serve command, which runs the web site until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		noMetrics bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web site",
		Long: `Run the web site: home page, charts page, contact page, JSON API and
chart images. The listen address, timeouts and cache backend come from the
config file; --listen overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if listen != "" {
				cfg.Listen = listen
			}
			if noMetrics {
				cfg.Metrics = false
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(cfg, runner, c.Logger)
			if err != nil {
				return err
			}
			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Listen)))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
