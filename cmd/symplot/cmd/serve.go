package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symplot/internal/metrics"
	"github.com/njchilds90/symplot/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP tool server",
		Long: `Run the HTTP tool server:

  POST /tool    execute a tool call
  POST /sample  evaluate an expression over a grid
  GET  /schema  tool schema for agent registration
  GET  /health  liveness check
  GET  /metrics Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.logger, metrics.New()).Run(ctx)
		},
	}
	c.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides the config)")
	return c
}
