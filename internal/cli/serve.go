package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/pestops-backend/internal/app"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the appointment records API until SIGINT or SIGTERM.

The schema is migrated on start. /metrics is mounted on the API when
METRICS_ENABLED is on, and also served on METRICS_ADDR when that is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.Server.Run(gctx)
			})
			if a.Cfg.MetricsAddr != "" {
				a.Metrics.StartServer(gctx, a.Log, a.Cfg.MetricsAddr)
			}
			if err := g.Wait(); err != nil && err != context.Canceled {
				a.Log.Error("server stopped", "error", err)
				return err
			}
			a.Log.Info("server stopped")
			return nil
		},
	}
}
