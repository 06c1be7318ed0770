package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"provisionhub/api"
	"provisionhub/api/router/handlers"
	"provisionhub/config"
	"provisionhub/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the HTTP API server",
	Long: `Serves the table API under /api. View sessions opened through the API are evicted
after server.view_idle_timeout without requests. Press Ctrl+C to shut down gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := serverPort
		if !cmd.Flags().Changed("port") {
			port = config.AppConfig.Server.Port
			logger.Info("Server Command: port flag not set, using config value: %s", port)
		}
		if port == "" {
			logger.Error("Server Command: port is empty after checking flag and config, defaulting to 8778")
			port = "8778"
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, ":"+port, config.AppConfig.Server.ViewIdleTimeout)
	},
}

// runServer blocks until ctx is cancelled or the listener fails.
func runServer(ctx context.Context, addr string, idleTimeout time.Duration) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewServerHandler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		logger.Info("Server Command: Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server Command: ListenAndServe error: %v", err)
			return err
		}
		return nil
	})

	if idleTimeout > 0 {
		eg.Go(func() error {
			sweepViews(egctx, idleTimeout)
			return nil
		})
	}

	eg.Go(func() error {
		<-egctx.Done()
		logger.Info("Server Command: Shutdown signal received...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server Command: Graceful shutdown failed: %v", err)
			return err
		}
		logger.Info("Server Command: Gracefully stopped.")
		return nil
	})

	return eg.Wait()
}

// sweepViews evicts idle view sessions until ctx is done.
func sweepViews(ctx context.Context, idleTimeout time.Duration) {
	interval := idleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := handlers.Views.Sweep(idleTimeout); n > 0 {
				logger.Info("Server Command: evicted %d idle view(s), %d open", n, handlers.Views.Len())
			}
		}
	}
}

func init() {
	serverCmd.Flags().StringVarP(&serverPort, "port", "p", "8778", "Port for the server to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
