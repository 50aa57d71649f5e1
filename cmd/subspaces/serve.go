// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/troy-haydens-bot/Strang-4-subspace/internal/httpapi"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API used by the visualizer",
		Long:  "Starts an HTTP server with /calculate, /health, /metrics (and /api/* aliases) until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				if port < 0 || port > 65535 {
					return fmt.Errorf("invalid port: %d", port)
				}
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, httpapi.NewServer(a.cfg, log.Logger))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port; overrides config and SUBSPACES_PORT")

	return cmd
}

// runServe blocks until ctx is done or the server fails, then shuts down.
func runServe(ctx context.Context, srv *httpapi.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("calculate", fmt.Sprintf("http://%s/calculate", srv.Addr())).
			Str("health", fmt.Sprintf("http://%s/health", srv.Addr())).
			Str("metrics", fmt.Sprintf("http://%s/metrics", srv.Addr())).
			Msg("Endpoints available")
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
		return err
	}
	log.Info().Msg("Server shutdown complete")

	return nil
}
