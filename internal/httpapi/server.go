// SPDX-License-Identifier: MIT

// Package httpapi exposes the subspace engine over HTTP for the browser visualizer.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/troy-haydens-bot/Strang-4-subspace/internal/config"
	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

// Server wires routes, middleware, engine and metrics.
type Server struct {
	router  *mux.Router
	server  *http.Server
	engine  *subspace.Engine
	metrics *Metrics
	cfg     config.ServerConfig
	log     zerolog.Logger
}

// NewServer builds a Server from a validated configuration. It does not listen.
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		engine: subspace.New(
			subspace.WithMaxDims(cfg.Limits.MaxRows, cfg.Limits.MaxCols),
			subspace.WithTolerance(cfg.Numeric.Tolerance),
			subspace.WithLogger(logger),
		),
		metrics: NewMetrics(),
		cfg:     cfg.Server,
		log:     logger,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes. /api/* mirrors the paths the
// visualizer's dev proxy forwards.
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.corsMiddleware)

	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.jsonContentTypeMiddleware)
	for _, prefix := range []string{"", "/api"} {
		api.HandleFunc(prefix+"/calculate", s.Calculate).Methods(http.MethodPost, http.MethodOptions)
		api.HandleFunc(prefix+"/health", s.Health).Methods(http.MethodGet, http.MethodOptions)
	}

	s.router.NotFoundHandler = http.HandlerFunc(s.NotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.MethodNotAllowed)
}

// Handler returns the routed handler (for embedding and tests).
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. A clean shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("Starting HTTP server")
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
