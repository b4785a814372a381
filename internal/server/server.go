// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

// Package server exposes a GraphStore over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/sourcedestination/saidb/pkg/health"
)

// Version is reported in the OpenAPI document.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr   string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps a chi router with a huma API over one GraphStore.
type Server struct {
	router chi.Router
	api    huma.API
	cfg    Config
	store  store.GraphStore
	health *health.Tracker
}

// New builds the router and registers every route. It does not listen.
func New(cfg Config, st store.GraphStore) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, saierr.New(saierr.CodeConfigValidateInvalidValue, "listen address is required")
	}
	if st == nil {
		return nil, saierr.New(saierr.CodeConfigValidateInvalidValue, "graph store is required")
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			return nil, saierr.New(saierr.CodeConfigValidateInvalidValue,
				"wildcard CORS origin is not allowed, list origins explicitly")
		}
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(securityHeaders)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(corsMiddleware(cfg.CORSOrigins))
	}

	humaConfig := huma.DefaultConfig("saidb", Version)
	humaConfig.Info.Description = "Labeled multigraph store"
	api := humachi.New(r, humaConfig)

	srv := &Server{
		router: r,
		api:    api,
		cfg:    cfg,
		store:  st,
		health: &health.Tracker{},
	}
	srv.registerRoutes()

	return srv, nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API for registering additional operations.
func (s *Server) API() huma.API {
	return s.api
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return saierr.Wrapf(err, saierr.CodeServerStartFailure, "listening on %s", s.cfg.ListenAddr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctxlog.WithLogger(context.Background(), logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- saierr.Wrap(err, saierr.CodeServerStartFailure, "serving http")
		}
		close(errCh)
	}()

	logger.Info("http server listening", "addr", ln.Addr().String(), "backend", s.store.Backend())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return saierr.Wrap(err, saierr.CodeServerShutdownFailure, "shutting down")
	}
	logger.Info("http server stopped")

	return <-errCh
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	})
}
