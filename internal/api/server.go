// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api serves a read-only view of the resolved settings table.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/biconfig/internal/api/middleware"
	"github.com/ManuGH/biconfig/internal/config"
	"github.com/ManuGH/biconfig/internal/log"
)

// DefaultShutdownTimeout bounds graceful shutdown when Options leaves it unset.
const DefaultShutdownTimeout = 10 * time.Second

// Options tunes the sidecar.
type Options struct {
	RateLimit       middleware.RateLimitConfig // zero value selects the default per-IP limit
	DisableAccess   bool                       // suppress per-request access logs
	ShutdownTimeout time.Duration
}

// Server serves the settings table over HTTP.
type Server struct {
	settings config.Settings
	registry *config.Registry
	opts     Options
	logger   zerolog.Logger
	router   chi.Router
}

// New builds a server over s. The settings value is copied once; later
// changes to the caller's value are not observed.
func New(s config.Settings, opts Options) (*Server, error) {
	r, err := config.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("settings registry: %w", err)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	srv := &Server{
		settings: config.Clone(s),
		registry: r,
		opts:     opts,
		logger:   log.WithComponent("api"),
	}
	srv.router = srv.routes()
	return srv, nil
}

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableLogging:   !s.opts.DisableAccess,
		EnableRateLimit: true,
		RateLimit:       s.opts.RateLimit,
	})
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/settings", s.handleListSettings)
	r.Get("/api/settings/{name}", s.handleGetSetting)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// It takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info().Str(log.FieldAddr, ln.Addr().String()).Msg("settings sidecar listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down settings sidecar")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		_ = httpSrv.Close()
		<-errCh
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	return nil
}
