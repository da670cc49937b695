// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer: it decides which URL maps to which
// handler and which middleware runs in front of them. The lookup service is
// built by the caller and injected, so the router can be exercised in tests
// with any repository behind it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/roster-lookup/internal/handler"
	"github.com/sakif/roster-lookup/internal/middleware"
)

// Config holds server configuration.
type Config struct {
	Port int
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	lookup   handler.CandidateLookup
	registry *prometheus.Registry
}

// New creates a Server around lookup. registry is exposed on /metrics;
// pass the one the service's metrics were registered on.
func New(cfg Config, logger *slog.Logger, lookup handler.CandidateLookup, registry *prometheus.Registry) (*Server, error) {
	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		lookup:   lookup,
		registry: registry,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET /                       → lookup page (HTML), ?cpf= triggers a lookup
// GET /api/candidates/{cpf}   → lookup (JSON)
// GET /healthz                → roster size (JSON)
// GET /metrics                → Prometheus metrics
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns unique ID to each request
// 2. RealIP: extracts real client IP from proxy headers
// 3. Recoverer: catches panics and returns 500 instead of crashing
// 4. Logger: logs each request with timing info and the request ID
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	pageHandler, err := handler.NewPageHandler(s.lookup, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandlePage)

	candidateHandler := handler.NewCandidateHandler(s.lookup, s.logger)
	s.router.Get("/healthz", candidateHandler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/candidates/{cpf}", candidateHandler.HandleGetByCPF)
	})

	if s.registry != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait up to 30s for in-flight requests to finish
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
