package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/http/middleware"
	"github.com/davidbz/matchwise/internal/metrics"
	"github.com/davidbz/matchwise/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	metrics     metrics.Config
	handler     *Handler
	middlewares middleware.Middleware
	gatherer    prometheus.Gatherer
	srv         *http.Server
}

// NewServer creates a new HTTP server. gatherer may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	handler *Handler,
	middlewares middleware.Middleware,
	gatherer prometheus.Gatherer,
) *Server {
	return &Server{
		config:      cfg.Server,
		metrics:     cfg.Metrics,
		handler:     handler,
		middlewares: middlewares,
		gatherer:    gatherer,
		srv:         nil,
	}
}

// Routes builds the routed handler with the middleware chain applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/jobs/{id}/matches", s.handler.HandleMatchJob)
	mux.HandleFunc("POST /v1/matches/batch", s.handler.HandleBatchMatch)
	mux.HandleFunc("GET /v1/matches/stats", s.handler.HandleStats)
	mux.HandleFunc("GET /v1/candidates/{id}/jobs", s.handler.HandleJobsForCandidate)
	mux.HandleFunc("DELETE /v1/cache/jobs/{id}", s.handler.HandleInvalidateJob)
	mux.HandleFunc("DELETE /v1/cache/candidates/{id}", s.handler.HandleInvalidateCandidate)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)

	if s.metrics.Enabled && s.gatherer != nil {
		mux.Handle("GET "+s.metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
