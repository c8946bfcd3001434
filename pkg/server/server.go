// Package server exposes the comparison session over HTTP with Prometheus
// metrics at /metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the HTTP API
type Server struct {
	handler  *Handler
	registry *prometheus.Registry
	metrics  *Metrics
	logger   zerolog.Logger
	mux      *http.ServeMux
}

// New wires routes and metrics. metrics must have been registered on registry.
func New(handler *Handler, registry *prometheus.Registry, metrics *Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		handler:  handler,
		registry: registry,
		metrics:  metrics,
		logger:   logger.With().Str("component", "server").Logger(),
		mux:      http.NewServeMux(),
	}

	for _, route := range handler.Routes() {
		s.mux.HandleFunc(route.Method+" "+route.Path, Chain(route.Handler, LogRequest(s.logger, metrics, route.Path)))
	}
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs until ctx is cancelled, then drains for up to 10s
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting TCO comparison API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info().Msg("Shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
