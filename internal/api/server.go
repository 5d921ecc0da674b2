package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/agent-tracker/internal/config"
	"github.com/ignite/agent-tracker/internal/pkg/metrics"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/session"
)

// Server represents the tracker HTTP server
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new server for the given session store. m may be nil
// to run without instrumentation.
func NewServer(cfg *config.Config, store *session.Store, renderer *report.Renderer, m *metrics.Metrics) *Server {
	handlers := NewHandlers(store, renderer, cfg)
	handlers.SetMetrics(m)
	router := SetupRoutes(handlers, cfg.Report.AllowedOrigins)

	return &Server{
		config:   cfg.Server,
		handler:  router,
		handlers: handlers,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port),
			Handler:           router,
			ReadTimeout:       time.Minute,
			ReadHeaderTimeout: 15 * time.Second,
			WriteTimeout:      time.Minute,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
