package api

import (
	"net/http"
	"time"

	"github.com/ignite/agent-tracker/internal/config"
	"github.com/ignite/agent-tracker/internal/pkg/httputil"
	"github.com/ignite/agent-tracker/internal/pkg/logger"
	"github.com/ignite/agent-tracker/internal/pkg/metrics"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/session"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *session.Store
	renderer *report.Renderer
	config   *config.Config
	metrics  *metrics.Metrics
	started  time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *session.Store, renderer *report.Renderer, cfg *config.Config) *Handlers {
	return &Handlers{
		store:    store,
		renderer: renderer,
		config:   cfg,
		started:  time.Now(),
	}
}

// SetMetrics enables Prometheus instrumentation and the /metrics route
func (h *Handlers) SetMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, loaded := h.store.Current()
	httputil.OK(w, map[string]interface{}{
		"status":         "healthy",
		"timestamp":      time.Now(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"dataset_loaded": loaded,
	})
}

// renderPage writes the HTML page with the given status code.
func (h *Handlers) renderPage(w http.ResponseWriter, status int, p *report.Page) {
	out, err := h.renderer.Render(p)
	if err != nil {
		logger.Error("render page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}
