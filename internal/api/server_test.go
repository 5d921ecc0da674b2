package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/agent-tracker/internal/config"
	"github.com/ignite/agent-tracker/internal/pkg/metrics"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/session"
)

func TestNewServer(t *testing.T) {
	t.Setenv("ECS_CONTAINER_METADATA_URI", "")
	t.Setenv("KUBERNETES_SERVICE_HOST", "")
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9191

	renderer, err := report.NewRenderer()
	require.NoError(t, err)
	s := NewServer(cfg, session.NewStore(), renderer, metrics.New())

	assert.Equal(t, "127.0.0.1:9191", s.Addr())

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `agent_tracker_http_requests_total{method="GET",route="/health",status="200"} 1`)

	// Never started: shutting down is a no-op.
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rr := serve(router, req)
	assert.Equal(t, "http://localhost:8080", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = serve(router, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
