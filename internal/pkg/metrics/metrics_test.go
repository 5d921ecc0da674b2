package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndReportCounters(t *testing.T) {
	m := New()

	m.Upload("csv", "ok", 10, 2)
	m.Upload("csv", "ok", 5, 0)
	m.Upload("", "unreadable", 0, 0)
	m.Report("achieved")
	m.Report("no_data")
	m.Report("no_data")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("csv", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("unknown", "unreadable")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.rowsIngested))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsDropped))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reportsTotal.WithLabelValues("no_data")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Upload("csv", "ok", 1, 1)
		m.Report("achieved")
	})

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/items/{id}", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/ok", "GET", "200")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.Report("achieved")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `agent_tracker_reports_total{status="achieved"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
