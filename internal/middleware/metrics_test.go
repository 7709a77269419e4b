package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"project-task-api/internal/metrics"
)

func setupMetricsRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get counter: %v", err)
	}
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	router := setupMetricsRouter(m)
	router.GET("/api/field-definitions", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/field-definitions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	got := counterValue(t, m.HTTPRequestsTotal, "GET", "/api/field-definitions", "2xx")
	if got != 3 {
		t.Errorf("Expected 3 recorded requests, got %v", got)
	}
}

func TestMetricsMiddleware_SkipsObservabilityEndpoints(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	router := setupMetricsRouter(m)
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/metrics", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := counterValue(t, m.HTTPRequestsTotal, "GET", path, "2xx"); got != 0 {
			t.Errorf("Expected %s to be excluded from metrics, got %v", path, got)
		}
	}
}

func TestMetricsMiddleware_RecordsErrorStatuses(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	router := setupMetricsRouter(m)
	router.GET("/api/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := counterValue(t, m.HTTPRequestsTotal, "GET", "/api/boom", "5xx"); got != 1 {
		t.Errorf("Expected one 500 recorded, got %v", got)
	}
}
