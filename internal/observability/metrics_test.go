package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status: %d", rec.Code)
	}
	return rec.Body.String()
}

func TestAggregateMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), 0.5)
	m.ObserveAggregateOperation("dup", "success", 20*time.Millisecond)
	m.ObserveAggregateOperation("dup", "conflict", 5*time.Millisecond)
	m.IncAggregateConflict("dup")
	m.IncAggregateRetry("dup")

	body := scrape(t, m)
	for _, want := range []string{
		`pestops_aggregate_operations_total{operation="dup",status="success"} 1`,
		`pestops_aggregate_operations_total{operation="dup",status="conflict"} 1`,
		`pestops_aggregate_conflicts_total{operation="dup"} 1`,
		`pestops_aggregate_retryable_total{operation="dup"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in exposition", want)
		}
	}
}

func TestObserveAPICountsGoodLatency(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), 0.5)
	m.ObserveAPI("GET", "/api/health", "200", 10*time.Millisecond)
	m.ObserveAPI("GET", "/api/health", "200", 2*time.Second)
	m.ObserveAPI("GET", "/api/health", "503", 10*time.Millisecond)

	body := scrape(t, m)
	if !strings.Contains(body, "pestops_api_requests_good_latency_total 1") {
		t.Fatalf("good latency counter wrong")
	}
	if !strings.Contains(body, `pestops_api_requests_total{method="GET",route="/api/health",status="200"} 2`) {
		t.Fatalf("request counter wrong")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveAggregateOperation("op", "success", time.Millisecond)
	m.IncAggregateConflict("op")
	m.ApiInflightInc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestParseFloatEnv(t *testing.T) {
	t.Setenv("PESTOPS_TEST_FLOAT", "0.25")
	if got := parseFloatEnv("PESTOPS_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("PESTOPS_TEST_FLOAT", "nope")
	if got := parseFloatEnv("PESTOPS_TEST_FLOAT", 1); got != 1 {
		t.Fatalf("garbage should fall back, got %v", got)
	}
}
