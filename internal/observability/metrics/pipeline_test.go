package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// counterValue gathers registry and sums the counter samples of name whose
// labels include all of want.
func counterValue(t *testing.T, registry *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			matched := true
			for k, v := range want {
				if labels[k] != v {
					matched = false
				}
			}
			if matched {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestPipelineMetricsCountsChunkOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPipelineMetrics("test", registry, nil)

	m.ChunkTranslated(context.Background(), 0, true, nil)
	m.ChunkTranslated(context.Background(), 1, false, errors.New("upstream down"))
	m.ChunkTranslated(context.Background(), 2, false, errors.New("upstream down"))
	m.TranslationCompleted(context.Background(), 3, 2, 40*time.Millisecond)

	if got := counterValue(t, registry, "doclens_translation_chunks_total", map[string]string{"outcome": "remote"}); got != 1 {
		t.Fatalf("expected 1 remote chunk, got %v", got)
	}
	if got := counterValue(t, registry, "doclens_translation_chunks_total", map[string]string{"outcome": "fallback"}); got != 2 {
		t.Fatalf("expected 2 fallback chunks, got %v", got)
	}
	if got := counterValue(t, registry, "doclens_translation_translations_total", nil); got != 1 {
		t.Fatalf("expected 1 translation, got %v", got)
	}
}

func TestPipelineMetricsRecordsAnalysesAndResilience(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPipelineMetrics("test", registry, nil)

	m.AnalysisCompleted(context.Background(), domain.DomainLegal, 3, time.Millisecond)
	m.RecordRetry("libre.translate", 1, errors.New("503"))
	m.RecordBreakerTransition("libre.translate", "closed", "open")

	if got := counterValue(t, registry, "doclens_intelligence_analyses_total", map[string]string{"domain": "legal"}); got != 1 {
		t.Fatalf("expected one legal analysis, got %v", got)
	}
	if got := counterValue(t, registry, "doclens_resilience_retries_total", map[string]string{"operation": "libre.translate"}); got != 1 {
		t.Fatalf("expected one retry, got %v", got)
	}
	if got := counterValue(t, registry, "doclens_resilience_breaker_transitions_total", map[string]string{"state": "open"}); got != 1 {
		t.Fatalf("expected one open transition, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/v1/documents/abc":              "/v1/documents/{id}",
		"/v1/documents/abc/translation":  "/v1/documents/{id}/translation",
		"/v1/documents/abc/intelligence": "/v1/documents/{id}/intelligence",
		"/wp-login.php":                  unmatchedRoute,
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouteLabelPrefersMuxPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/documents/{id}", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/42", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if got := routeLabel(req); got != "/v1/documents/{id}" {
		t.Fatalf("routeLabel() = %q, want pattern path", got)
	}

	miss := httptest.NewRequest(http.MethodGet, "/nope", nil)
	mux.ServeHTTP(httptest.NewRecorder(), miss)
	if got := routeLabel(miss); got != unmatchedRoute {
		t.Fatalf("routeLabel() = %q, want %q", got, unmatchedRoute)
	}
}

func TestMiddlewareKeepsStatusCode(t *testing.T) {
	m := NewHTTPServerMetrics("test")
	handler := m.Middleware("test", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}

func TestWorkerTrackRecordsOutcome(t *testing.T) {
	m := NewWorkerMetrics("worker")

	done := m.Track(time.Now().Add(-time.Second))
	done(nil)
	m.Track(time.Time{})(errors.New("boom"))

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var inFlight float64 = -1
	var lagSamples uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "doclens_worker_documents_in_flight":
			inFlight = mf.GetMetric()[0].GetGauge().GetValue()
		case "doclens_worker_queue_lag_seconds":
			lagSamples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	name := "doclens_worker_documents_processed_total"
	ready := counterValue(t, m.registry, name, map[string]string{"status": outcomeReady})
	failed := counterValue(t, m.registry, name, map[string]string{"status": outcomeFailed})
	if ready != 1 || failed != 1 {
		t.Fatalf("unexpected status counts ready=%v failed=%v", ready, failed)
	}
	if inFlight != 0 {
		t.Fatalf("expected in-flight gauge back at 0, got %v", inFlight)
	}
	if lagSamples != 1 {
		t.Fatalf("expected one lag sample for the known upload time, got %d", lagSamples)
	}
}
