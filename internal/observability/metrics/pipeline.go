package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics observes translation and intelligence runs and the
// resilience executor wrapped around remote calls.
type PipelineMetrics struct {
	service    string
	logger     *slog.Logger
	registerer prometheus.Registerer

	chunksTotal         *prometheus.CounterVec
	translationsTotal   *prometheus.CounterVec
	translationDuration *prometheus.HistogramVec
	analysesTotal       *prometheus.CounterVec
	similarCases        *prometheus.HistogramVec
	retriesTotal        *prometheus.CounterVec
	breakerTransitions  *prometheus.CounterVec
}

func NewPipelineMetrics(service string, registerer prometheus.Registerer, logger *slog.Logger) *PipelineMetrics {
	if logger == nil {
		logger = slog.Default()
	}

	chunksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclens",
			Subsystem: "translation",
			Name:      "chunks_total",
			Help:      "Translated chunks by outcome (remote or dictionary fallback).",
		},
		[]string{"service", "outcome"},
	)
	translationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclens",
			Subsystem: "translation",
			Name:      "translations_total",
			Help:      "Completed translation runs.",
		},
		[]string{"service"},
	)
	translationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doclens",
			Subsystem: "translation",
			Name:      "duration_seconds",
			Help:      "Translation run duration in seconds.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"service"},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclens",
			Subsystem: "intelligence",
			Name:      "analyses_total",
			Help:      "Completed intelligence runs by detected domain.",
		},
		[]string{"service", "domain"},
	)
	similarCases := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doclens",
			Subsystem: "intelligence",
			Name:      "similar_cases",
			Help:      "Distribution of similar cases returned per analysis.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	retriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclens",
			Subsystem: "resilience",
			Name:      "retries_total",
			Help:      "Retried remote calls by operation.",
		},
		[]string{"service", "operation"},
	)
	breakerTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclens",
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions by operation and target state.",
		},
		[]string{"service", "operation", "state"},
	)

	registerer.MustRegister(
		chunksTotal,
		translationsTotal,
		translationDuration,
		analysesTotal,
		similarCases,
		retriesTotal,
		breakerTransitions,
	)

	return &PipelineMetrics{
		service:             service,
		logger:              logger,
		registerer:          registerer,
		chunksTotal:         chunksTotal,
		translationsTotal:   translationsTotal,
		translationDuration: translationDuration,
		analysesTotal:       analysesTotal,
		similarCases:        similarCases,
		retriesTotal:        retriesTotal,
		breakerTransitions:  breakerTransitions,
	}
}

func (m *PipelineMetrics) ChunkTranslated(_ context.Context, index int, remote bool, err error) {
	if remote {
		m.chunksTotal.WithLabelValues(m.service, "remote").Inc()
		return
	}
	m.chunksTotal.WithLabelValues(m.service, "fallback").Inc()
	if err != nil {
		m.logger.Warn("translation_chunk_fallback", "chunk_index", index, "error", err)
	}
}

func (m *PipelineMetrics) TranslationCompleted(_ context.Context, chunks, fallbacks int, elapsed time.Duration) {
	m.translationsTotal.WithLabelValues(m.service).Inc()
	m.translationDuration.WithLabelValues(m.service).Observe(elapsed.Seconds())
	m.logger.Info("translation_completed",
		"chunks", chunks,
		"fallbacks", fallbacks,
		"duration_ms", float64(elapsed.Microseconds())/1000.0,
	)
}

func (m *PipelineMetrics) AnalysisCompleted(_ context.Context, detected domain.Domain, cases int, elapsed time.Duration) {
	m.analysesTotal.WithLabelValues(m.service, string(detected)).Inc()
	m.similarCases.WithLabelValues(m.service).Observe(float64(cases))
	m.logger.Info("analysis_completed",
		"domain", string(detected),
		"similar_cases", cases,
		"duration_ms", float64(elapsed.Microseconds())/1000.0,
	)
}

func (m *PipelineMetrics) RecordRetry(operation string, _ int, _ error) {
	m.retriesTotal.WithLabelValues(m.service, operation).Inc()
}

func (m *PipelineMetrics) RecordBreakerTransition(operation, _, to string) {
	m.breakerTransitions.WithLabelValues(m.service, operation, to).Inc()
}

// breakerStateValues maps gobreaker state names onto the exported gauge value.
var breakerStateValues = map[string]float64{
	"closed":    0,
	"half-open": 1,
	"open":      2,
}

// WatchBreakers exports the current breaker state of each operation as a gauge
// (0 closed, 1 half-open, 2 open) read from state at scrape time.
func (m *PipelineMetrics) WatchBreakers(state func(operation string) string, operations ...string) {
	for _, operation := range operations {
		m.registerer.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace:   "doclens",
				Subsystem:   "resilience",
				Name:        "breaker_state",
				Help:        "Current circuit breaker state by operation (0 closed, 1 half-open, 2 open).",
				ConstLabels: prometheus.Labels{"service": m.service, "operation": operation},
			},
			func() float64 { return breakerStateValues[state(operation)] },
		))
	}
}
