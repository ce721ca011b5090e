package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeReady  = "ready"
	outcomeFailed = "failed"
)

type WorkerMetrics struct {
	registry *prometheus.Registry
	service  string

	documentsTotal  *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	queueLag        prometheus.Histogram
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	labels := prometheus.Labels{"service": service}
	m := &WorkerMetrics{
		registry: prometheus.NewRegistry(),
		service:  service,
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "documents_processed_total",
			Help:        "Processed documents by final status (ready or failed).",
			ConstLabels: labels,
		}, []string{"status"}),
		processDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "document_process_duration_seconds",
			Help:        "Time from job pickup to final status, in seconds.",
			ConstLabels: labels,
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "documents_in_flight",
			Help:        "Documents currently being processed.",
			ConstLabels: labels,
		}),
		queueLag: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "queue_lag_seconds",
			Help:        "Delay between upload and processing start.",
			ConstLabels: labels,
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
	m.registry.MustRegister(m.documentsTotal, m.processDuration, m.inFlight, m.queueLag)
	return m
}

func (m *WorkerMetrics) Registerer() prometheus.Registerer {
	return m.registry
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Track starts timing one document. uploadedAt feeds the queue lag histogram
// when known; the returned func records the outcome and must be called once.
func (m *WorkerMetrics) Track(uploadedAt time.Time) func(err error) {
	if !uploadedAt.IsZero() {
		if lag := time.Since(uploadedAt); lag >= 0 {
			m.queueLag.Observe(lag.Seconds())
		}
	}
	m.inFlight.Inc()
	start := time.Now()

	return func(err error) {
		m.inFlight.Dec()
		status := outcomeReady
		if err != nil {
			status = outcomeFailed
		}
		m.documentsTotal.WithLabelValues(status).Inc()
		m.processDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}
