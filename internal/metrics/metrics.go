// Package metrics exposes Prometheus instrumentation for the upload
// pipeline. All methods are safe on a nil receiver so tests can pass nil.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UploadMetrics holds the upload pipeline's counters and timings.
type UploadMetrics struct {
	uploads         *prometheus.CounterVec
	parserFallbacks prometheus.Counter
	filesIngested   *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewUploadMetrics registers the upload metrics on the given registerer.
func NewUploadMetrics(reg prometheus.Registerer) *UploadMetrics {
	factory := promauto.With(reg)
	return &UploadMetrics{
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cobalt_uploads_total",
			Help: "Upload attempts by final method and session status.",
		}, []string{"method", "status"}),
		parserFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "cobalt_parser_fallbacks_total",
			Help: "Parser strategy failures that fell back to direct ingestion.",
		}),
		filesIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cobalt_files_ingested_total",
			Help: "File outcomes across all ingestion attempts.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cobalt_upload_duration_seconds",
			Help:    "End-to-end duration of upload attempts.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
}

// ObserveUpload records one finished upload attempt.
func (m *UploadMetrics) ObserveUpload(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(method, status).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// IncParserFallback counts one parser-to-direct fallback.
func (m *UploadMetrics) IncParserFallback() {
	if m == nil {
		return
	}
	m.parserFallbacks.Inc()
}

// AddFileOutcomes records per-file outcomes of one attempt.
func (m *UploadMetrics) AddFileOutcomes(processed, failed int) {
	if m == nil {
		return
	}
	m.filesIngested.WithLabelValues("processed").Add(float64(processed))
	m.filesIngested.WithLabelValues("failed").Add(float64(failed))
}
