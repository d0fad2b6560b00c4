package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "survey_reports"

// Metrics holds the Prometheus collectors for report exports.
type Metrics struct {
	ExportsStarted   *prometheus.CounterVec   // labels: kind={survey,site}
	ExportsCompleted *prometheus.CounterVec   // labels: kind, outcome={success,failed}
	ExportsSkipped   *prometheus.CounterVec   // labels: kind
	ExportDuration   *prometheus.HistogramVec // labels: kind
	ExportsInFlight  prometheus.Gauge
	ReportPages      prometheus.Histogram

	// Image resolution metrics.
	ImageFetches       *prometheus.CounterVec // labels: outcome={success,error,converted}
	ImageFetchDuration prometheus.Histogram
	BlobCache          *prometheus.CounterVec // labels: result={hit,miss}

	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ExportsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_started_total",
			Help:      "Exports that entered the fetching state.",
		}, []string{"kind"}),
		ExportsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_completed_total",
			Help:      "Exports that returned to idle, by outcome.",
		}, []string{"kind", "outcome"}),
		ExportsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_skipped_total",
			Help:      "Export requests ignored because the same target was in flight.",
		}, []string{"kind"}),
		ExportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Duration from fetch to written output.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		ExportsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "exports_in_flight",
			Help:      "Targets currently being exported.",
		}),
		ReportPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_pages",
			Help:      "Pages per composed report.",
			Buckets:   []float64{1, 2, 3, 4, 5, 8, 12, 20},
		}),
		ImageFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_fetches_total",
			Help:      "Image loads by outcome.",
		}, []string{"outcome"}),
		ImageFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_fetch_duration_seconds",
			Help:      "Image download duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BlobCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blob_cache_total",
			Help:      "Blob reference resolution cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Export events sent to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ExportsStarted,
		m.ExportsCompleted,
		m.ExportsSkipped,
		m.ExportDuration,
		m.ExportsInFlight,
		m.ReportPages,
		m.ImageFetches,
		m.ImageFetchDuration,
		m.BlobCache,
		m.EventsPublished,
	}
}
