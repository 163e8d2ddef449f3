package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks report aggregation. All methods are nil-safe so tests can
// pass a nil receiver.
type Metrics struct {
	BuildLatency  prometheus.Histogram
	SourceLatency *prometheus.HistogramVec
	FallbackTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		BuildLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "landgate_report_build_duration_seconds",
			Help:    "Time to assemble one aggregate parcel report.",
			Buckets: prometheus.DefBuckets,
		}),
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landgate_registry_source_duration_seconds",
			Help:    "Per-source registry fetch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		FallbackTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "landgate_registry_fallbacks_total",
			Help: "Registry fetches that degraded to fallback records.",
		}, []string{"source"}),
	}
}

func (m *Metrics) ObserveBuildLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.BuildLatency.Observe(d.Seconds())
}

func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) IncrementFallback(source string) {
	if m == nil {
		return
	}
	m.FallbackTotal.WithLabelValues(source).Inc()
}
