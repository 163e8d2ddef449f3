package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the road connectivity module.
type Metrics struct {
	// Analysis outcomes: connected, unconnected, error.
	Outcome *prometheus.CounterVec

	// Full analysis latency including both geometry fetches.
	AnalyzeLatency prometheus.Histogram
}

// New creates a Metrics instance with all road module metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "landgate_road_analysis_outcomes_total",
			Help: "Total road connectivity analyses by outcome",
		}, []string{"outcome"}),

		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "landgate_road_analysis_duration_seconds",
			Help:    "Duration of a full road connectivity analysis",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementOutcome records one analysis outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveAnalyzeLatency records the duration of one analysis.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}
