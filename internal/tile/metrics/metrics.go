package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks tile proxying. All methods are nil-safe so tests can pass a
// nil receiver.
type Metrics struct {
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	FetchLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landgate_tile_cache_hits_total",
			Help: "Tile requests served from cache.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landgate_tile_cache_misses_total",
			Help: "Tile requests that went to the upstream renderer.",
		}),
		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "landgate_tile_fetch_duration_seconds",
			Help:    "Upstream tile fetch latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) ObserveFetchLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchLatency.Observe(d.Seconds())
}
