package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks query-cache effectiveness
type Metrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Invalidations prometheus.Counter
	Evictions     prometheus.Counter
}

// NewMetrics registers cache metrics on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Hits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registro_cache_hits_total",
			Help: "Total number of fetches served from cache",
		}),
		Misses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registro_cache_misses_total",
			Help: "Total number of fetches that required a network call",
		}),
		Invalidations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registro_cache_invalidations_total",
			Help: "Total number of entries marked stale after mutations",
		}),
		Evictions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "registro_cache_evictions_total",
			Help: "Total number of unused entries dropped by the janitor",
		}),
	}
}
