package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instrumentation for the seller core.
type Metrics struct {
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	ReadRetries prometheus.Counter
	Mutations   *prometheus.CounterVec
}

// New registers the seller metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "seller",
			Name:      "view_cache_hits_total",
			Help:      "Number of view reads served from the cache",
		}, []string{"view"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "seller",
			Name:      "view_cache_misses_total",
			Help:      "Number of view reads that went to the marketplace API",
		}, []string{"view"}),
		ReadRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "seller",
			Name:      "read_retries_total",
			Help:      "Number of read requests retried after a transport failure",
		}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "seller",
			Name:      "mutations_total",
			Help:      "Mutation attempts by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

// NewForTest returns metrics backed by a throwaway registry.
func NewForTest() *Metrics {
	return New(prometheus.NewRegistry())
}
