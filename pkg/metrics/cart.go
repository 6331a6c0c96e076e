package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeChanged  = "changed"
	OutcomeNoop     = "noop"
	OutcomeDegraded = "degraded"
)

// CartMetrics records cart mutations, storage health, and navigation requests.
type CartMetrics struct {
	mutations   *prometheus.CounterVec
	failures    *prometheus.CounterVec
	persist     prometheus.Histogram
	navigations *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation and outcome.",
	}, []string{"op", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Failed cart storage reads and writes.",
	}, []string{"op"})
	persist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_persist_duration_seconds",
		Help:    "Duration of cart snapshot writes in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	navigations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_navigations_total",
		Help: "Navigation requests by target screen.",
	}, []string{"screen"})
	reg.MustRegister(mutations, failures, persist, navigations)
	return &CartMetrics{
		mutations:   mutations,
		failures:    failures,
		persist:     persist,
		navigations: navigations,
	}
}

// IncMutation counts one cart operation.
func (c *CartMetrics) IncMutation(op, outcome string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// IncStorageFailure counts a failed read or write.
func (c *CartMetrics) IncStorageFailure(op string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObservePersist records how long a snapshot write took.
func (c *CartMetrics) ObservePersist(duration time.Duration) {
	if c == nil || c.persist == nil {
		return
	}
	c.persist.Observe(duration.Seconds())
}

// IncNavigation counts a navigation request.
func (c *CartMetrics) IncNavigation(screen string) {
	if c == nil || c.navigations == nil {
		return
	}
	c.navigations.WithLabelValues(normalizeLabel(screen)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
