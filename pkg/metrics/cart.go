package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart activity across all live sessions.
type CartMetrics struct {
	activeCarts   prometheus.Gauge
	mutations     *prometheus.CounterVec
	notifications prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	activeCarts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_active_total",
		Help: "Number of live session carts.",
	})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	notifications := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_notifications_total",
		Help: "Observer notifications fanned out by session carts.",
	})
	reg.MustRegister(activeCarts, mutations, notifications)
	return &CartMetrics{
		activeCarts:   activeCarts,
		mutations:     mutations,
		notifications: notifications,
	}
}

// CartOpened increments the live cart gauge.
func (c *CartMetrics) CartOpened() {
	if c == nil || c.activeCarts == nil {
		return
	}
	c.activeCarts.Inc()
}

// CartDropped decrements the live cart gauge.
func (c *CartMetrics) CartDropped() {
	if c == nil || c.activeCarts == nil {
		return
	}
	c.activeCarts.Dec()
}

// IncMutation counts one mutation for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncNotification counts one observer fan-out.
func (c *CartMetrics) IncNotification() {
	if c == nil || c.notifications == nil {
		return
	}
	c.notifications.Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
