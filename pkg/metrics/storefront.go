package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records checkout and sidecar activity.
type StorefrontMetrics struct {
	payments        *prometheus.CounterVec
	orders          prometheus.Counter
	orderTotal      prometheus.Histogram
	sidecarCalls    *prometheus.CounterVec
	sidecarDuration *prometheus.HistogramVec
	staleResults    *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nova_payments_total",
			Help: "Payment attempts by outcome.",
		}, []string{"outcome"}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nova_orders_completed_total",
			Help: "Orders recorded after a successful payment.",
		}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nova_order_total_amount",
			Help:    "Order totals in the store currency.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
		}),
		sidecarCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nova_sidecar_calls_total",
			Help: "Generative sidecar calls by call and outcome.",
		}, []string{"call", "outcome"}),
		sidecarDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nova_sidecar_call_duration_seconds",
			Help:    "Generative sidecar call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"call"}),
		staleResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nova_stale_results_total",
			Help: "Async results discarded because their target was no longer current.",
		}, []string{"call"}),
	}
	reg.MustRegister(m.payments, m.orders, m.orderTotal, m.sidecarCalls, m.sidecarDuration, m.staleResults)
	return m
}

// IncPayment counts a payment attempt with the given outcome label.
func (m *StorefrontMetrics) IncPayment(outcome string) {
	if m == nil || m.payments == nil {
		return
	}
	m.payments.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveOrder counts a completed order and records its total.
func (m *StorefrontMetrics) ObserveOrder(total float64) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
	m.orderTotal.Observe(total)
}

// ObserveSidecar records one sidecar call.
func (m *StorefrontMetrics) ObserveSidecar(call, outcome string, duration time.Duration) {
	if m == nil || m.sidecarCalls == nil {
		return
	}
	call = normalizeLabel(call)
	m.sidecarCalls.WithLabelValues(call, normalizeLabel(outcome)).Inc()
	m.sidecarDuration.WithLabelValues(call).Observe(duration.Seconds())
}

// IncStale counts a discarded async result.
func (m *StorefrontMetrics) IncStale(call string) {
	if m == nil || m.staleResults == nil {
		return
	}
	m.staleResults.WithLabelValues(normalizeLabel(call)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
