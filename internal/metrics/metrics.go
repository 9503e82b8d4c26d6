package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	OrdersPlaced     prometheus.Counter
	OrdersRejected   *prometheus.CounterVec
	TicketsAllocated prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "The total number of committed orders",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "The total number of rejected orders by failure kind",
		}, []string{"kind"}),
		TicketsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_allocated_total",
			Help:      "The total number of tickets allocated",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.OrdersPlaced, m.OrdersRejected, m.TicketsAllocated, m.RequestDuration)
	return m
}
