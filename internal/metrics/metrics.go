// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukapos_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dukapos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// OrdersCreatedTotal counts successfully completed checkouts.
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dukapos_orders_created_total",
			Help: "Total number of orders completed at checkout.",
		},
	)

	// OrdersCancelledTotal counts cancelled orders.
	OrdersCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dukapos_orders_cancelled_total",
			Help: "Total number of orders cancelled.",
		},
	)

	// OrdersRefundedTotal counts refunded orders.
	OrdersRefundedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dukapos_orders_refunded_total",
			Help: "Total number of orders refunded.",
		},
	)

	// CheckoutFailuresTotal counts rejected checkouts by reason.
	CheckoutFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dukapos_checkout_failures_total",
			Help: "Total number of checkouts rejected, by reason.",
		},
		[]string{"reason"},
	)

	// OrderTotalCents observes the value distribution of completed orders.
	OrderTotalCents = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dukapos_order_total_cents",
			Help:    "Distribution of completed order totals in cents.",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		},
	)
)
