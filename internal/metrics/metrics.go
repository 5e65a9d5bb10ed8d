package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dairy_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DeliveriesMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dairy_deliveries_materialized_total",
			Help: "Delivery rows created from subscriptions by the materializer",
		},
	)

	DeliveryTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_delivery_transitions_total",
			Help: "Terminal delivery transitions by outcome",
		},
		[]string{"status"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_payments_recorded_total",
			Help: "Payments recorded by mode",
		},
		[]string{"mode"},
	)
)
