// Package observability exposes the Prometheus instruments for the
// ride-matching core and the HTTP surface.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RidesCreated counts rides published by drivers.
	RidesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "rides_created_total",
		Help:      "Rides published by drivers",
	})

	// RidesDeleted counts rides removed by their drivers.
	RidesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "rides_deleted_total",
		Help:      "Rides deleted by their drivers",
	})

	// JoinRequestsSubmitted counts join requests submitted by passengers.
	JoinRequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "join_requests_total",
		Help:      "Join requests submitted by passengers",
	})

	// CapacityRejections counts operations refused because no seats remained.
	CapacityRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "capacity_rejections_total",
		Help:      "Operations rejected because no seats remained",
	})

	// RequestsResolved counts resolved join requests, labelled by action.
	RequestsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "requests_resolved_total",
		Help:      "Join requests resolved, by outcome",
	}, []string{"action"})

	// HTTPRequestsTotal counts HTTP requests handled by the server.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carpool",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carpool",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
