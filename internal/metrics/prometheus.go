// Package metrics exports Prometheus metrics for the presence API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by endpoint, method and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presence_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"endpoint", "method", "status"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presence_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"endpoint", "method"},
	)

	// ReportsComputed counts computed reports by report type.
	ReportsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presence_reports_computed_total",
			Help: "Total number of reports computed",
		},
		[]string{"report"},
	)

	// ReportDuration observes report computation latency, fetch
	// included.
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presence_report_duration_seconds",
			Help:    "Report computation latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"report"},
	)

	// CacheHits counts report cache hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "presence_cache_hits_total",
			Help: "Total number of report cache hits",
		},
	)

	// CacheMisses counts report cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "presence_cache_misses_total",
			Help: "Total number of report cache misses",
		},
	)
)
