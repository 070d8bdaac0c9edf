// AngelaMos | 2026
// metrics.go

// Package metrics holds the Prometheus instruments of the atlas. All
// collectors are registered with the global registry, so promhttp.Handler
// exposes them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "atlas"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LifecycleTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_transitions_total",
			Help:      "Record lifecycle transitions by kind, transition and outcome.",
		},
		[]string{"kind", "transition", "outcome"},
	)

	CascadedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascaded_records_total",
			Help:      "Child records soft-deleted by a parent cascade.",
		},
		[]string{"kind"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected with 429 by limiter.",
		},
		[]string{"limiter"},
	)

	RateLimitFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_fallback_total",
			Help:      "Limiter decisions made locally because Redis failed.",
		},
		[]string{"limiter"},
	)

	SiteQueryResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "site_query_results",
			Help:      "Number of sites returned per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LifecycleTransitionsTotal,
		CascadedRecordsTotal,
		SiteQueryResults,
		RateLimitedTotal,
		RateLimitFallbackTotal,
	)
}

// ObserveTransition counts one lifecycle transition attempt.
func ObserveTransition(kind, transition string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	LifecycleTransitionsTotal.WithLabelValues(kind, transition, outcome).Inc()
}
