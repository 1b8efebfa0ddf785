// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets are latency buckets in seconds shared by every histogram.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60} //nolint: gochecknoglobals

const namespace = "emailfinder"

//nolint:gochecknoglobals
var (
	// HTTPRequestDuration observes requests served by the web front-end.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests served by the front-end.",
		Buckets:   DefaultBuckets,
	}, []string{"method", "route", "status"})

	// BackendRequestDuration observes calls made to the backend API.
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   DefaultBuckets,
	}, []string{"endpoint", "outcome"})

	// DNSLookups counts DNS-over-HTTPS lookups by result.
	DNSLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dns",
		Name:      "lookups_total",
		Help:      "DNS-over-HTTPS existence lookups.",
	}, []string{"result"})

	// DomainsProcessed counts domains finished by the multi-domain loop.
	DomainsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "domains_processed_total",
		Help:      "Domains processed by the discovery loop.",
	}, []string{"status"})

	// RateLimited counts requests rejected by the per-session rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ratelimit",
		Name:      "rejected_total",
		Help:      "Requests rejected by the rate limiter.",
	}, []string{"action"})
)
