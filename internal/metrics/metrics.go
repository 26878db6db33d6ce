// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package metrics provides Prometheus instrumentation for Vinoscope:
//   - Snapshot computation throughput and latency
//   - Record fetch pagination volume and failures
//   - Snapshot cache efficiency
//   - Circuit breaker state for the journal store client
//   - HTTP endpoint latency and throughput
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot computation metrics
	SnapshotComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_snapshot_computations_total",
			Help: "Total number of full statistics snapshot computations",
		},
		[]string{"trigger"}, // "miss", "refresh"
	)

	SnapshotComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vinoscope_snapshot_compute_duration_seconds",
			Help:    "Duration of full snapshot aggregations",
			Buckets: prometheus.DefBuckets,
		},
	)

	SummaryGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_summary_generations_total",
			Help: "Total number of year summary generations",
		},
		[]string{"source"}, // "computed", "archive"
	)

	// Record fetch metrics
	FetchPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoscope_fetch_pages_total",
			Help: "Total number of record pages fetched from the journal store",
		},
	)

	FetchRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoscope_fetch_records_total",
			Help: "Total number of tasting records fetched from the journal store",
		},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_fetch_errors_total",
			Help: "Total number of failed record fetches",
		},
		[]string{"operation"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vinoscope_fetch_duration_seconds",
			Help:    "Duration of complete paginated record fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Snapshot cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoscope_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoscope_cache_misses_total",
			Help: "Total number of snapshot cache misses (absent or expired)",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vinoscope_cache_evictions_total",
			Help: "Total number of snapshot cache evictions (expiry + invalidation)",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vinoscope_cache_entries",
			Help: "Current number of cached snapshots",
		},
	)

	// Circuit breaker metrics for the journal store client
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vinoscope_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vinoscope_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinoscope_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}
