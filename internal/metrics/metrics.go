// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Feed composition (shelf build duration and outcomes)
// - API endpoint latency and throughput
// - Candidate pool cache efficiency
// - Content archive client (requests, pages, circuit breaker)
// - Personalization signals and taxonomy lookups

var (
	// Feed Composition Metrics
	ShelfBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_shelf_build_duration_seconds",
			Help:    "Duration of individual shelf builds in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"shelf"},
	)

	ShelfBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_shelf_builds_total",
			Help: "Total number of shelf builds by outcome",
		},
		[]string{"shelf", "outcome"}, // outcome: "ok", "empty", "failure"
	)

	FeedsComposedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_compositions_total",
			Help: "Total number of feed compositions",
		},
		[]string{"experience", "personalized"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Candidate Pool Cache Metrics
	PoolCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_cache_hits_total",
			Help: "Total number of candidate pool cache hits",
		},
	)

	PoolCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_cache_misses_total",
			Help: "Total number of candidate pool cache misses",
		},
	)

	PoolCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pool_cache_entries",
			Help: "Current number of cached candidate pools",
		},
	)

	// Content Archive Client Metrics
	ArchiveRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archive_requests_total",
			Help: "Total number of content archive requests",
		},
		[]string{"result"}, // "success", "failure"
	)

	ArchiveRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archive_request_duration_seconds",
			Help:    "Content archive request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ArchivePagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_pages_fetched_total",
			Help: "Total number of candidate pages fetched from the archive",
		},
	)

	ArchiveCandidatesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_candidates_fetched_total",
			Help: "Total number of candidates fetched from the archive",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Personalization Signals Metrics
	SignalsLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signals_lookups_total",
			Help: "Total number of personalization signal lookups",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Taxonomy Metrics
	TaxonomyRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxonomy_refreshes_total",
			Help: "Total number of taxonomy label map refreshes",
		},
		[]string{"result"}, // "success", "failure"
	)

	TaxonomyLabelsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taxonomy_labels_loaded",
			Help: "Current number of labels in the taxonomy cache",
		},
	)
)

// RecordAPIRequest records metrics for an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordShelfBuild records one shelf build with its outcome.
func RecordShelfBuild(shelf, outcome string, duration time.Duration) {
	ShelfBuildDuration.WithLabelValues(shelf).Observe(duration.Seconds())
	ShelfBuildsTotal.WithLabelValues(shelf, outcome).Inc()
}

// RecordFeedComposition records one composed feed response.
func RecordFeedComposition(experience string, personalized bool) {
	p := "false"
	if personalized {
		p = "true"
	}
	FeedsComposedTotal.WithLabelValues(experience, p).Inc()
}

// RecordPoolCacheAccess records one candidate pool cache lookup.
func RecordPoolCacheAccess(hit bool) {
	if hit {
		PoolCacheHits.Inc()
		return
	}
	PoolCacheMisses.Inc()
}

// SetPoolCacheEntries updates the cached pool count gauge.
func SetPoolCacheEntries(n int) {
	PoolCacheEntries.Set(float64(n))
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordArchiveRequest records one archive fetch attempt.
func RecordArchiveRequest(duration time.Duration, err error) {
	ArchiveRequestDuration.Observe(duration.Seconds())
	if err != nil {
		ArchiveRequestsTotal.WithLabelValues("failure").Inc()
		return
	}
	ArchiveRequestsTotal.WithLabelValues("success").Inc()
}

// RecordSignalsLookup records one personalization signal lookup.
func RecordSignalsLookup(err error) {
	if err != nil {
		SignalsLookupsTotal.WithLabelValues("failure").Inc()
		return
	}
	SignalsLookupsTotal.WithLabelValues("success").Inc()
}

// RecordTaxonomyRefresh records one label map refresh.
func RecordTaxonomyRefresh(labels int, err error) {
	if err != nil {
		TaxonomyRefreshesTotal.WithLabelValues("failure").Inc()
		return
	}
	TaxonomyRefreshesTotal.WithLabelValues("success").Inc()
	TaxonomyLabelsLoaded.Set(float64(labels))
}
