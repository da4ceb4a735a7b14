// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - recommendation strategy latency and outcomes
// - memoization cache efficiency
// - data source reads and circuit breaker state
// - API endpoint latency and throughput

// Recommendation outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeRefresh          = "refresh"
	OutcomeNoRecommendation = "no_recommendation"
	OutcomeDataSourceError  = "data_source_error"
	OutcomeError            = "error"
)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"strategy"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of products returned per recommendation",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 13, 16},
		},
		[]string{"strategy"},
	)

	// Cache Metrics
	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of memoized recommendation hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of memoized recommendation misses",
		},
	)

	RecommendCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_invalidations_total",
			Help: "Total number of cache invalidations caused by data changes",
		},
	)

	InteractionMatrixRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_matrix_rows",
			Help: "Number of products in the most recently built interaction matrix",
		},
	)

	InteractionMatrixColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_matrix_columns",
			Help: "Number of orders in the most recently built interaction matrix",
		},
	)

	// Data Source Metrics
	DataSourceReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_source_reads_total",
			Help: "Total number of source table reads by table and status",
		},
		[]string{"table", "status"},
	)

	DataSourceReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "data_source_read_duration_seconds",
			Help:    "Duration of source table reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	DataSourceRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "data_source_rows",
			Help: "Number of rows returned by the most recent read of each table",
		},
		[]string{"table"},
	)

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
			Help: "Requests through a circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)
)

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(strategy, outcome string, duration time.Duration, results int) {
	RecommendRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	if outcome == OutcomeRefresh {
		return
	}
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		RecommendResultSize.WithLabelValues(strategy).Observe(float64(results))
	}
}

// RecordCacheLookup records a memoization hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordCacheInvalidation records a data-change invalidation.
func RecordCacheInvalidation() {
	RecommendCacheInvalidations.Inc()
}

// RecordDataSourceRead records one source table read.
func RecordDataSourceRead(table string, rows int, duration time.Duration, err error) {
	DataSourceReadDuration.WithLabelValues(table).Observe(duration.Seconds())
	if err != nil {
		DataSourceReads.WithLabelValues(table, "error").Inc()
		return
	}
	DataSourceReads.WithLabelValues(table, "ok").Inc()
	DataSourceRows.WithLabelValues(table).Set(float64(rows))
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordInteractionMatrix records the shape of a freshly built matrix.
func RecordInteractionMatrix(rows, columns int) {
	InteractionMatrixRows.Set(float64(rows))
	InteractionMatrixColumns.Set(float64(columns))
}
