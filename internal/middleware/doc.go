// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package middleware provides HTTP instrumentation middleware.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight requests
  - PerformanceMonitor: sliding-window latency percentiles per endpoint
    with slow request logging

Both label requests by their chi route pattern, for example
"/api/v1/recommendations/{strategy}", rather than the raw path. They must
be installed with Router.Use so that the pattern is resolved by the time
the wrapped handler returns.

Usage Example:

	monitor := middleware.NewPerformanceMonitor(1000, time.Second, logger)

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

	// Later, for a stats endpoint:
	stats := monitor.Stats()

Thread Safety:

PerformanceMonitor is safe for concurrent use. Prometheus collectors are
concurrency-safe by construction.
*/
package middleware
