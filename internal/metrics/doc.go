// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package metrics defines the Prometheus metrics of the recommendation service.

All metrics are registered with the default registry through promauto and
are served on /metrics by the API router.

# Metric Families

Recommendations:
  - recommend_requests_total{strategy, outcome}
  - recommend_duration_seconds{strategy}
  - recommend_result_size{strategy}

Memoization:
  - recommend_cache_hits_total, recommend_cache_misses_total
  - recommend_cache_invalidations_total

Interaction matrix:
  - interaction_matrix_rows, interaction_matrix_columns

Data source:
  - data_source_reads_total{table, status}
  - data_source_read_duration_seconds{table}
  - data_source_rows{table}
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_transitions_total{name, from, to}

API:
  - api_requests_total{method, endpoint, status}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Endpoint labels are route patterns, never raw paths, to bound cardinality.
*/
package metrics
