// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package api provides the HTTP REST API of the recommendation service.

Every response uses the same envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Endpoints:

	GET  /api/v1/health                               liveness, engine counters, data version
	GET  /api/v1/health/ready                         503 until the catalog can be loaded
	GET  /api/v1/products                             the bounded catalog, ordered by product id
	GET  /api/v1/recommendations                      registered strategy names
	GET  /api/v1/recommendations/{strategy}/candidates products selectable for a strategy
	POST /api/v1/recommendations/{strategy}           {"product_id": "123"} or {"product_id": "refresh"}
	GET  /api/v1/recommendations/{strategy}           ?product_id=123&exclude_self=true
	GET  /api/v1/stats/performance                    per-route latency percentiles
	GET  /metrics                                     Prometheus

Error Mapping:

  - Unknown strategy: 404 NOT_FOUND
  - Malformed body or product id: 400 BAD_REQUEST or VALIDATION_FAILED
  - Product not found or row out of range: 200 with empty items and a
    reason of "product_not_found" or "index_out_of_range"
  - Unreadable source table: 503 DATA_SOURCE_ERROR
  - Request timeout: 503 TIMEOUT

The selected product is returned as "cart" and left out of "items" unless
the request sets exclude_self to false.

The "refresh" product id is the reset sentinel: the response is an empty
item list with "refreshed": true and no strategy runs.

Middleware uses go-chi/cors for CORS and go-chi/httprate for per-IP rate
limiting. Request ids come from the X-Request-Id header or are generated,
and are carried in the logging context of each request.
*/
package api
