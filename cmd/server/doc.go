// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package main is the entry point for the Grocerec server.

Grocerec serves item-to-item product recommendations over the Instacart
grocery dataset: collaborative filtering over order co-occurrence,
content-based filtering over product descriptions, and Pearson correlation
between product order profiles.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("grocerec")
	├── DataSupervisor ("data-layer")
	│   └── cache-refresh (only when the cache is enabled)
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog, JSON or console
 3. Data source: CSV or DuckDB reader, optionally behind a circuit breaker
 4. Engine: the three strategies registered on a recommend.Engine
 5. Catalog check: the catalog is loaded once and duplicate names logged
 6. HTTP server: chi router with CORS, rate limiting and metrics

# Configuration

Common environment variables:

	DATA_DIR=/data                # products.csv, aisles.csv, departments.csv, order_products__train.csv
	DATA_BACKEND=csv              # or duckdb
	RECOMMEND_CACHE_ENABLED=true  # memoize responses per data version
	HTTP_PORT=8050
	LOG_LEVEL=info

A config file is read from CONFIG_PATH, ./config.yaml or
/etc/grocerec/config.yaml; environment variables override it.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, waiting for in-flight requests up to the server timeout.

# Example Usage

	export DATA_DIR=./data
	./grocerec

	curl -X POST localhost:8050/api/v1/recommendations/collaborative \
	     -d '{"product_id": "24852"}'
*/
package main
