// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package config provides centralized configuration management for Grocerec.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/grocerec/config.yaml
 3. Environment variables mapped through an explicit table

# Sections

  - data: location of the CSV files, csv or duckdb reader, circuit breaker
  - recommend: catalog size, popularity window, neighbor count, TF-IDF
    settings, request timeout and the optional response cache
  - server: HTTP listen address and timeout
  - security: CORS origins and rate limiting
  - logging: zerolog level, format and caller annotation

# Environment Variables

Data:
  - DATA_DIR: directory with products.csv, aisles.csv, departments.csv
    and order_products__train.csv (default: data)
  - DATA_BACKEND: csv or duckdb (default: csv)
  - MAX_ORDER_LINES: keep at most this many order lines after the catalog join (default: 0, all)
  - ORDER_LINES_READ_LIMIT: read at most this many raw order lines (default: 0, all)
  - BREAKER_ENABLED: wrap the source in a circuit breaker (default: true)

Recommender:
  - RECOMMEND_CATALOG_LIMIT (1000), RECOMMEND_POPULARITY_MIN (0),
    RECOMMEND_POPULARITY_MAX (50), RECOMMEND_NEIGHBORS (13),
    RECOMMEND_CONTENT_TOP_N (12), RECOMMEND_MIN_DF (3)
  - RECOMMEND_CACHE_ENABLED: memoize responses (default: false)

Server and security:
  - HTTP_HOST (0.0.0.0), HTTP_PORT (8050), HTTP_TIMEOUT (30s)
  - CORS_ORIGINS: comma-separated list (default: *)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

# Validation

Load validates the result with go-playground/validator struct tags (see
package validation), including the cross-field rules
popularity_min <= popularity_max and ngram_min <= ngram_max.
*/
package config
