// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults matching the reference recommender
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// Data backends.
const (
	BackendCSV    = "csv"
	BackendDuckDB = "duckdb"
)

// DataConfig locates the source CSV files and selects how they are read.
//
// Environment Variables:
//   - DATA_DIR: directory holding the four CSV files (default: ./data)
//   - DATA_BACKEND: csv or duckdb (default: csv)
//   - PRODUCTS_PATH, AISLES_PATH, DEPARTMENTS_PATH, ORDER_PRODUCTS_PATH:
//     per-file overrides of the default layout under DATA_DIR
//   - MAX_ORDER_LINES: keep this many order lines after the catalog join (default: 0, all)
//   - ORDER_LINES_READ_LIMIT: stop reading the raw order lines file after this many rows (default: 0, all)
type DataConfig struct {
	Dir     string `koanf:"dir" validate:"required"`
	Backend string `koanf:"backend" validate:"oneof=csv duckdb"`

	ProductsPath    string `koanf:"products_path"`
	AislesPath      string `koanf:"aisles_path"`
	DepartmentsPath string `koanf:"departments_path"`
	OrderLinesPath  string `koanf:"order_lines_path"`

	MaxOrderLines       int `koanf:"max_order_lines" validate:"gte=0"`
	OrderLinesReadLimit int `koanf:"order_lines_read_limit" validate:"gte=0"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the data source.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval     time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"gte=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// RecommendConfig holds the recommender parameters. The defaults reproduce
// the reference behavior; changing them changes results.
type RecommendConfig struct {
	// CatalogLimit is the number of products kept after sorting by id.
	CatalogLimit int `koanf:"catalog_limit" validate:"gte=0"`

	// PopularityMin and PopularityMax bound a product's order count for
	// the interaction matrix (inclusive).
	PopularityMin int `koanf:"popularity_min" validate:"gte=0"`
	PopularityMax int `koanf:"popularity_max" validate:"gtefield=PopularityMin"`

	// Neighbors is the collaborative neighbor count including the query.
	Neighbors int `koanf:"neighbors" validate:"gte=1"`

	// ContentTopN and PearsonTopN are the result sizes of those strategies.
	ContentTopN int `koanf:"content_top_n" validate:"gte=1"`
	PearsonTopN int `koanf:"pearson_top_n" validate:"gte=1"`

	// TF-IDF vectorizer settings.
	MinDF        int     `koanf:"min_df" validate:"gte=1"`
	NGramMin     int     `koanf:"ngram_min" validate:"gte=1"`
	NGramMax     int     `koanf:"ngram_max" validate:"gtefield=NGramMin"`
	StopWords    string  `koanf:"stop_words" validate:"omitempty,oneof=en english none"`
	StripAccents bool    `koanf:"strip_accents"`
	Coef0        float64 `koanf:"coef0"`

	// RequestTimeout bounds one recommendation computation.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	Cache CacheConfig `koanf:"cache"`
}

// CacheConfig controls memoization of recommendation responses.
//
// Environment Variables:
//   - RECOMMEND_CACHE_ENABLED: true/false (default: false)
//   - RECOMMEND_CACHE_TTL: entry lifetime (default: 10m)
//   - RECOMMEND_CACHE_REFRESH_INTERVAL: source fingerprint poll interval (default: 30s)
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl" validate:"gt=0"`
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gt=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port" validate:"gte=1,lte=65535"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds browser-facing protections. There is no
// authentication; the API is read-only.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
