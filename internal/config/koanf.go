// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/grocerec/config.yaml",
	"/etc/grocerec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:     "data",
			Backend: BackendCSV,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Recommend: RecommendConfig{
			CatalogLimit:   1000,
			PopularityMin:  0,
			PopularityMax:  50,
			Neighbors:      13,
			ContentTopN:    12,
			PearsonTopN:    12,
			MinDF:          3,
			NGramMin:       1,
			NGramMax:       3,
			StopWords:      "en",
			StripAccents:   true,
			Coef0:          1,
			RequestTimeout: 30 * time.Second,
			Cache: CacheConfig{
				Enabled:         false, // recompute per request unless opted in
				TTL:             10 * time.Minute,
				RefreshInterval: 30 * time.Second,
			},
		},
		Server: ServerConfig{
			Port:    8050,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: highest priority
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DATA_DIR -> data.dir, LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Data source
	"data_dir":               "data.dir",
	"data_backend":           "data.backend",
	"products_path":          "data.products_path",
	"aisles_path":            "data.aisles_path",
	"departments_path":       "data.departments_path",
	"order_products_path":    "data.order_lines_path",
	"max_order_lines":        "data.max_order_lines",
	"order_lines_read_limit": "data.order_lines_read_limit",
	"breaker_enabled":        "data.breaker.enabled",
	"breaker_max_requests":   "data.breaker.max_requests",
	"breaker_interval":       "data.breaker.interval",
	"breaker_timeout":        "data.breaker.timeout",
	"breaker_min_requests":   "data.breaker.min_requests",
	"breaker_failure_ratio":  "data.breaker.failure_ratio",

	// Recommender
	"recommend_catalog_limit":          "recommend.catalog_limit",
	"recommend_popularity_min":         "recommend.popularity_min",
	"recommend_popularity_max":         "recommend.popularity_max",
	"recommend_neighbors":              "recommend.neighbors",
	"recommend_content_top_n":          "recommend.content_top_n",
	"recommend_pearson_top_n":          "recommend.pearson_top_n",
	"recommend_min_df":                 "recommend.min_df",
	"recommend_ngram_min":              "recommend.ngram_min",
	"recommend_ngram_max":              "recommend.ngram_max",
	"recommend_stop_words":             "recommend.stop_words",
	"recommend_strip_accents":          "recommend.strip_accents",
	"recommend_coef0":                  "recommend.coef0",
	"recommend_request_timeout":        "recommend.request_timeout",
	"recommend_cache_enabled":          "recommend.cache.enabled",
	"recommend_cache_ttl":              "recommend.cache.ttl",
	"recommend_cache_refresh_interval": "recommend.cache.refresh_interval",

	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped so that unrelated
// environment does not leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
