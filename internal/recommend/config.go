// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Dataset controls catalog construction and the interaction matrix.
	Dataset DatasetConfig `json:"dataset"`

	// Collaborative contains parameters for collaborative filtering.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Content contains parameters for content-based filtering.
	Content ContentConfig `json:"content"`

	// Pearson contains parameters for the Pearson correlation strategy.
	Pearson PearsonConfig `json:"pearson"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains memoization parameters.
	Cache CacheConfig `json:"cache"`
}

// DatasetConfig controls how the catalog and interaction matrix are built.
type DatasetConfig struct {
	// CatalogLimit is the number of products kept after sorting by id.
	// Default: 1000.
	CatalogLimit int `json:"catalog_limit"`

	// PopularityMin and PopularityMax bound the number of order lines a
	// product may have to stay in the interaction matrix (inclusive).
	// Defaults: 0 and 50.
	PopularityMin int `json:"popularity_min"`
	PopularityMax int `json:"popularity_max"`

	// MaxOrderLines caps how many order lines survive the catalog join.
	// Zero keeps all.
	MaxOrderLines int `json:"max_order_lines"`
}

// CollaborativeConfig contains parameters for collaborative filtering.
type CollaborativeConfig struct {
	// Neighbors is the neighbor count including the query row itself.
	// Default: 13.
	Neighbors int `json:"neighbors"`
}

// ContentConfig contains parameters for content-based filtering.
type ContentConfig struct {
	// TopN is the number of similar products returned. Default: 12.
	TopN int `json:"top_n"`

	// MinDF is the minimum number of descriptions a term must occur in.
	// Default: 3.
	MinDF int `json:"min_df"`

	// NGramMin and NGramMax bound the word n-gram lengths. Defaults: 1 and 3.
	NGramMin int `json:"ngram_min"`
	NGramMax int `json:"ngram_max"`

	// StopWords is the stop word language code, or empty to keep all words.
	// Default: "en".
	StopWords string `json:"stop_words"`

	// StripAccents folds accented characters before tokenizing.
	// Default: true.
	StripAccents bool `json:"strip_accents"`

	// Coef0 is the sigmoid kernel intercept. Default: 1.
	Coef0 float64 `json:"coef0"`
}

// PearsonConfig contains parameters for the Pearson correlation strategy.
type PearsonConfig struct {
	// TopN is the number of correlated products returned. Default: 12.
	TopN int `json:"top_n"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// RequestTimeout bounds a single recommendation computation.
	// Default: 30s.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// CacheConfig controls memoization of recommendation responses.
type CacheConfig struct {
	// Enabled turns the memoization layer on. Default: false, so every
	// request recomputes from the source.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live. Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with the reference parameter values.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			CatalogLimit:  DefaultCatalogLimit,
			PopularityMin: 0,
			PopularityMax: 50,
			MaxOrderLines: 0,
		},
		Collaborative: CollaborativeConfig{
			Neighbors: 13,
		},
		Content: ContentConfig{
			TopN:         12,
			MinDF:        3,
			NGramMin:     1,
			NGramMax:     3,
			StopWords:    "en",
			StripAccents: true,
			Coef0:        1,
		},
		Pearson: PearsonConfig{
			TopN: 12,
		},
		Limits: LimitsConfig{
			RequestTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dataset.CatalogLimit < 0 {
		return fmt.Errorf("dataset.catalog_limit must be non-negative, got %d", c.Dataset.CatalogLimit)
	}
	if c.Dataset.PopularityMin < 0 {
		return fmt.Errorf("dataset.popularity_min must be non-negative, got %d", c.Dataset.PopularityMin)
	}
	if c.Dataset.PopularityMax < c.Dataset.PopularityMin {
		return fmt.Errorf("dataset.popularity_max must be >= dataset.popularity_min, got %d < %d",
			c.Dataset.PopularityMax, c.Dataset.PopularityMin)
	}
	if c.Dataset.MaxOrderLines < 0 {
		return fmt.Errorf("dataset.max_order_lines must be non-negative, got %d", c.Dataset.MaxOrderLines)
	}

	if c.Collaborative.Neighbors < 1 {
		return fmt.Errorf("collaborative.neighbors must be positive, got %d", c.Collaborative.Neighbors)
	}

	if c.Content.TopN < 1 {
		return fmt.Errorf("content.top_n must be positive, got %d", c.Content.TopN)
	}
	if c.Content.MinDF < 1 {
		return fmt.Errorf("content.min_df must be positive, got %d", c.Content.MinDF)
	}
	if c.Content.NGramMin < 1 || c.Content.NGramMax < c.Content.NGramMin {
		return fmt.Errorf("content.ngram range must satisfy 1 <= min <= max, got (%d, %d)",
			c.Content.NGramMin, c.Content.NGramMax)
	}

	if c.Pearson.TopN < 1 {
		return fmt.Errorf("pearson.top_n must be positive, got %d", c.Pearson.TopN)
	}

	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %v", c.Limits.RequestTimeout)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
