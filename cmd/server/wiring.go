// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/config"
	"github.com/tomtom215/grocerec/internal/recommend"
	"github.com/tomtom215/grocerec/internal/recommend/algorithms"
	"github.com/tomtom215/grocerec/internal/recommend/storage"
)

// dataPaths resolves the table files: the data directory's default layout
// with per-table overrides.
func dataPaths(cfg *config.DataConfig) storage.DataPaths {
	paths := storage.DataPathsFromDir(cfg.Dir)
	if cfg.ProductsPath != "" {
		paths.Products = cfg.ProductsPath
	}
	if cfg.AislesPath != "" {
		paths.Aisles = cfg.AislesPath
	}
	if cfg.DepartmentsPath != "" {
		paths.Departments = cfg.DepartmentsPath
	}
	if cfg.OrderLinesPath != "" {
		paths.OrderLines = cfg.OrderLinesPath
	}
	return paths
}

// buildSource creates the configured reader, behind a circuit breaker
// when enabled. The returned func releases the reader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildSource(cfg *config.Config, logger zerolog.Logger) (recommend.DataSource, func(), error) {
	sourceCfg := storage.SourceConfig{
		Paths:         dataPaths(&cfg.Data),
		MaxOrderLines: cfg.Data.OrderLinesReadLimit,
	}

	var (
		source  recommend.DataSource
		closeFn = func() {}
	)
	switch cfg.Data.Backend {
	case config.BackendDuckDB:
		db, err := storage.NewDuckDBSource(sourceCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("duckdb source: %w", err)
		}
		source = db
		closeFn = func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing duckdb source")
			}
		}
	default:
		source = storage.NewCSVSource(sourceCfg, logger)
	}

	if cfg.Data.Breaker.Enabled {
		b := cfg.Data.Breaker
		source = storage.NewBreakerSource(source, storage.BreakerConfig{
			Name:         "data-source",
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureRatio,
		}, logger)
	}
	return source, closeFn, nil
}

// engineConfig maps the service configuration onto the engine's.
func engineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	r := cfg.Recommend

	rc.Dataset.CatalogLimit = r.CatalogLimit
	rc.Dataset.PopularityMin = r.PopularityMin
	rc.Dataset.PopularityMax = r.PopularityMax
	rc.Dataset.MaxOrderLines = cfg.Data.MaxOrderLines

	rc.Collaborative.Neighbors = r.Neighbors

	rc.Content.TopN = r.ContentTopN
	rc.Content.MinDF = r.MinDF
	rc.Content.NGramMin = r.NGramMin
	rc.Content.NGramMax = r.NGramMax
	rc.Content.StopWords = stopWordsCode(r.StopWords)
	rc.Content.StripAccents = r.StripAccents
	rc.Content.Coef0 = r.Coef0

	rc.Pearson.TopN = r.PearsonTopN

	rc.Limits.RequestTimeout = r.RequestTimeout
	rc.Cache.Enabled = r.Cache.Enabled
	rc.Cache.TTL = r.Cache.TTL
	return rc
}

// stopWordsCode maps the configured stop word setting to the tokenizer's
// language code. "none" keeps every word.
func stopWordsCode(setting string) string {
	switch setting {
	case "none":
		return ""
	case "english":
		return "en"
	default:
		return setting
	}
}

// buildEngine creates the engine and registers the three strategies.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildEngine(cfg *config.Config, source recommend.DataSource, logger zerolog.Logger) (*recommend.Engine, error) {
	rc := engineConfig(cfg)
	engine, err := recommend.NewEngine(rc, source, logger)
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	engine.RegisterStrategy(algorithms.NewCollaborative(rc.Dataset, rc.Collaborative, logger))
	engine.RegisterStrategy(algorithms.NewContentBased(rc.Dataset, rc.Content, logger))
	engine.RegisterStrategy(algorithms.NewPearson(rc.Dataset, rc.Pearson, logger))
	return engine, nil
}
