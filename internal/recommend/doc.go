// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

// Package recommend implements the product recommendation engine.
//
// # Architecture
//
// The engine routes requests to independent similarity strategies that all
// read the same four source tables through a DataSource:
//
//   - Collaborative filtering: cosine nearest neighbors over a
//     product-by-order interaction matrix
//   - Content-based filtering: TF-IDF over aisle and department text,
//     ranked with a sigmoid kernel
//   - Pearson correlation: correlation of order participation against an
//     anchor product
//
// Strategies live in the algorithms subpackage. Data sources live in the
// storage subpackage.
//
// # Catalog
//
// LoadCatalog inner-joins products with aisles and departments, sorts by
// product id and keeps the first 1000 rows. Products past that cutoff are
// invisible to every strategy.
//
// # Recomputation and Caching
//
// Every strategy invocation rebuilds its catalog, matrix or vectors from the
// source. Memoization is a separate layer in the engine, disabled by
// default, keyed by strategy, request and the source fingerprint reported by
// a Versioner.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, source, logger)
//	if err != nil {
//	    return err
//	}
//
//	engine.RegisterStrategy(algorithms.NewCollaborative(cfg.Dataset, cfg.Collaborative, logger))
//	engine.RegisterStrategy(algorithms.NewContentBased(cfg.Dataset, cfg.Content, logger))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Strategy:    algorithms.StrategyContent,
//	    ProductID:   1,
//	    ExcludeSelf: true,
//	})
//
// # Errors
//
// A *DataSourceError fails the request. ErrProductNotFound and
// ErrIndexOutOfRange mean no recommendation is available and should be
// shown as an empty result; IsNoRecommendation reports that case.
//
// # Thread Safety
//
// The engine holds no mutable state besides counters, the strategy registry
// and the optional cache, all of which are synchronized.
package recommend
