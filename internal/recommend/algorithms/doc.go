// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

// Package algorithms implements the similarity strategies served by the
// recommendation engine.
//
// Each strategy implements recommend.Strategy and is registered with a
// recommend.Engine by name:
//
//   - Collaborative ("collaborative"): brute-force cosine k-nearest
//     neighbors over the product-by-order interaction matrix. The query
//     product is the first neighbor.
//   - ContentBased ("content"): TF-IDF over "aisle department"
//     descriptions, ranked with a sigmoid kernel. The query product is
//     never returned.
//   - Pearson ("pearson"): Pearson's r between rows of the interaction
//     matrix, anchored on a chosen or the most ordered product.
//
// # Interaction Matrix
//
// BuildInteractionMatrix joins order lines to the catalog on product id,
// filters products by order line count and pivots the result into a
// product name by order id matrix. Cells hold the cart position
// (add_to_cart_order), averaged when a product appears twice in one order,
// and read as 0 when absent.
//
// # Statelessness
//
// Strategies hold configuration only. Every call reloads its inputs from
// the recommend.DataSource, so a change in the source is visible on the
// next call. Memoization is the engine's concern.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, src, logger)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterStrategy(algorithms.NewCollaborative(cfg.Dataset, cfg.Collaborative, logger))
//	engine.RegisterStrategy(algorithms.NewContentBased(cfg.Dataset, cfg.Content, logger))
//	engine.RegisterStrategy(algorithms.NewPearson(cfg.Dataset, cfg.Pearson, logger))
package algorithms
