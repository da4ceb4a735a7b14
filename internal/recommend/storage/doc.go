// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

// Package storage provides the file-backed data sources of the recommender.
//
// The four source tables (products, aisles, departments and order lines) are
// read-only CSV files with a header row. Two readers are available:
//
//   - CSVSource streams the files with encoding/csv.
//   - DuckDBSource queries them in place with DuckDB's read_csv_auto.
//
// Both re-read the files on every call and report failures as
// *recommend.DataSourceError carrying the table and path. Both implement
// recommend.Versioner with Fingerprint, a hash of the size and
// modification time of each file, which keys the engine's memoization.
//
// BreakerSource wraps either reader in a sony/gobreaker circuit breaker so
// that a missing or corrupt file fails fast instead of being re-parsed on
// every request.
//
// # File Layout
//
// DataPathsFromDir expects the Instacart file names:
//
//	data/
//	  products.csv                product_id,product_name,aisle_id,department_id
//	  aisles.csv                  aisle_id,aisle
//	  departments.csv             department_id,department
//	  order_products__train.csv   order_id,product_id,add_to_cart_order,reordered
//
// Extra columns are ignored. Missing required columns are errors.
package storage
