// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"time"
)

// Source table names, used in errors, logs and metrics.
const (
	TableProducts    = "products"
	TableAisles      = "aisles"
	TableDepartments = "departments"
	TableOrderLines  = "order_products"
)

// Product is a catalog row: a product joined with its aisle and department.
// Field order is the canonical column order of every recommendation result.
type Product struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	AisleID      int    `json:"aisle_id"`
	DepartmentID int    `json:"department_id"`
	Aisle        string `json:"aisle"`
	Department   string `json:"department"`
}

// ProductRecord is a raw row of the products table.
// An empty ProductName means the name is missing.
type ProductRecord struct {
	ProductID    int
	ProductName  string
	AisleID      int
	DepartmentID int
}

// AisleRecord is a raw row of the aisles table.
type AisleRecord struct {
	AisleID int
	Aisle   string
}

// DepartmentRecord is a raw row of the departments table.
type DepartmentRecord struct {
	DepartmentID int
	Department   string
}

// OrderLine links an order to a product. The cart position
// (add_to_cart_order) is consumed as the rating signal.
type OrderLine struct {
	OrderID        int
	ProductID      int
	AddToCartOrder int
}

// DataSource provides read-only access to the four source tables.
// Implementations must return a *DataSourceError when a table is missing,
// unreadable or lacks an expected column.
type DataSource interface {
	Products(ctx context.Context) ([]ProductRecord, error)
	Aisles(ctx context.Context) ([]AisleRecord, error)
	Departments(ctx context.Context) ([]DepartmentRecord, error)
	OrderLines(ctx context.Context) ([]OrderLine, error)
}

// Versioner is implemented by data sources that can fingerprint their
// current contents. The fingerprint keys memoized results so that a change
// in the inputs invalidates them.
type Versioner interface {
	Version(ctx context.Context) (string, error)
}

// Query is the resolved input of a strategy invocation.
//
// Collaborative filtering reads RowIndex, a position in the interaction
// matrix. Content-based filtering reads ProductName, matched exactly.
// Pearson correlation reads ProductName as an optional anchor.
type Query struct {
	RowIndex    int    `json:"row_index"`
	ProductName string `json:"product_name,omitempty"`
	ExcludeSelf bool   `json:"exclude_self"`
}

// Strategy is a similarity strategy producing an ordered list of products.
// Every invocation rebuilds its working structures from the source.
type Strategy interface {
	// Name returns the strategy identifier used for routing and metrics.
	Name() string

	// Recommend returns products ranked by descending similarity.
	Recommend(ctx context.Context, src DataSource, q Query) ([]Product, error)

	// Resolve maps a catalog product id to this strategy's query.
	// It also returns the catalog product the query refers to.
	Resolve(ctx context.Context, src DataSource, productID int) (Query, Product, error)

	// Candidates lists the products that can be selected as a query.
	Candidates(ctx context.Context, src DataSource) ([]Product, error)
}

// Request is a recommendation request from the presentation layer.
type Request struct {
	// Strategy selects the registered strategy by name.
	Strategy string `json:"strategy"`

	// ProductID is the selected catalog product. Zero means no selection,
	// which only strategies with an optional input accept.
	ProductID int `json:"product_id"`

	// Refresh is the presentation layer's reset sentinel. The engine
	// returns an empty list and does not invoke any strategy.
	Refresh bool `json:"refresh"`

	// ExcludeSelf drops the query product from neighbor lists that
	// would otherwise include it.
	ExcludeSelf bool `json:"exclude_self"`

	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response holds the result of a recommendation request.
type Response struct {
	Strategy string           `json:"strategy"`
	Query    *Product         `json:"query,omitempty"`
	Items    []Product        `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	DataVersion string    `json:"data_version,omitempty"`
	CacheHit    bool      `json:"cache_hit"`
	Refreshed   bool      `json:"refreshed,omitempty"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests    int64 `json:"requests"`
	Refreshes   int64 `json:"refreshes"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`

	// CacheEntries and CacheHitRate describe the memoization cache and
	// stay zero while caching is disabled.
	CacheEntries int     `json:"cache_entries"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}
