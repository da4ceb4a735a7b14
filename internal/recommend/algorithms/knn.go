// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// Neighbor is a matrix row with its cosine distance to the query row.
type Neighbor struct {
	Row      int
	Distance float64
}

// Neighbors returns the k rows of m nearest to row by cosine distance,
// ascending. The query row is always first. Ties are broken by row index so
// the result is deterministic.
//
// Every row is compared against the query (brute force). k is clamped to
// the number of rows.
func Neighbors(ctx context.Context, m *InteractionMatrix, row, k int) ([]Neighbor, error) {
	if row < 0 || row >= m.Len() {
		return nil, fmt.Errorf("%w: index %d, rows %d", recommend.ErrIndexOutOfRange, row, m.Len())
	}
	if k > m.Len() {
		k = m.Len()
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	query := &m.Rows[row]
	all := make([]Neighbor, m.Len())
	for i := range m.Rows {
		if err := checkCancelled(ctx, i); err != nil {
			return nil, err
		}
		d := CosineDistance(query, &m.Rows[i])
		if i == row {
			d = 0
		}
		all[i] = Neighbor{Row: i, Distance: d}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if (a.Row == row) != (b.Row == row) {
			return a.Row == row
		}
		return a.Row < b.Row
	})
	return all[:k], nil
}

// Collaborative recommends products bought in similar orders. Rows of the
// interaction matrix are compared by cosine distance and the nearest
// neighbors of the query row are returned, the query itself included.
type Collaborative struct {
	dataset recommend.DatasetConfig
	config  recommend.CollaborativeConfig
	logger  zerolog.Logger
}

// NewCollaborative creates the collaborative filtering strategy.
func NewCollaborative(dataset recommend.DatasetConfig, cfg recommend.CollaborativeConfig, logger zerolog.Logger) *Collaborative {
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = recommend.DefaultConfig().Collaborative.Neighbors
	}
	return &Collaborative{
		dataset: dataset,
		config:  cfg,
		logger:  logger.With().Str("strategy", StrategyCollaborative).Logger(),
	}
}

// Name returns the strategy identifier.
func (c *Collaborative) Name() string {
	return StrategyCollaborative
}

// Recommend returns the products of the nearest rows to q.RowIndex,
// nearest first. Unless q.ExcludeSelf is set, the first element is the
// query product.
func (c *Collaborative) Recommend(ctx context.Context, src recommend.DataSource, q recommend.Query) ([]recommend.Product, error) {
	ds, err := LoadDataset(ctx, src, c.dataset)
	if err != nil {
		return nil, err
	}

	neighbors, err := Neighbors(ctx, ds.Matrix, q.RowIndex, c.config.Neighbors)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		if q.ExcludeSelf && n.Row == q.RowIndex {
			continue
		}
		names = append(names, ds.Matrix.Names[n.Row])
	}

	c.logger.Debug().
		Int("row", q.RowIndex).
		Int("rows", ds.Matrix.Len()).
		Int("columns", ds.Matrix.Columns()).
		Int("results", len(names)).
		Msg("Computed nearest neighbors")

	return productsByName(ds.Catalog, names)
}

// Resolve maps a product id to the interaction matrix row holding its name.
func (c *Collaborative) Resolve(ctx context.Context, src recommend.DataSource, productID int) (recommend.Query, recommend.Product, error) {
	ds, err := LoadDataset(ctx, src, c.dataset)
	if err != nil {
		return recommend.Query{}, recommend.Product{}, err
	}

	p, ok := productByID(ds.Catalog, productID)
	if !ok {
		return recommend.Query{}, recommend.Product{}, fmt.Errorf("%w: product id %d", recommend.ErrProductNotFound, productID)
	}
	row, ok := ds.Matrix.RowOf(p.ProductName)
	if !ok {
		return recommend.Query{}, recommend.Product{}, fmt.Errorf("%w: product id %d is not in the interaction matrix", recommend.ErrProductNotFound, productID)
	}
	return recommend.Query{RowIndex: row}, p, nil
}

// Candidates lists the interaction matrix rows as products, in row order.
func (c *Collaborative) Candidates(ctx context.Context, src recommend.DataSource) ([]recommend.Product, error) {
	ds, err := LoadDataset(ctx, src, c.dataset)
	if err != nil {
		return nil, err
	}
	return ds.RowProducts()
}
