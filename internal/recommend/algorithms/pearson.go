// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// Pearson recommends products whose order pattern correlates with an
// anchor product. Without an explicit anchor, the most ordered product in
// the interaction matrix is used.
type Pearson struct {
	dataset recommend.DatasetConfig
	config  recommend.PearsonConfig
	logger  zerolog.Logger
}

// NewPearson creates the Pearson correlation strategy.
func NewPearson(dataset recommend.DatasetConfig, cfg recommend.PearsonConfig, logger zerolog.Logger) *Pearson {
	if cfg.TopN <= 0 {
		cfg.TopN = recommend.DefaultConfig().Pearson.TopN
	}
	return &Pearson{
		dataset: dataset,
		config:  cfg,
		logger:  logger.With().Str("strategy", StrategyPearson).Logger(),
	}
}

// Name returns the strategy identifier.
func (p *Pearson) Name() string {
	return StrategyPearson
}

// Anchor returns the row of name, or of the most ordered product when name
// is empty. Ties on the order count go to the lower row.
func Anchor(m *InteractionMatrix, name string) (int, error) {
	if name != "" {
		row, ok := m.RowOf(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q is not in the interaction matrix", recommend.ErrProductNotFound, name)
		}
		return row, nil
	}
	best := -1
	for row, n := range m.Counts {
		if best < 0 || n > m.Counts[best] {
			best = row
		}
	}
	return best, nil
}

// Recommend returns the TopN rows most correlated with the anchor, highest
// r first. Rows with undefined r are skipped and the anchor is excluded.
func (p *Pearson) Recommend(ctx context.Context, src recommend.DataSource, q recommend.Query) ([]recommend.Product, error) {
	ds, err := LoadDataset(ctx, src, p.dataset)
	if err != nil {
		return nil, err
	}
	m := ds.Matrix
	if m.Len() == 0 {
		return []recommend.Product{}, nil
	}

	anchor, err := Anchor(m, q.ProductName)
	if err != nil {
		return nil, err
	}

	x := m.Dense(anchor)
	candidates := make([]scored, 0, m.Len())
	for row := 0; row < m.Len(); row++ {
		if err := checkCancelled(ctx, row); err != nil {
			return nil, err
		}
		if row == anchor {
			continue
		}
		r := stat.Correlation(x, m.Dense(row), nil)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		candidates = append(candidates, scored{index: row, score: r})
	}
	sortByScoreDesc(candidates)
	if len(candidates) > p.config.TopN {
		candidates = candidates[:p.config.TopN]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = m.Names[c.index]
	}

	p.logger.Debug().
		Str("anchor", m.Names[anchor]).
		Int("rows", m.Len()).
		Int("results", len(names)).
		Msg("Computed order correlations")

	return productsByName(ds.Catalog, names)
}

// Resolve maps a product id to an anchor name. Product id 0 selects no
// anchor and resolves to the zero Query.
func (p *Pearson) Resolve(ctx context.Context, src recommend.DataSource, productID int) (recommend.Query, recommend.Product, error) {
	if productID == 0 {
		return recommend.Query{}, recommend.Product{}, nil
	}
	ds, err := LoadDataset(ctx, src, p.dataset)
	if err != nil {
		return recommend.Query{}, recommend.Product{}, err
	}
	prod, ok := productByID(ds.Catalog, productID)
	if !ok {
		return recommend.Query{}, recommend.Product{}, fmt.Errorf("%w: product id %d", recommend.ErrProductNotFound, productID)
	}
	if _, ok := ds.Matrix.RowOf(prod.ProductName); !ok {
		return recommend.Query{}, recommend.Product{}, fmt.Errorf("%w: product id %d is not in the interaction matrix", recommend.ErrProductNotFound, productID)
	}
	return recommend.Query{ProductName: prod.ProductName}, prod, nil
}

// Candidates lists the interaction matrix rows as products, in row order.
func (p *Pearson) Candidates(ctx context.Context, src recommend.DataSource) ([]recommend.Product, error) {
	ds, err := LoadDataset(ctx, src, p.dataset)
	if err != nil {
		return nil, err
	}
	return ds.RowProducts()
}
