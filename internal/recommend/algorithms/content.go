// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// ContentBased recommends products with a similar description. The
// description of a product is its aisle and department. Descriptions are
// vectorized with TF-IDF and compared with a sigmoid kernel:
//
//	sim(a, b) = tanh(gamma * <a, b> + coef0), gamma = 1 / vocabulary size
//
// The query product is never part of the result.
type ContentBased struct {
	dataset recommend.DatasetConfig
	config  recommend.ContentConfig
	logger  zerolog.Logger
}

// NewContentBased creates the content-based filtering strategy.
func NewContentBased(dataset recommend.DatasetConfig, cfg recommend.ContentConfig, logger zerolog.Logger) *ContentBased {
	def := recommend.DefaultConfig().Content
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.NGramMin <= 0 {
		cfg.NGramMin = def.NGramMin
	}
	if cfg.NGramMax < cfg.NGramMin {
		cfg.NGramMax = cfg.NGramMin
	}
	return &ContentBased{
		dataset: dataset,
		config:  cfg,
		logger:  logger.With().Str("strategy", StrategyContent).Logger(),
	}
}

// Name returns the strategy identifier.
func (c *ContentBased) Name() string {
	return StrategyContent
}

// Description returns the text a product is vectorized from. It is empty
// when the aisle or the department is missing.
func Description(p recommend.Product) string {
	if p.Aisle == "" || p.Department == "" {
		return ""
	}
	return p.Aisle + " " + p.Department
}

// Recommend returns the TopN catalog products most similar to
// q.ProductName, best first. The name must match a catalog entry exactly.
func (c *ContentBased) Recommend(ctx context.Context, src recommend.DataSource, q recommend.Query) ([]recommend.Product, error) {
	catalog, err := recommend.LoadCatalog(ctx, src, c.dataset.CatalogLimit)
	if err != nil {
		return nil, err
	}

	queryPos, ok := recommend.NameIndex(catalog)[q.ProductName]
	if !ok {
		return nil, fmt.Errorf("%w: no catalog entry named %q", recommend.ErrProductNotFound, q.ProductName)
	}

	scores, err := c.scores(ctx, catalog, queryPos)
	if err != nil {
		return nil, err
	}

	candidates := make([]scored, 0, len(scores))
	for i, s := range scores {
		if i == queryPos {
			continue
		}
		candidates = append(candidates, scored{index: i, score: s})
	}
	sortByScoreDesc(candidates)
	if len(candidates) > c.config.TopN {
		candidates = candidates[:c.config.TopN]
	}

	byID := recommend.IDIndex(catalog)
	out := make([]recommend.Product, 0, len(candidates))
	for _, cand := range candidates {
		pos, ok := byID[catalog[cand.index].ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product id %d", recommend.ErrProductNotFound, catalog[cand.index].ProductID)
		}
		out = append(out, catalog[pos])
	}
	return out, nil
}

// scores computes the kernel row of the query against every catalog entry.
func (c *ContentBased) scores(ctx context.Context, catalog []recommend.Product, queryPos int) ([]float64, error) {
	vectorizer, err := NewTFIDF(TFIDFConfig{
		MinDF:        c.config.MinDF,
		NGramMin:     c.config.NGramMin,
		NGramMax:     c.config.NGramMax,
		StopWords:    c.config.StopWords,
		StripAccents: c.config.StripAccents,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]string, len(catalog))
	for i, p := range catalog {
		docs[i] = Description(p)
	}
	vectors := vectorizer.FitTransform(docs)

	gamma := 0.0
	if n := vectorizer.VocabularySize(); n > 0 {
		gamma = 1 / float64(n)
	}

	query := &vectors[queryPos]
	out := make([]float64, len(vectors))
	for i := range vectors {
		if err := checkCancelled(ctx, i); err != nil {
			return nil, err
		}
		out[i] = SigmoidKernel(query, &vectors[i], gamma, c.config.Coef0)
	}

	c.logger.Debug().
		Int("products", len(catalog)).
		Int("vocabulary", vectorizer.VocabularySize()).
		Msg("Computed description similarity")

	return out, nil
}

// Resolve maps a product id to a name query.
func (c *ContentBased) Resolve(ctx context.Context, src recommend.DataSource, productID int) (recommend.Query, recommend.Product, error) {
	catalog, err := recommend.LoadCatalog(ctx, src, c.dataset.CatalogLimit)
	if err != nil {
		return recommend.Query{}, recommend.Product{}, err
	}
	p, ok := productByID(catalog, productID)
	if !ok {
		return recommend.Query{}, recommend.Product{}, fmt.Errorf("%w: product id %d", recommend.ErrProductNotFound, productID)
	}
	return recommend.Query{ProductName: p.ProductName}, p, nil
}

// Candidates lists the whole catalog.
func (c *ContentBased) Candidates(ctx context.Context, src recommend.DataSource) ([]recommend.Product, error) {
	return recommend.LoadCatalog(ctx, src, c.dataset.CatalogLimit)
}
