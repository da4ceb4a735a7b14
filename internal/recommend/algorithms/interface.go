// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// Strategy names.
const (
	StrategyCollaborative = "collaborative"
	StrategyContent       = "content"
	StrategyPearson       = "pearson"
)

// cancelCheckInterval is how many loop iterations run between context checks
// in the quadratic loops.
const cancelCheckInterval = 256

// Ensure all strategies implement the interface.
var (
	_ recommend.Strategy = (*Collaborative)(nil)
	_ recommend.Strategy = (*ContentBased)(nil)
	_ recommend.Strategy = (*Pearson)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// checkCancelled returns ctx.Err() every cancelCheckInterval iterations.
func checkCancelled(ctx context.Context, i int) error {
	if i%cancelCheckInterval == 0 && ContextCancelled(ctx) {
		return ctx.Err()
	}
	return nil
}

// scored is a candidate position with its similarity score.
type scored struct {
	index int
	score float64
}

// sortByScoreDesc orders candidates by descending score, then ascending
// index so that equal scores keep their source order.
func sortByScoreDesc(candidates []scored) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})
}

// productsByName resolves matrix row names to catalog products.
// Duplicate catalog names resolve to the lowest product id.
func productsByName(catalog []recommend.Product, names []string) ([]recommend.Product, error) {
	idx := recommend.NameIndex(catalog)
	out := make([]recommend.Product, 0, len(names))
	for _, name := range names {
		pos, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: no catalog entry named %q", recommend.ErrProductNotFound, name)
		}
		out = append(out, catalog[pos])
	}
	return out, nil
}

// productByID finds a catalog product by id.
func productByID(catalog []recommend.Product, productID int) (recommend.Product, bool) {
	pos, ok := recommend.IDIndex(catalog)[productID]
	if !ok {
		return recommend.Product{}, false
	}
	return catalog[pos], true
}
