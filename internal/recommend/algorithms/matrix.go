// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/grocerec/internal/metrics"
	"github.com/tomtom215/grocerec/internal/recommend"
)

// InteractionMatrix is a product-by-order rating matrix. Rows are product
// names in ascending order, columns are order ids in ascending order, and
// absent cells read as 0.
type InteractionMatrix struct {
	// Names are the row labels.
	Names []string

	// OrderIDs are the column labels.
	OrderIDs []int

	// Rows hold the non-zero cells of each row, indexed by column position.
	Rows []SparseVector

	// Counts is the number of order lines behind each row (totalRatingCount).
	Counts []int

	rowByName map[string]int
}

// Len returns the number of rows.
func (m *InteractionMatrix) Len() int {
	return len(m.Names)
}

// Columns returns the number of columns.
func (m *InteractionMatrix) Columns() int {
	return len(m.OrderIDs)
}

// At returns the rating at (row, col), or 0 when the product was not part
// of that order.
func (m *InteractionMatrix) At(row, col int) float64 {
	return m.Rows[row].At(col)
}

// Dense returns row as a zero-filled slice over all columns.
func (m *InteractionMatrix) Dense(row int) []float64 {
	return m.Rows[row].Dense(len(m.OrderIDs))
}

// RowOf returns the row position of a product name.
func (m *InteractionMatrix) RowOf(name string) (int, bool) {
	row, ok := m.rowByName[name]
	return row, ok
}

// cellKey addresses one (product name, order) cell during aggregation.
type cellKey struct {
	name    string
	orderID int
}

// cellSum accumulates the ratings that fall into one cell.
type cellSum struct {
	sum float64
	n   int
}

// BuildInteractionMatrix pivots order lines into an InteractionMatrix.
//
// Order lines are inner-joined to catalog on product id and lines whose
// product has an empty name are dropped. When cfg.MaxOrderLines is set,
// only that many joined lines are kept. Each remaining product name gets
// the number of its order lines, and names whose count lies outside
// [cfg.PopularityMin, cfg.PopularityMax] are removed. Several lines landing
// in the same cell are averaged. An empty matrix is a valid result.
func BuildInteractionMatrix(catalog []recommend.Product, lines []recommend.OrderLine, cfg recommend.DatasetConfig) *InteractionMatrix {
	byID := make(map[int]int, len(catalog))
	for i, p := range catalog {
		if _, ok := byID[p.ProductID]; !ok {
			byID[p.ProductID] = i
		}
	}

	counts := make(map[string]int)
	cells := make(map[cellKey]*cellSum)
	joined := 0
	for _, line := range lines {
		pos, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		name := catalog[pos].ProductName
		if name == "" {
			continue
		}
		if cfg.MaxOrderLines > 0 && joined == cfg.MaxOrderLines {
			break
		}
		joined++

		counts[name]++
		key := cellKey{name: name, orderID: line.OrderID}
		c, ok := cells[key]
		if !ok {
			c = &cellSum{}
			cells[key] = c
		}
		c.sum += float64(line.AddToCartOrder)
		c.n++
	}

	keep := func(name string) bool {
		n := counts[name]
		return n >= cfg.PopularityMin && n <= cfg.PopularityMax
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		if keep(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	orderSet := make(map[int]struct{})
	for key := range cells {
		if keep(key.name) {
			orderSet[key.orderID] = struct{}{}
		}
	}
	orderIDs := make([]int, 0, len(orderSet))
	for id := range orderSet {
		orderIDs = append(orderIDs, id)
	}
	sort.Ints(orderIDs)

	m := &InteractionMatrix{
		Names:     names,
		OrderIDs:  orderIDs,
		Rows:      make([]SparseVector, len(names)),
		Counts:    make([]int, len(names)),
		rowByName: make(map[string]int, len(names)),
	}
	for row, name := range names {
		m.rowByName[name] = row
		m.Counts[row] = counts[name]
	}

	colOf := make(map[int]int, len(orderIDs))
	for col, id := range orderIDs {
		colOf[id] = col
	}

	type entry struct {
		col   int
		value float64
	}
	perRow := make([][]entry, len(names))
	for key, c := range cells {
		row, ok := m.rowByName[key.name]
		if !ok {
			continue
		}
		perRow[row] = append(perRow[row], entry{col: colOf[key.orderID], value: c.sum / float64(c.n)})
	}
	for row, entries := range perRow {
		sort.Slice(entries, func(i, j int) bool { return entries[i].col < entries[j].col })
		v := SparseVector{
			Indices: make([]int, 0, len(entries)),
			Values:  make([]float64, 0, len(entries)),
		}
		for _, e := range entries {
			if e.value != 0 {
				v.Add(e.col, e.value)
			}
		}
		m.Rows[row] = v
	}

	return m
}

// Dataset is the catalog together with the interaction matrix built from it.
type Dataset struct {
	Catalog []recommend.Product
	Matrix  *InteractionMatrix
}

// LoadDataset loads the catalog and order lines from src and builds the
// interaction matrix.
func LoadDataset(ctx context.Context, src recommend.DataSource, cfg recommend.DatasetConfig) (*Dataset, error) {
	catalog, err := recommend.LoadCatalog(ctx, src, cfg.CatalogLimit)
	if err != nil {
		return nil, err
	}

	lines, err := src.OrderLines(ctx)
	if err != nil {
		return nil, recommend.WrapSourceError(recommend.TableOrderLines, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := BuildInteractionMatrix(catalog, lines, cfg)
	metrics.RecordInteractionMatrix(matrix.Len(), matrix.Columns())

	return &Dataset{
		Catalog: catalog,
		Matrix:  matrix,
	}, nil
}

// RowProducts joins the matrix rows to the catalog, in row order.
func (d *Dataset) RowProducts() ([]recommend.Product, error) {
	return productsByName(d.Catalog, d.Matrix.Names)
}
