// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/grocerec/internal/recommend"
)

func loadFixtureCatalog(t *testing.T) []recommend.Product {
	t.Helper()
	catalog, err := recommend.LoadCatalog(context.Background(), groceryFixture(), recommend.DefaultCatalogLimit)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	return catalog
}

func TestBuildInteractionMatrix(t *testing.T) {
	catalog := loadFixtureCatalog(t)
	lines := groceryFixture().OrderLineRows

	tests := []struct {
		name      string
		cfg       recommend.DatasetConfig
		lines     []recommend.OrderLine
		wantNames []string
		wantCols  []int
	}{
		{
			name:      "default popularity bounds keep everything",
			cfg:       recommend.DefaultConfig().Dataset,
			wantNames: []string{"Apple", "Banana", "Carrot", "Cola", "Onion"},
			wantCols:  []int{100, 101, 102, 103},
		},
		{
			name:      "upper bound drops popular products",
			cfg:       recommend.DatasetConfig{PopularityMin: 0, PopularityMax: 1},
			wantNames: []string{"Carrot", "Cola", "Onion"},
			wantCols:  []int{102, 103},
		},
		{
			name:      "lower bound drops rare products",
			cfg:       recommend.DatasetConfig{PopularityMin: 2, PopularityMax: 50},
			wantNames: []string{"Apple", "Banana"},
			wantCols:  []int{100, 101},
		},
		{
			name:      "order line cap",
			cfg:       recommend.DatasetConfig{PopularityMax: 50, MaxOrderLines: 2},
			wantNames: []string{"Apple", "Banana"},
			wantCols:  []int{100},
		},
		{
			name:  "order line cap counts joined lines only",
			cfg:   recommend.DatasetConfig{PopularityMax: 50, MaxOrderLines: 2},
			lines: append([]recommend.OrderLine{
				{OrderID: 99, ProductID: 9, AddToCartOrder: 1},
				{OrderID: 99, ProductID: 999, AddToCartOrder: 2},
			}, lines...),
			wantNames: []string{"Apple", "Banana"},
			wantCols:  []int{100},
		},
		{
			name:      "nothing survives",
			cfg:       recommend.DatasetConfig{PopularityMin: 10, PopularityMax: 50},
			wantNames: []string{},
			wantCols:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := lines
			if tt.lines != nil {
				input = tt.lines
			}
			m := BuildInteractionMatrix(catalog, input, tt.cfg)
			if !equalStrings(m.Names, tt.wantNames) {
				t.Errorf("Names = %v, want %v", m.Names, tt.wantNames)
			}
			if len(m.OrderIDs) != len(tt.wantCols) {
				t.Fatalf("OrderIDs = %v, want %v", m.OrderIDs, tt.wantCols)
			}
			for i := range tt.wantCols {
				if m.OrderIDs[i] != tt.wantCols[i] {
					t.Errorf("OrderIDs = %v, want %v", m.OrderIDs, tt.wantCols)
					break
				}
			}
			if len(m.Rows) != m.Len() || len(m.Counts) != m.Len() {
				t.Errorf("len(Rows) = %d, len(Counts) = %d, want %d", len(m.Rows), len(m.Counts), m.Len())
			}
		})
	}
}

func TestBuildInteractionMatrix_Cells(t *testing.T) {
	catalog := loadFixtureCatalog(t)
	m := BuildInteractionMatrix(catalog, groceryFixture().OrderLineRows, recommend.DefaultConfig().Dataset)

	apple, _ := m.RowOf("Apple")
	want := []float64{2, 2, 0, 0}
	for col, w := range want {
		if got := m.At(apple, col); got != w {
			t.Errorf("At(Apple, %d) = %v, want %v", col, got, w)
		}
	}
	if m.Counts[apple] != 2 {
		t.Errorf("Counts[Apple] = %d, want 2", m.Counts[apple])
	}
}

func TestBuildInteractionMatrix_DuplicateCellsAveraged(t *testing.T) {
	catalog := loadFixtureCatalog(t)
	lines := []recommend.OrderLine{
		{OrderID: 1, ProductID: 1, AddToCartOrder: 1},
		{OrderID: 1, ProductID: 1, AddToCartOrder: 3},
	}
	m := BuildInteractionMatrix(catalog, lines, recommend.DefaultConfig().Dataset)

	if got := m.At(0, 0); got != 2 {
		t.Errorf("At(0, 0) = %v, want 2", got)
	}
	if m.Counts[0] != 2 {
		t.Errorf("Counts[0] = %d, want 2", m.Counts[0])
	}
}

func TestBuildInteractionMatrix_DropsUnknownAndUnnamed(t *testing.T) {
	catalog := []recommend.Product{
		{ProductID: 1, ProductName: "Banana"},
		{ProductID: 2, ProductName: ""},
	}
	lines := []recommend.OrderLine{
		{OrderID: 1, ProductID: 1, AddToCartOrder: 1},
		{OrderID: 1, ProductID: 2, AddToCartOrder: 2},
		{OrderID: 2, ProductID: 42, AddToCartOrder: 1},
	}
	m := BuildInteractionMatrix(catalog, lines, recommend.DefaultConfig().Dataset)

	if !equalStrings(m.Names, []string{"Banana"}) {
		t.Errorf("Names = %v, want [Banana]", m.Names)
	}
	if m.Columns() != 1 {
		t.Errorf("Columns() = %d, want 1", m.Columns())
	}
}

func TestLoadDataset(t *testing.T) {
	t.Run("loads catalog and matrix", func(t *testing.T) {
		ds, err := LoadDataset(context.Background(), groceryFixture(), recommend.DefaultConfig().Dataset)
		if err != nil {
			t.Fatalf("LoadDataset() error = %v", err)
		}
		if len(ds.Catalog) != 8 {
			t.Errorf("len(Catalog) = %d, want 8", len(ds.Catalog))
		}
		if ds.Matrix.Len() != 5 {
			t.Errorf("Matrix.Len() = %d, want 5", ds.Matrix.Len())
		}
		products, err := ds.RowProducts()
		if err != nil {
			t.Fatalf("RowProducts() error = %v", err)
		}
		if products[0].ProductID != 2 {
			t.Errorf("RowProducts()[0].ProductID = %d, want 2", products[0].ProductID)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		src := groceryFixture()
		src.AislesErr = errors.New("no such file")
		_, err := LoadDataset(context.Background(), src, recommend.DefaultConfig().Dataset)
		if !recommend.IsDataSourceError(err) {
			t.Errorf("LoadDataset() error = %v, want DataSourceError", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := LoadDataset(ctx, groceryFixture(), recommend.DefaultConfig().Dataset)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("LoadDataset() error = %v, want context.Canceled", err)
		}
	})
}
