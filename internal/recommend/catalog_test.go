// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func catalogSource(products int) *StaticSource {
	src := &StaticSource{
		AisleRows:      []AisleRecord{{AisleID: 1, Aisle: "snacks"}},
		DepartmentRows: []DepartmentRecord{{DepartmentID: 1, Department: "pantry"}},
	}
	// Ids are added in descending order to exercise sorting.
	for id := products; id >= 1; id-- {
		src.ProductRows = append(src.ProductRows, ProductRecord{
			ProductID:    id,
			ProductName:  fmt.Sprintf("Product %d", id),
			AisleID:      1,
			DepartmentID: 1,
		})
	}
	return src
}

func TestLoadCatalog_SortsAndTruncates(t *testing.T) {
	catalog, err := LoadCatalog(context.Background(), catalogSource(1500), DefaultCatalogLimit)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog) != 1000 {
		t.Fatalf("len(catalog) = %d, want 1000", len(catalog))
	}
	for i, p := range catalog {
		if p.ProductID != i+1 {
			t.Fatalf("catalog[%d].ProductID = %d, want %d", i, p.ProductID, i+1)
		}
	}
	if catalog[0].Aisle != "snacks" || catalog[0].Department != "pantry" {
		t.Errorf("catalog[0] = %+v, want joined aisle and department", catalog[0])
	}
}

func TestLoadCatalog_Limit(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		limit int
		want  int
	}{
		{name: "fewer rows than limit", rows: 10, limit: 1000, want: 10},
		{name: "zero limit keeps all", rows: 1200, limit: 0, want: 1200},
		{name: "small limit", rows: 10, limit: 3, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := LoadCatalog(context.Background(), catalogSource(tt.rows), tt.limit)
			if err != nil {
				t.Fatalf("LoadCatalog() error = %v", err)
			}
			if len(catalog) != tt.want {
				t.Errorf("len(catalog) = %d, want %d", len(catalog), tt.want)
			}
		})
	}
}

func TestLoadCatalog_InnerJoin(t *testing.T) {
	src := &StaticSource{
		ProductRows: []ProductRecord{
			{ProductID: 1, ProductName: "Kept", AisleID: 1, DepartmentID: 1},
			{ProductID: 2, ProductName: "No aisle", AisleID: 9, DepartmentID: 1},
			{ProductID: 3, ProductName: "No department", AisleID: 1, DepartmentID: 9},
		},
		AisleRows: []AisleRecord{
			{AisleID: 1, Aisle: "first"},
			{AisleID: 1, Aisle: "second"},
		},
		DepartmentRows: []DepartmentRecord{{DepartmentID: 1, Department: "pantry"}},
	}

	catalog, err := LoadCatalog(context.Background(), src, DefaultCatalogLimit)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog) != 1 || catalog[0].ProductName != "Kept" {
		t.Fatalf("catalog = %+v, want only Kept", catalog)
	}
	if catalog[0].Aisle != "first" {
		t.Errorf("Aisle = %q, want first", catalog[0].Aisle)
	}
}

func TestLoadCatalog_DataSourceError(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(s *StaticSource)
		wantTable string
	}{
		{name: "products", modify: func(s *StaticSource) { s.ProductsErr = errors.New("missing") }, wantTable: TableProducts},
		{name: "aisles", modify: func(s *StaticSource) { s.AislesErr = errors.New("missing") }, wantTable: TableAisles},
		{name: "departments", modify: func(s *StaticSource) { s.DepartmentsErr = errors.New("missing") }, wantTable: TableDepartments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := catalogSource(3)
			tt.modify(src)

			_, err := LoadCatalog(context.Background(), src, DefaultCatalogLimit)
			var dsErr *DataSourceError
			if !errors.As(err, &dsErr) {
				t.Fatalf("LoadCatalog() error = %v, want *DataSourceError", err)
			}
			if dsErr.Table != tt.wantTable {
				t.Errorf("Table = %q, want %q", dsErr.Table, tt.wantTable)
			}
		})
	}
}

func TestNameIndex_FirstOccurrenceWins(t *testing.T) {
	catalog := []Product{
		{ProductID: 1, ProductName: "Milk"},
		{ProductID: 2, ProductName: ""},
		{ProductID: 3, ProductName: "Milk"},
		{ProductID: 4, ProductName: "Eggs"},
	}

	idx := NameIndex(catalog)
	if idx["Milk"] != 0 {
		t.Errorf("NameIndex()[Milk] = %d, want 0", idx["Milk"])
	}
	if _, ok := idx[""]; ok {
		t.Error("NameIndex() indexed the empty name")
	}

	dups := DuplicateNames(catalog)
	if len(dups) != 1 || dups[0] != "Milk" {
		t.Errorf("DuplicateNames() = %v, want [Milk]", dups)
	}
}

func TestWrapSourceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantDS  bool
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "plain error", err: errors.New("boom"), wantDS: true},
		{name: "context cancellation", err: context.Canceled},
		{name: "already wrapped", err: NewDataSourceError(TableAisles, "/x", errors.New("boom")), wantDS: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapSourceError(TableProducts, tt.err)
			if (got == nil) != tt.wantNil {
				t.Fatalf("WrapSourceError() = %v, want nil %v", got, tt.wantNil)
			}
			if IsDataSourceError(got) != tt.wantDS {
				t.Errorf("IsDataSourceError() = %v, want %v", IsDataSourceError(got), tt.wantDS)
			}
		})
	}
}

func TestDataSourceError_Error(t *testing.T) {
	err := NewDataSourceError(TableAisles, "data/aisles.csv", errors.New("no such file"))
	want := "data source aisles (data/aisles.csv): no such file"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
