// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package algorithms

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// groceryFixture returns a small store. After the inner joins the catalog
// holds products 1-8; product 9 has no aisle.
//
// Orders 100 and 101 contain Banana and Apple, order 102 Carrot and Onion,
// order 103 only Cola. The interaction matrix rows are Apple, Banana,
// Carrot, Cola, Onion.
func groceryFixture() *recommend.StaticSource {
	return &recommend.StaticSource{
		ProductRows: []recommend.ProductRecord{
			{ProductID: 8, ProductName: "Cola", AisleID: 4, DepartmentID: 3},
			{ProductID: 1, ProductName: "Banana", AisleID: 1, DepartmentID: 1},
			{ProductID: 2, ProductName: "Apple", AisleID: 1, DepartmentID: 1},
			{ProductID: 3, ProductName: "Pear", AisleID: 1, DepartmentID: 1},
			{ProductID: 4, ProductName: "Carrot", AisleID: 2, DepartmentID: 1},
			{ProductID: 5, ProductName: "Onion", AisleID: 2, DepartmentID: 1},
			{ProductID: 6, ProductName: "Greek Yogurt", AisleID: 3, DepartmentID: 2},
			{ProductID: 7, ProductName: "Vanilla Yogurt", AisleID: 3, DepartmentID: 2},
			{ProductID: 9, ProductName: "Orphan", AisleID: 99, DepartmentID: 1},
		},
		AisleRows: []recommend.AisleRecord{
			{AisleID: 1, Aisle: "fresh fruits"},
			{AisleID: 2, Aisle: "fresh vegetables"},
			{AisleID: 3, Aisle: "yogurt"},
			{AisleID: 4, Aisle: "soft drinks"},
		},
		DepartmentRows: []recommend.DepartmentRecord{
			{DepartmentID: 1, Department: "produce"},
			{DepartmentID: 2, Department: "dairy eggs"},
			{DepartmentID: 3, Department: "beverages"},
		},
		OrderLineRows: []recommend.OrderLine{
			{OrderID: 100, ProductID: 1, AddToCartOrder: 1},
			{OrderID: 100, ProductID: 2, AddToCartOrder: 2},
			{OrderID: 101, ProductID: 1, AddToCartOrder: 1},
			{OrderID: 101, ProductID: 2, AddToCartOrder: 2},
			{OrderID: 102, ProductID: 4, AddToCartOrder: 1},
			{OrderID: 102, ProductID: 5, AddToCartOrder: 2},
			{OrderID: 103, ProductID: 8, AddToCartOrder: 1},
		},
	}
}

func testConfig() *recommend.Config {
	return recommend.DefaultConfig()
}

func productNames(products []recommend.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.ProductName
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var nopLogger = zerolog.Nop()
