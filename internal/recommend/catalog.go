// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"sort"
)

// DefaultCatalogLimit is the number of products exposed by the catalog.
const DefaultCatalogLimit = 1000

// LoadCatalog joins products with aisles and departments and returns the
// first limit rows ordered by product id. A limit <= 0 disables truncation.
//
// The joins are inner joins: products whose aisle or department id has no
// matching row are dropped. When an aisle or department id appears more than
// once, the first row wins.
func LoadCatalog(ctx context.Context, src DataSource, limit int) ([]Product, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, WrapSourceError(TableProducts, err)
	}
	aisles, err := src.Aisles(ctx)
	if err != nil {
		return nil, WrapSourceError(TableAisles, err)
	}
	departments, err := src.Departments(ctx)
	if err != nil {
		return nil, WrapSourceError(TableDepartments, err)
	}

	aisleByID := make(map[int]string, len(aisles))
	for _, a := range aisles {
		if _, ok := aisleByID[a.AisleID]; !ok {
			aisleByID[a.AisleID] = a.Aisle
		}
	}
	departmentByID := make(map[int]string, len(departments))
	for _, d := range departments {
		if _, ok := departmentByID[d.DepartmentID]; !ok {
			departmentByID[d.DepartmentID] = d.Department
		}
	}

	catalog := make([]Product, 0, len(products))
	for _, p := range products {
		aisle, ok := aisleByID[p.AisleID]
		if !ok {
			continue
		}
		department, ok := departmentByID[p.DepartmentID]
		if !ok {
			continue
		}
		catalog = append(catalog, Product{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			AisleID:      p.AisleID,
			DepartmentID: p.DepartmentID,
			Aisle:        aisle,
			Department:   department,
		})
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].ProductID < catalog[j].ProductID
	})

	if limit > 0 && len(catalog) > limit {
		catalog = catalog[:limit]
	}
	return catalog, nil
}

// NameIndex maps each product name to its position in catalog.
// Duplicate names resolve to the first occurrence, which for a loaded
// catalog is the lowest product id. Empty names are not indexed.
func NameIndex(catalog []Product) map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, p := range catalog {
		if p.ProductName == "" {
			continue
		}
		if _, ok := idx[p.ProductName]; !ok {
			idx[p.ProductName] = i
		}
	}
	return idx
}

// IDIndex maps each product id to its position in catalog.
func IDIndex(catalog []Product) map[int]int {
	idx := make(map[int]int, len(catalog))
	for i, p := range catalog {
		if _, ok := idx[p.ProductID]; !ok {
			idx[p.ProductID] = i
		}
	}
	return idx
}

// DuplicateNames returns the product names shared by more than one
// catalog entry, in catalog order.
func DuplicateNames(catalog []Product) []string {
	seen := make(map[string]int, len(catalog))
	var dups []string
	for _, p := range catalog {
		if p.ProductName == "" {
			continue
		}
		seen[p.ProductName]++
		if seen[p.ProductName] == 2 {
			dups = append(dups, p.ProductName)
		}
	}
	return dups
}
