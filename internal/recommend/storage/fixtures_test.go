// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	productsCSV = `product_id,product_name,aisle_id,department_id
1,Chocolate Sandwich Cookies,61,19
2,"Organic Apples, Gala",24,4
3,,24,4
`
	aislesCSV = `aisle_id,aisle
24,fresh fruits
61,cookies cakes
`
	departmentsCSV = `department_id,department
4,produce
19,snacks
`
	orderLinesCSV = `order_id,product_id,add_to_cart_order,reordered
1,1,1,1
1,2,2,0
2,2,1,1
`
)

// writeDataDir writes the four fixture tables into a temp dir. files
// overrides individual file contents by file name.
func writeDataDir(t *testing.T, files map[string]string) DataPaths {
	t.Helper()
	dir := t.TempDir()
	contents := map[string]string{
		ProductsFile:    productsCSV,
		AislesFile:      aislesCSV,
		DepartmentsFile: departmentsCSV,
		OrderLinesFile:  orderLinesCSV,
	}
	for name, body := range files {
		contents[name] = body
	}
	for name, body := range contents {
		if body == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return DataPathsFromDir(dir)
}
