// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package storage

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomtom215/grocerec/internal/recommend"
)

// Default file names inside a data directory.
const (
	ProductsFile    = "products.csv"
	AislesFile      = "aisles.csv"
	DepartmentsFile = "departments.csv"
	OrderLinesFile  = "order_products__train.csv"
)

// DataPaths locates the four source tables.
type DataPaths struct {
	Products    string `json:"products" validate:"required"`
	Aisles      string `json:"aisles" validate:"required"`
	Departments string `json:"departments" validate:"required"`
	OrderLines  string `json:"order_lines" validate:"required"`
}

// DataPathsFromDir returns the default file layout under dir.
func DataPathsFromDir(dir string) DataPaths {
	return DataPaths{
		Products:    filepath.Join(dir, ProductsFile),
		Aisles:      filepath.Join(dir, AislesFile),
		Departments: filepath.Join(dir, DepartmentsFile),
		OrderLines:  filepath.Join(dir, OrderLinesFile),
	}
}

// Path returns the file of a table.
func (p DataPaths) Path(table string) string {
	switch table {
	case recommend.TableProducts:
		return p.Products
	case recommend.TableAisles:
		return p.Aisles
	case recommend.TableDepartments:
		return p.Departments
	case recommend.TableOrderLines:
		return p.OrderLines
	default:
		return ""
	}
}

// tables lists the tables in a fixed order for fingerprinting.
var tables = []string{
	recommend.TableProducts,
	recommend.TableAisles,
	recommend.TableDepartments,
	recommend.TableOrderLines,
}

// Fingerprint hashes the size and modification time of every table file.
// Any rewrite of a file changes the result. A missing file is reported as
// a DataSourceError.
func Fingerprint(ctx context.Context, paths DataPaths) (string, error) {
	h := sha256.New()
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := paths.Path(table)
		info, err := os.Stat(path)
		if err != nil {
			return "", recommend.NewDataSourceError(table, path, err)
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\x00", table, info.Size(), info.ModTime().UnixNano())
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:12]), nil
}
