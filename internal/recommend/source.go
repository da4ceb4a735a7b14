// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"fmt"
)

// StaticSource is an in-memory DataSource. It serves fixtures in tests and
// snapshots taken from another source.
type StaticSource struct {
	ProductRows    []ProductRecord
	AisleRows      []AisleRecord
	DepartmentRows []DepartmentRecord
	OrderLineRows  []OrderLine

	// Per-table failures, returned as DataSourceErrors when set.
	ProductsErr    error
	AislesErr      error
	DepartmentsErr error
	OrderLinesErr  error

	// Revision is reported by Version.
	Revision int
}

// Products implements DataSource.
func (s *StaticSource) Products(ctx context.Context) ([]ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.ProductsErr != nil {
		return nil, NewDataSourceError(TableProducts, "", s.ProductsErr)
	}
	return append([]ProductRecord(nil), s.ProductRows...), nil
}

// Aisles implements DataSource.
func (s *StaticSource) Aisles(ctx context.Context) ([]AisleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.AislesErr != nil {
		return nil, NewDataSourceError(TableAisles, "", s.AislesErr)
	}
	return append([]AisleRecord(nil), s.AisleRows...), nil
}

// Departments implements DataSource.
func (s *StaticSource) Departments(ctx context.Context) ([]DepartmentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.DepartmentsErr != nil {
		return nil, NewDataSourceError(TableDepartments, "", s.DepartmentsErr)
	}
	return append([]DepartmentRecord(nil), s.DepartmentRows...), nil
}

// OrderLines implements DataSource.
func (s *StaticSource) OrderLines(ctx context.Context) ([]OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.OrderLinesErr != nil {
		return nil, NewDataSourceError(TableOrderLines, "", s.OrderLinesErr)
	}
	return append([]OrderLine(nil), s.OrderLineRows...), nil
}

// Version implements Versioner.
func (s *StaticSource) Version(_ context.Context) (string, error) {
	return fmt.Sprintf("static-%d", s.Revision), nil
}
