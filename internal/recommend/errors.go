// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a collaborative query row is
	// outside the current interaction matrix.
	ErrIndexOutOfRange = errors.New("query index out of range")

	// ErrProductNotFound is returned when a query product is absent from
	// the catalog, or a name-keyed join misses.
	ErrProductNotFound = errors.New("product not found")

	// ErrUnknownStrategy is returned for an unregistered strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// DataSourceError reports a missing, unreadable or malformed source table.
// It is fatal for the request that hit it.
type DataSourceError struct {
	Table string
	Path  string
	Err   error
}

// NewDataSourceError wraps err as a DataSourceError for the given table.
func NewDataSourceError(table, path string, err error) *DataSourceError {
	return &DataSourceError{Table: table, Path: path, Err: err}
}

func (e *DataSourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("data source %s (%s): %v", e.Table, e.Path, e.Err)
	}
	return fmt.Sprintf("data source %s: %v", e.Table, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsDataSourceError reports whether err is or wraps a *DataSourceError.
func IsDataSourceError(err error) bool {
	var dsErr *DataSourceError
	return errors.As(err, &dsErr)
}

// IsNoRecommendation reports whether err means "no recommendation
// available" rather than a failed request.
func IsNoRecommendation(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange) || errors.Is(err, ErrProductNotFound)
}

// WrapSourceError returns err as a DataSourceError for table. Existing
// DataSourceErrors and context errors are returned unchanged.
func WrapSourceError(table string, err error) error {
	if err == nil || IsDataSourceError(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return NewDataSourceError(table, "", err)
}
