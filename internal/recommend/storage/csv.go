// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/metrics"
	"github.com/tomtom215/grocerec/internal/recommend"
)

// rowCheckInterval is how many rows are read between context checks.
const rowCheckInterval = 4096

// SourceConfig configures a file-backed data source.
type SourceConfig struct {
	Paths DataPaths

	// MaxOrderLines stops reading the raw order lines table after this many
	// rows, before any join. Zero reads the whole table.
	MaxOrderLines int
}

// CSVSource reads the source tables from CSV files with a header row.
// Every call re-reads the file, so edits are picked up immediately.
type CSVSource struct {
	config SourceConfig
	logger zerolog.Logger
}

// NewCSVSource creates a CSV-backed data source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCSVSource(cfg SourceConfig, logger zerolog.Logger) *CSVSource {
	return &CSVSource{
		config: cfg,
		logger: logger.With().Str("component", "csv_source").Logger(),
	}
}

// Products implements recommend.DataSource.
func (s *CSVSource) Products(ctx context.Context) ([]recommend.ProductRecord, error) {
	var out []recommend.ProductRecord
	err := s.read(ctx, recommend.TableProducts, 0,
		[]string{"product_id", "product_name", "aisle_id", "department_id"},
		func(r row) error {
			id, err := r.integer("product_id")
			if err != nil {
				return err
			}
			aisle, err := r.integer("aisle_id")
			if err != nil {
				return err
			}
			dept, err := r.integer("department_id")
			if err != nil {
				return err
			}
			out = append(out, recommend.ProductRecord{
				ProductID:    id,
				ProductName:  r.text("product_name"),
				AisleID:      aisle,
				DepartmentID: dept,
			})
			return nil
		})
	return out, err
}

// Aisles implements recommend.DataSource.
func (s *CSVSource) Aisles(ctx context.Context) ([]recommend.AisleRecord, error) {
	var out []recommend.AisleRecord
	err := s.read(ctx, recommend.TableAisles, 0,
		[]string{"aisle_id", "aisle"},
		func(r row) error {
			id, err := r.integer("aisle_id")
			if err != nil {
				return err
			}
			out = append(out, recommend.AisleRecord{AisleID: id, Aisle: r.text("aisle")})
			return nil
		})
	return out, err
}

// Departments implements recommend.DataSource.
func (s *CSVSource) Departments(ctx context.Context) ([]recommend.DepartmentRecord, error) {
	var out []recommend.DepartmentRecord
	err := s.read(ctx, recommend.TableDepartments, 0,
		[]string{"department_id", "department"},
		func(r row) error {
			id, err := r.integer("department_id")
			if err != nil {
				return err
			}
			out = append(out, recommend.DepartmentRecord{DepartmentID: id, Department: r.text("department")})
			return nil
		})
	return out, err
}

// OrderLines implements recommend.DataSource.
func (s *CSVSource) OrderLines(ctx context.Context) ([]recommend.OrderLine, error) {
	var out []recommend.OrderLine
	err := s.read(ctx, recommend.TableOrderLines, s.config.MaxOrderLines,
		[]string{"order_id", "product_id", "add_to_cart_order"},
		func(r row) error {
			order, err := r.integer("order_id")
			if err != nil {
				return err
			}
			product, err := r.integer("product_id")
			if err != nil {
				return err
			}
			pos, err := r.integer("add_to_cart_order")
			if err != nil {
				return err
			}
			out = append(out, recommend.OrderLine{OrderID: order, ProductID: product, AddToCartOrder: pos})
			return nil
		})
	return out, err
}

// Version implements recommend.Versioner.
func (s *CSVSource) Version(ctx context.Context) (string, error) {
	return Fingerprint(ctx, s.config.Paths)
}

// row is one CSV record with header-based column lookup.
type row struct {
	fields  []string
	columns map[string]int
	line    int
}

func (r row) text(column string) string {
	return strings.TrimSpace(r.fields[r.columns[column]])
}

func (r row) integer(column string) (int, error) {
	v := r.text(column)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: invalid integer %q", r.line, column, v)
	}
	return n, nil
}

// read streams a table through fn. Errors other than context errors are
// returned as DataSourceErrors carrying the table and path.
func (s *CSVSource) read(ctx context.Context, table string, limit int, required []string, fn func(row) error) error {
	path := s.config.Paths.Path(table)
	start := time.Now()
	rows, err := s.readFile(ctx, path, limit, required, fn)
	metrics.RecordDataSourceRead(table, rows, time.Since(start), err)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.logger.Error().Err(err).Str("table", table).Str("path", path).Msg("Failed to read table")
		return recommend.NewDataSourceError(table, path, err)
	}

	s.logger.Debug().
		Str("table", table).
		Int("rows", rows).
		Dur("duration", time.Since(start)).
		Msg("Read table")
	return nil
}

func (s *CSVSource) readFile(ctx context.Context, path string, limit int, required []string, fn func(row) error) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errors.New("empty file, header row expected")
		}
		return 0, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	width := 0
	for _, name := range required {
		i, ok := columns[name]
		if !ok {
			return 0, fmt.Errorf("missing column %q", name)
		}
		if i+1 > width {
			width = i + 1
		}
	}

	rows := 0
	for line := 2; limit <= 0 || rows < limit; line++ {
		if rows%rowCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, err
		}
		if len(record) < width {
			return rows, fmt.Errorf("line %d: expected at least %d fields, got %d", line, width, len(record))
		}
		if err := fn(row{fields: record, columns: columns, line: line}); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, nil
}
