// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/metrics"
	"github.com/tomtom215/grocerec/internal/recommend"
)

// DuckDBSource reads the source CSV files through an in-memory DuckDB
// database using read_csv_auto. Queries run against the files on every
// call; nothing is imported.
type DuckDBSource struct {
	config SourceConfig
	conn   *sql.DB
	logger zerolog.Logger
}

// NewDuckDBSource opens an in-memory DuckDB connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDuckDBSource(cfg SourceConfig, logger zerolog.Logger) (*DuckDBSource, error) {
	// Extension autoloading can hang without network access; CSV support is built in.
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return &DuckDBSource{
		config: cfg,
		conn:   conn,
		logger: logger.With().Str("component", "duckdb_source").Logger(),
	}, nil
}

// Close releases the database connection.
func (s *DuckDBSource) Close() error {
	return s.conn.Close()
}

// Ping checks that the database connection is usable.
func (s *DuckDBSource) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Products implements recommend.DataSource.
func (s *DuckDBSource) Products(ctx context.Context) ([]recommend.ProductRecord, error) {
	var out []recommend.ProductRecord
	err := s.query(ctx, recommend.TableProducts,
		`SELECT CAST(product_id AS BIGINT), CAST(product_name AS VARCHAR),
		        CAST(aisle_id AS BIGINT), CAST(department_id AS BIGINT)
		   FROM %s`, 0,
		func(rows *sql.Rows) error {
			var p recommend.ProductRecord
			var name sql.NullString
			if err := rows.Scan(&p.ProductID, &name, &p.AisleID, &p.DepartmentID); err != nil {
				return err
			}
			p.ProductName = strings.TrimSpace(name.String)
			out = append(out, p)
			return nil
		})
	return out, err
}

// Aisles implements recommend.DataSource.
func (s *DuckDBSource) Aisles(ctx context.Context) ([]recommend.AisleRecord, error) {
	var out []recommend.AisleRecord
	err := s.query(ctx, recommend.TableAisles,
		`SELECT CAST(aisle_id AS BIGINT), CAST(aisle AS VARCHAR) FROM %s`, 0,
		func(rows *sql.Rows) error {
			var a recommend.AisleRecord
			var name sql.NullString
			if err := rows.Scan(&a.AisleID, &name); err != nil {
				return err
			}
			a.Aisle = strings.TrimSpace(name.String)
			out = append(out, a)
			return nil
		})
	return out, err
}

// Departments implements recommend.DataSource.
func (s *DuckDBSource) Departments(ctx context.Context) ([]recommend.DepartmentRecord, error) {
	var out []recommend.DepartmentRecord
	err := s.query(ctx, recommend.TableDepartments,
		`SELECT CAST(department_id AS BIGINT), CAST(department AS VARCHAR) FROM %s`, 0,
		func(rows *sql.Rows) error {
			var d recommend.DepartmentRecord
			var name sql.NullString
			if err := rows.Scan(&d.DepartmentID, &name); err != nil {
				return err
			}
			d.Department = strings.TrimSpace(name.String)
			out = append(out, d)
			return nil
		})
	return out, err
}

// OrderLines implements recommend.DataSource.
func (s *DuckDBSource) OrderLines(ctx context.Context) ([]recommend.OrderLine, error) {
	var out []recommend.OrderLine
	err := s.query(ctx, recommend.TableOrderLines,
		`SELECT CAST(order_id AS BIGINT), CAST(product_id AS BIGINT),
		        CAST(add_to_cart_order AS BIGINT)
		   FROM %s`, s.config.MaxOrderLines,
		func(rows *sql.Rows) error {
			var l recommend.OrderLine
			if err := rows.Scan(&l.OrderID, &l.ProductID, &l.AddToCartOrder); err != nil {
				return err
			}
			out = append(out, l)
			return nil
		})
	return out, err
}

// Version implements recommend.Versioner.
func (s *DuckDBSource) Version(ctx context.Context) (string, error) {
	return Fingerprint(ctx, s.config.Paths)
}

// csvRelation returns a read_csv_auto table function call for path.
func csvRelation(path string) string {
	return fmt.Sprintf("read_csv_auto('%s', header = true)", strings.ReplaceAll(path, "'", "''"))
}

// query runs a SELECT whose %s placeholder is replaced by the table's CSV
// relation. A positive limit appends a LIMIT clause.
func (s *DuckDBSource) query(ctx context.Context, table, format string, limit int, scan func(*sql.Rows) error) error {
	path := s.config.Paths.Path(table)
	start := time.Now()
	n, err := s.queryRows(ctx, path, format, limit, scan)
	metrics.RecordDataSourceRead(table, n, time.Since(start), err)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.logger.Error().Err(err).Str("table", table).Str("path", path).Msg("Failed to query table")
		return recommend.NewDataSourceError(table, path, err)
	}

	s.logger.Debug().
		Str("table", table).
		Int("rows", n).
		Dur("duration", time.Since(start)).
		Msg("Queried table")
	return nil
}

func (s *DuckDBSource) queryRows(ctx context.Context, path, format string, limit int, scan func(*sql.Rows) error) (int, error) {
	q := fmt.Sprintf(format, csvRelation(path))
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.conn.QueryContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}
