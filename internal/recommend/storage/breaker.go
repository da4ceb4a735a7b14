// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/grocerec/internal/metrics"
	"github.com/tomtom215/grocerec/internal/recommend"
)

// BreakerConfig configures the circuit breaker around a data source.
type BreakerConfig struct {
	// Name labels logs and metrics.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before a trial.
	Timeout time.Duration

	// MinRequests is the number of requests needed before tripping.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64
}

// DefaultBreakerConfig returns the breaker settings used for file sources.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerSource guards a DataSource with a circuit breaker. Once the
// failure ratio trips, reads fail fast with a DataSourceError until the
// timeout elapses. Context cancellation does not count as a failure.
type BreakerSource struct {
	source recommend.DataSource
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger zerolog.Logger
}

// NewBreakerSource wraps src.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerSource(src recommend.DataSource, cfg BreakerConfig, logger zerolog.Logger) *BreakerSource {
	b := &BreakerSource{
		source: src,
		name:   cfg.Name,
		logger: logger.With().Str("component", "circuit_breaker").Str("breaker", cfg.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip {
				b.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening circuit")
			}
			return trip
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Info().
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})
	return b
}

// State returns the current breaker state name.
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

// Products implements recommend.DataSource.
func (b *BreakerSource) Products(ctx context.Context) ([]recommend.ProductRecord, error) {
	return execute(b, recommend.TableProducts, func() ([]recommend.ProductRecord, error) {
		return b.source.Products(ctx)
	})
}

// Aisles implements recommend.DataSource.
func (b *BreakerSource) Aisles(ctx context.Context) ([]recommend.AisleRecord, error) {
	return execute(b, recommend.TableAisles, func() ([]recommend.AisleRecord, error) {
		return b.source.Aisles(ctx)
	})
}

// Departments implements recommend.DataSource.
func (b *BreakerSource) Departments(ctx context.Context) ([]recommend.DepartmentRecord, error) {
	return execute(b, recommend.TableDepartments, func() ([]recommend.DepartmentRecord, error) {
		return b.source.Departments(ctx)
	})
}

// OrderLines implements recommend.DataSource.
func (b *BreakerSource) OrderLines(ctx context.Context) ([]recommend.OrderLine, error) {
	return execute(b, recommend.TableOrderLines, func() ([]recommend.OrderLine, error) {
		return b.source.OrderLines(ctx)
	})
}

// Version implements recommend.Versioner when the wrapped source does.
// Fingerprinting bypasses the breaker.
func (b *BreakerSource) Version(ctx context.Context) (string, error) {
	v, ok := b.source.(recommend.Versioner)
	if !ok {
		return "", nil
	}
	return v.Version(ctx)
}

// execute runs fn through the breaker. Rejections are reported as
// DataSourceErrors for table.
func execute[T any](b *BreakerSource, table string, fn func() ([]T, error)) ([]T, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Warn().Err(err).Str("table", table).Msg("Read rejected")
			return nil, recommend.NewDataSourceError(table, "", fmt.Errorf("circuit breaker %s: %w", b.name, err))
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	rows, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return rows, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
