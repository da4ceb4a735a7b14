// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/cache"
	"github.com/tomtom215/grocerec/internal/metrics"
)

// Engine routes recommendation requests to registered strategies over a
// single data source. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	source DataSource

	strategies map[string]Strategy
	strategyMu sync.RWMutex

	// memo is nil when caching is disabled.
	memo *cache.Memo

	requestCount atomic.Int64
	refreshCount atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// result is the memoized part of a response.
type result struct {
	Query *Product
	Items []Product
}

// memoKey identifies a request in the memoization cache.
type memoKey struct {
	ProductID   int  `json:"product_id"`
	ExcludeSelf bool `json:"exclude_self"`
}

// NewEngine creates a new recommendation engine reading from src.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, src DataSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if src == nil {
		return nil, errors.New("data source is required")
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		source:     src,
		strategies: make(map[string]Strategy),
	}
	if cfg.Cache.Enabled {
		e.memo = cache.NewMemo(cfg.Cache.TTL)
	}
	return e, nil
}

// RegisterStrategy adds a strategy, replacing any with the same name.
func (e *Engine) RegisterStrategy(s Strategy) {
	e.strategyMu.Lock()
	defer e.strategyMu.Unlock()

	e.strategies[s.Name()] = s
	e.logger.Info().
		Str("strategy", s.Name()).
		Msg("registered strategy")
}

// Strategies returns the registered strategy names in sorted order.
func (e *Engine) Strategies() []string {
	e.strategyMu.RLock()
	defer e.strategyMu.RUnlock()

	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Strategy returns the registered strategy with the given name.
func (e *Engine) Strategy(name string) (Strategy, error) {
	e.strategyMu.RLock()
	defer e.strategyMu.RUnlock()

	s, ok := e.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Recommend runs the requested strategy for the selected product.
//
// A Refresh request returns an empty list without invoking any strategy.
// ErrProductNotFound and ErrIndexOutOfRange mean no recommendation is
// available; a *DataSourceError means the request failed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("strategy", req.Strategy).
		Int("product_id", req.ProductID).
		Logger()

	if req.Refresh {
		e.refreshCount.Add(1)
		label := req.Strategy
		if _, err := e.Strategy(label); err != nil {
			label = "unknown"
		}
		metrics.RecordRecommendation(label, metrics.OutcomeRefresh, 0, 0)
		logger.Debug().Msg("refresh requested, returning empty recommendation")
		return &Response{
			Strategy: req.Strategy,
			Items:    []Product{},
			Metadata: ResponseMetadata{
				RequestID:   req.RequestID,
				Refreshed:   true,
				GeneratedAt: time.Now(),
			},
		}, nil
	}

	strategy, err := e.Strategy(req.Strategy)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	res, version, hit, err := e.compute(ctx, strategy, req)
	latency := time.Since(start)
	if err != nil {
		outcome := outcomeOf(err)
		metrics.RecordRecommendation(strategy.Name(), outcome, latency, 0)
		if outcome == metrics.OutcomeNoRecommendation {
			logger.Debug().Err(err).Msg("no recommendation available")
		} else {
			e.errorCount.Add(1)
			logger.Error().Err(err).Msg("recommendation failed")
		}
		return nil, err
	}

	items := make([]Product, len(res.Items))
	copy(items, res.Items)
	resp := &Response{
		Strategy: strategy.Name(),
		Items:    items,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			DataVersion: version,
			CacheHit:    hit,
			LatencyMS:   latency.Milliseconds(),
			GeneratedAt: time.Now(),
		},
	}
	if res.Query != nil {
		q := *res.Query
		resp.Query = &q
	}

	metrics.RecordRecommendation(strategy.Name(), metrics.OutcomeSuccess, latency, len(items))
	logger.Debug().
		Int("returned", len(items)).
		Bool("cache_hit", hit).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// compute runs the strategy, going through the memoization layer when it
// is enabled and the data version can be determined.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) compute(ctx context.Context, s Strategy, req Request) (*result, string, bool, error) {
	if e.memo == nil {
		res, err := e.run(ctx, s, req)
		return res, "", false, err
	}

	version, err := e.DataVersion(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("data version unavailable, bypassing cache")
		res, err := e.run(ctx, s, req)
		return res, "", false, err
	}

	key := cache.GenerateKey("recommend:"+s.Name(), memoKey{
		ProductID:   req.ProductID,
		ExcludeSelf: req.ExcludeSelf,
	})
	v, hit, err := e.memo.Do(key, version, func() (interface{}, error) {
		return e.run(ctx, s, req)
	})
	if err != nil {
		return nil, version, false, err
	}

	metrics.RecordCacheLookup(hit)
	if hit {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	return v.(*result), version, hit, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) run(ctx context.Context, s Strategy, req Request) (*result, error) {
	q, product, err := s.Resolve(ctx, e.source, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve product %d: %w", req.ProductID, err)
	}
	q.ExcludeSelf = req.ExcludeSelf

	items, err := s.Recommend(ctx, e.source, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	res := &result{Items: items}
	if product.ProductID != 0 {
		res.Query = &product
	}
	return res, nil
}

// Candidates lists the products selectable for the named strategy.
func (e *Engine) Candidates(ctx context.Context, strategy string) ([]Product, error) {
	s, err := e.Strategy(strategy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	return s.Candidates(ctx, e.source)
}

// Catalog returns the bounded, ordered product catalog.
func (e *Engine) Catalog(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	return LoadCatalog(ctx, e.source, e.config.Dataset.CatalogLimit)
}

// CatalogReport summarizes the catalog for startup checks and health.
type CatalogReport struct {
	Products       int      `json:"products"`
	DuplicateNames []string `json:"duplicate_names,omitempty"`
	DataVersion    string   `json:"data_version,omitempty"`
}

// Inspect loads the catalog once and reports its size and any product
// names shared by several product ids. Name-keyed joins resolve such names
// to the lowest product id.
func (e *Engine) Inspect(ctx context.Context) (*CatalogReport, error) {
	catalog, err := e.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	report := &CatalogReport{
		Products:       len(catalog),
		DuplicateNames: DuplicateNames(catalog),
	}
	if version, err := e.DataVersion(ctx); err == nil {
		report.DataVersion = version
	}

	if len(report.DuplicateNames) > 0 {
		e.logger.Warn().
			Strs("names", report.DuplicateNames).
			Msg("duplicate product names in catalog; name lookups resolve to the lowest product id")
	}
	return report, nil
}

// DataVersion returns the source fingerprint, or "" when the source cannot
// fingerprint itself.
func (e *Engine) DataVersion(ctx context.Context) (string, error) {
	v, ok := e.source.(Versioner)
	if !ok {
		return "", nil
	}
	return v.Version(ctx)
}

// Refresh checks the source fingerprint and drops memoized results when it
// changed. It reports whether an invalidation happened.
func (e *Engine) Refresh(ctx context.Context) (bool, error) {
	if e.memo == nil {
		return false, nil
	}

	version, err := e.DataVersion(ctx)
	if err != nil {
		return false, fmt.Errorf("data version: %w", err)
	}

	changed := e.memo.Observe(version)
	if changed {
		metrics.RecordCacheInvalidation()
		e.logger.Info().
			Str("data_version", version).
			Msg("source data changed, cache invalidated")
	}
	return changed, nil
}

// CacheEnabled reports whether responses are memoized.
func (e *Engine) CacheEnabled() bool {
	return e.memo != nil
}

// GetMetrics returns a snapshot of engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		Requests:    e.requestCount.Load(),
		Refreshes:   e.refreshCount.Load(),
		Errors:      e.errorCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
	if e.memo != nil {
		m.CacheEntries = e.memo.Len()
		m.CacheHitRate = e.memo.HitRate()
	}
	return m
}

// Close releases cache resources.
func (e *Engine) Close() {
	if e.memo != nil {
		e.memo.Close()
	}
}

func outcomeOf(err error) string {
	switch {
	case IsNoRecommendation(err):
		return metrics.OutcomeNoRecommendation
	case IsDataSourceError(err):
		return metrics.OutcomeDataSourceError
	default:
		return metrics.OutcomeError
	}
}
