// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/logging"
)

// Refresher checks the data source for changes and drops stale cached
// results. *recommend.Engine satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// RefreshService polls a Refresher on a fixed interval so that edits to
// the source files invalidate memoized recommendations promptly, instead
// of only at the next request or at TTL expiry.
type RefreshService struct {
	refresher Refresher
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewRefreshService creates a refresh loop. A non-positive interval
// becomes 30s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(r Refresher, interval time.Duration, logger zerolog.Logger) *RefreshService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &RefreshService{
		refresher: r,
		interval:  interval,
		logger:    logger.With().Str("service", "refresh").Logger(),
		name:      "cache-refresh",
	}
}

// Serve implements suture.Service. It checks once at startup and then on
// every tick. Check failures are logged and the loop continues; the source
// may be mid-rewrite.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache refresh service starting")

	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *RefreshService) check(ctx context.Context) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := s.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()

	checkCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	changed, err := s.refresher.Refresh(checkCtx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn().Err(err).Msg("data version check failed")
		}
		return
	}
	if changed {
		logger.Info().Msg("cached recommendations invalidated")
	} else {
		logger.Debug().Msg("source data unchanged")
	}
}

// String names the service in supervisor logs.
func (s *RefreshService) String() string {
	return s.name
}
