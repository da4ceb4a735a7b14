// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*RefreshService)(nil)

// scriptedRefresher returns the scripted results in order, then false.
type scriptedRefresher struct {
	mu      sync.Mutex
	results []error
	changed []bool
	calls   atomic.Int32
}

func (s *scriptedRefresher) Refresh(ctx context.Context) (bool, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return false, ctx.Err()
	}
	err, changed := s.results[0], s.changed[0]
	s.results, s.changed = s.results[1:], s.changed[1:]
	return changed, err
}

// syncBuffer is a bytes.Buffer safe for the service goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewRefreshService_DefaultInterval(t *testing.T) {
	svc := NewRefreshService(&scriptedRefresher{}, 0, zerolog.Nop())
	if svc.interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", svc.interval)
	}
	if svc.String() != "cache-refresh" {
		t.Errorf("String() = %q, want cache-refresh", svc.String())
	}
}

func TestRefreshService_PollsAndLogs(t *testing.T) {
	r := &scriptedRefresher{
		results: []error{nil, errors.New("stat products.csv: no such file"), nil},
		changed: []bool{false, false, true},
	}
	var out syncBuffer
	svc := NewRefreshService(r, 10*time.Millisecond, zerolog.New(&out))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("Refresh calls = %d, want >= 4", r.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}

	logs := out.String()
	for _, want := range []string{"data version check failed", "cached recommendations invalidated", `"correlation_id"`} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}
