// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100, 0, zerolog.Nop())
	for _, d := range []int64{10, 20, 30, 40, 50} {
		pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, DurationMS: d, StatusCode: http.StatusOK})
	}
	pm.Record(RequestSample{Route: "/b", Method: http.MethodPost, DurationMS: 5, StatusCode: http.StatusServiceUnavailable})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(Stats()) = %d, want 2", len(stats))
	}

	a := stats[0]
	if a.Endpoint != "GET /a" {
		t.Errorf("busiest endpoint = %q, want %q", a.Endpoint, "GET /a")
	}
	if a.RequestCount != 5 {
		t.Errorf("RequestCount = %d, want 5", a.RequestCount)
	}
	if a.AvgDuration != 30 {
		t.Errorf("AvgDuration = %v, want 30", a.AvgDuration)
	}
	if a.P50Duration != 30 || a.MinDuration != 10 || a.MaxDuration != 50 {
		t.Errorf("p50/min/max = %d/%d/%d, want 30/10/50", a.P50Duration, a.MinDuration, a.MaxDuration)
	}

	if stats[1].ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_WindowEvictsOldest(t *testing.T) {
	pm := NewPerformanceMonitor(3, 0, zerolog.Nop())
	for i := int64(1); i <= 5; i++ {
		pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, DurationMS: i})
	}

	recent := pm.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("len(Recent(10)) = %d, want 3", len(recent))
	}
	for i, want := range []int64{3, 4, 5} {
		if recent[i].DurationMS != want {
			t.Errorf("recent[%d].DurationMS = %d, want %d", i, recent[i].DurationMS, want)
		}
	}

	if got := pm.Recent(1); len(got) != 1 || got[0].DurationMS != 5 {
		t.Errorf("Recent(1) = %+v, want the newest sample", got)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	var buf bytes.Buffer
	pm := NewPerformanceMonitor(10, time.Nanosecond, zerolog.New(&buf))

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/slow/{id}", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow/7", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 {
		t.Fatalf("len(Recent(1)) = %d, want 1", len(recent))
	}
	if recent[0].Route != "/slow/{id}" {
		t.Errorf("Route = %q, want %q", recent[0].Route, "/slow/{id}")
	}
	if recent[0].StatusCode != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want %d", recent[0].StatusCode, http.StatusAccepted)
	}
	if !strings.Contains(buf.String(), "Slow request detected") {
		t.Errorf("log = %q, want slow request warning", buf.String())
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []int64
		p      float64
		want   int64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []int64{7}, 0.99, 7},
		{"median", []int64{1, 2, 3, 4, 5}, 0.5, 3},
		{"p99 floors", []int64{1, 2, 3, 4, 5}, 0.99, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("percentile() = %d, want %d", got, tt.want)
			}
		})
	}
}
