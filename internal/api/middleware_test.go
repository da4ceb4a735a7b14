// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/grocerec/internal/config"
	"github.com/tomtom215/grocerec/internal/logging"
	"github.com/tomtom215/grocerec/internal/recommend"
)

func TestRequestIDWithLogging(t *testing.T) {
	var seen, correlation string
	handler := RequestIDWithLogging()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
		correlation = logging.CorrelationIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"propagates client id", "client-id-1"},
		{"generates id", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("request id missing from logging context")
			}
			if tt.header != "" && seen != tt.header {
				t.Errorf("request id = %q, want %q", seen, tt.header)
			}
			if got := rec.Header().Get("X-Request-Id"); got != seen {
				t.Errorf("X-Request-Id header = %q, want %q", got, seen)
			}
			if correlation == "" {
				t.Error("correlation id missing from logging context")
			}
		})
	}
}

func TestRouter_RequestIDInEnvelope(t *testing.T) {
	s := newTestServer(t, storeFixture(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Request-Id", "trace-42")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	env := decodeEnvelope(t, rec, nil)
	if env.Meta == nil || env.Meta.RequestID != "trace-42" {
		t.Errorf("meta = %+v, want request_id trace-42", env.Meta)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	s := newTestServer(t, storeFixture(), nil)
	rec := s.do(t, http.MethodGet, "/api/v1/health", "")

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
		"Content-Type":           "application/json",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS over plain HTTP = %q, want empty", got)
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, storeFixture(), nil)

	rec := s.do(t, http.MethodGet, "/api/v2/nothing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if env := decodeEnvelope(t, rec, nil); env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want %s", env.Error, ErrCodeNotFound)
	}

	rec = s.do(t, http.MethodDelete, "/api/v1/products", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	s := newTestServer(t, storeFixture(), func(_ *recommend.Config, mw *ChiMiddlewareConfig) {
		mw.RateLimitDisabled = false
		mw.RateLimitRequests = 1
		mw.RateLimitWindow = time.Hour
	})

	if rec := s.do(t, http.MethodGet, "/api/v1/products", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", rec.Code, http.StatusOK)
	}
	rec := s.do(t, http.MethodGet, "/api/v1/products", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if env := decodeEnvelope(t, rec, nil); env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v, want %s", env.Error, ErrCodeTooManyRequests)
	}

	// Probes are not rate limited.
	if rec := s.do(t, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t, storeFixture(), func(_ *recommend.Config, mw *ChiMiddlewareConfig) {
		mw.CORSAllowedOrigins = []string{"https://shop.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations/collaborative", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t, storeFixture(), nil)
	s.do(t, http.MethodGet, "/api/v1/products", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output lacks api_requests_total")
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"https://a.example"},
		RateLimitReqs:     10,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled)
	}

	if got := ChiMiddlewareConfigFromSecurity(nil); got.RateLimitRequests != 100 {
		t.Errorf("nil security RateLimitRequests = %d, want default 100", got.RateLimitRequests)
	}
}
