// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/middleware"
	"github.com/tomtom215/grocerec/internal/recommend"
	"github.com/tomtom215/grocerec/internal/recommend/algorithms"
)

// storeFixture is a small store. The collaborative candidates are Apple,
// Banana, Carrot, Cola and Onion; Pear is in the catalog but never ordered.
func storeFixture() *recommend.StaticSource {
	return &recommend.StaticSource{
		ProductRows: []recommend.ProductRecord{
			{ProductID: 8, ProductName: "Cola", AisleID: 4, DepartmentID: 3},
			{ProductID: 1, ProductName: "Banana", AisleID: 1, DepartmentID: 1},
			{ProductID: 2, ProductName: "Apple", AisleID: 1, DepartmentID: 1},
			{ProductID: 3, ProductName: "Pear", AisleID: 1, DepartmentID: 1},
			{ProductID: 4, ProductName: "Carrot", AisleID: 2, DepartmentID: 1},
			{ProductID: 5, ProductName: "Onion", AisleID: 2, DepartmentID: 1},
			{ProductID: 6, ProductName: "Greek Yogurt", AisleID: 3, DepartmentID: 2},
			{ProductID: 7, ProductName: "Vanilla Yogurt", AisleID: 3, DepartmentID: 2},
		},
		AisleRows: []recommend.AisleRecord{
			{AisleID: 1, Aisle: "fresh fruits"},
			{AisleID: 2, Aisle: "fresh vegetables"},
			{AisleID: 3, Aisle: "yogurt"},
			{AisleID: 4, Aisle: "soft drinks"},
		},
		DepartmentRows: []recommend.DepartmentRecord{
			{DepartmentID: 1, Department: "produce"},
			{DepartmentID: 2, Department: "dairy eggs"},
			{DepartmentID: 3, Department: "beverages"},
		},
		OrderLineRows: []recommend.OrderLine{
			{OrderID: 100, ProductID: 1, AddToCartOrder: 1},
			{OrderID: 100, ProductID: 2, AddToCartOrder: 2},
			{OrderID: 101, ProductID: 1, AddToCartOrder: 1},
			{OrderID: 101, ProductID: 2, AddToCartOrder: 2},
			{OrderID: 102, ProductID: 4, AddToCartOrder: 1},
			{OrderID: 102, ProductID: 5, AddToCartOrder: 2},
			{OrderID: 103, ProductID: 8, AddToCartOrder: 1},
		},
	}
}

type testServer struct {
	router  http.Handler
	engine  *recommend.Engine
	monitor *middleware.PerformanceMonitor
}

func newTestServer(t *testing.T, src recommend.DataSource, configure func(*recommend.Config, *ChiMiddlewareConfig)) *testServer {
	t.Helper()

	cfg := recommend.DefaultConfig()
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	if configure != nil {
		configure(cfg, mwCfg)
	}

	engine, err := recommend.NewEngine(cfg, src, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(engine.Close)
	engine.RegisterStrategy(algorithms.NewCollaborative(cfg.Dataset, cfg.Collaborative, zerolog.Nop()))
	engine.RegisterStrategy(algorithms.NewPearson(cfg.Dataset, cfg.Pearson, zerolog.Nop()))

	monitor := middleware.NewPerformanceMonitor(100, 0, zerolog.Nop())
	h := NewHandler(engine, monitor, "test")
	return &testServer{
		router:  NewRouter(h, NewChiMiddleware(mwCfg)),
		engine:  engine,
		monitor: monitor,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors APIResponse with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v, body = %s", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v, data = %s", err, env.Data)
		}
	}
	return env
}

func names(products []recommend.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ProductName
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
