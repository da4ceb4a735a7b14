// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/grocerec/internal/config"
	"github.com/tomtom215/grocerec/internal/recommend"
	"github.com/tomtom215/grocerec/internal/recommend/storage"
)

// loadDefaults loads the configuration with no file and no overrides.
func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestEngineConfig_DefaultsMatchEngineDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	got := engineConfig(cfg)
	want := recommend.DefaultConfig()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("engineConfig(defaults) = %+v, want %+v", got, want)
	}
}

func TestEngineConfig_Overrides(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Recommend.Neighbors = 5
	cfg.Recommend.StopWords = "none"
	cfg.Recommend.Cache.Enabled = true
	cfg.Data.MaxOrderLines = 1000

	got := engineConfig(cfg)
	if got.Collaborative.Neighbors != 5 {
		t.Errorf("Neighbors = %d, want 5", got.Collaborative.Neighbors)
	}
	if got.Content.StopWords != "" {
		t.Errorf("StopWords = %q, want empty", got.Content.StopWords)
	}
	if !got.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}
	if got.Dataset.MaxOrderLines != 1000 {
		t.Errorf("MaxOrderLines = %d, want 1000", got.Dataset.MaxOrderLines)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestStopWordsCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"en", "en"},
		{"english", "en"},
		{"none", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := stopWordsCode(tt.in); got != tt.want {
				t.Errorf("stopWordsCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDataPaths(t *testing.T) {
	cfg := &config.DataConfig{
		Dir:            "/srv/data",
		OrderLinesPath: "/mnt/orders/order_products__prior.csv",
	}
	got := dataPaths(cfg)
	want := storage.DataPaths{
		Products:    filepath.Join("/srv/data", storage.ProductsFile),
		Aisles:      filepath.Join("/srv/data", storage.AislesFile),
		Departments: filepath.Join("/srv/data", storage.DepartmentsFile),
		OrderLines:  "/mnt/orders/order_products__prior.csv",
	}
	if got != want {
		t.Errorf("dataPaths() = %+v, want %+v", got, want)
	}
}

func TestBuildSource(t *testing.T) {
	tests := []struct {
		name    string
		breaker bool
		want    interface{}
	}{
		{"csv behind breaker", true, &storage.BreakerSource{}},
		{"plain csv", false, &storage.CSVSource{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			cfg.Data.Breaker.Enabled = tt.breaker

			src, closeFn, err := buildSource(cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("buildSource() error = %v", err)
			}
			defer closeFn()

			if reflect.TypeOf(src) != reflect.TypeOf(tt.want) {
				t.Errorf("buildSource() type = %T, want %T", src, tt.want)
			}
		})
	}
}

func TestOrderLineLimits(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"products.csv":              "product_id,product_name,aisle_id,department_id\n1,Banana,1,1\n",
		"aisles.csv":                "aisle_id,aisle\n1,fresh fruits\n",
		"departments.csv":           "department_id,department\n1,produce\n",
		"order_products__train.csv": "order_id,product_id,add_to_cart_order,reordered\n1,1,1,0\n2,1,1,0\n3,1,1,0\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}

	cfg := loadDefaults(t)
	cfg.Data.Dir = dir
	cfg.Data.Breaker.Enabled = false
	cfg.Data.OrderLinesReadLimit = 2
	cfg.Data.MaxOrderLines = 1

	src, closeFn, err := buildSource(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildSource() error = %v", err)
	}
	defer closeFn()

	lines, err := src.OrderLines(context.Background())
	if err != nil {
		t.Fatalf("OrderLines() error = %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("len(OrderLines()) = %d, want read limit 2", len(lines))
	}
	if got := engineConfig(cfg).Dataset.MaxOrderLines; got != 1 {
		t.Errorf("Dataset.MaxOrderLines = %d, want 1", got)
	}
}

func TestBuildEngine_RegistersStrategies(t *testing.T) {
	cfg := loadDefaults(t)

	engine, err := buildEngine(cfg, &recommend.StaticSource{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildEngine() error = %v", err)
	}
	defer engine.Close()

	want := []string{"collaborative", "content", "pearson"}
	if got := engine.Strategies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strategies() = %v, want %v", got, want)
	}
	if engine.CacheEnabled() {
		t.Error("CacheEnabled() = true, want false by default")
	}
}
