// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Ref   string `validate:"required,product_ref"`
	Limit int    `validate:"min=1,max=1000"`
	Mode  string `validate:"omitempty,oneof=csv duckdb"`
	Low   int    `validate:"gte=0"`
	High  int    `validate:"gtefield=Low"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sample
		wantField string
		wantTag   string
	}{
		{name: "valid id", input: sample{Ref: "24852", Limit: 10}},
		{name: "valid refresh", input: sample{Ref: "refresh", Limit: 10, Mode: "duckdb"}},
		{name: "missing ref", input: sample{Limit: 10}, wantField: "sample.Ref", wantTag: "required"},
		{name: "non-numeric ref", input: sample{Ref: "bananas", Limit: 10}, wantField: "sample.Ref", wantTag: "product_ref"},
		{name: "negative ref", input: sample{Ref: "-4", Limit: 10}, wantField: "sample.Ref", wantTag: "product_ref"},
		{name: "limit too low", input: sample{Ref: "1"}, wantField: "sample.Limit", wantTag: "min"},
		{name: "bad mode", input: sample{Ref: "1", Limit: 1, Mode: "sqlite"}, wantField: "sample.Mode", wantTag: "oneof"},
		{name: "inverted range", input: sample{Ref: "1", Limit: 1, Low: 5, High: 2}, wantField: "sample.High", wantTag: "gtefield"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() error = nil, want error")
			}
			found := false
			for _, fe := range err.Fields() {
				if fe.Field() == tt.wantField && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateStruct() = %v, want %s failing %s", err, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestErrors_Details(t *testing.T) {
	single := ValidateStruct(&sample{Ref: "1"})
	if single == nil {
		t.Fatal("expected error")
	}
	if got := single.Details()["field"]; got != "sample.Limit" {
		t.Errorf("Details()[field] = %v, want sample.Limit", got)
	}

	multi := ValidateStruct(&sample{})
	if multi == nil {
		t.Fatal("expected error")
	}
	fields, ok := multi.Details()["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details()[fields] = %v, want 2 entries", multi.Details()["fields"])
	}
	if !strings.Contains(multi.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", multi.Error())
	}
}

func TestParseProductRef(t *testing.T) {
	tests := []struct {
		in          string
		wantID      int
		wantRefresh bool
		wantErr     bool
	}{
		{in: "refresh", wantRefresh: true},
		{in: " 42 ", wantID: 42},
		{in: "0", wantID: 0},
		{in: "REFRESH", wantErr: true},
		{in: "4.5", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, refresh, err := ParseProductRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProductRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if id != tt.wantID || refresh != tt.wantRefresh {
				t.Errorf("ParseProductRef(%q) = (%d, %v), want (%d, %v)", tt.in, id, refresh, tt.wantID, tt.wantRefresh)
			}
		})
	}
}
