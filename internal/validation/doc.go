// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by configuration loading and API
// request decoding. Besides the built-in tags it registers:
//
//   - product_ref: a non-negative integer product id or the literal
//     "refresh" reset sentinel.
//
// Failures are returned as *Errors, whose messages name the failing field
// by its struct namespace (for example "Config.Recommend.PopularityMax").
//
// Example:
//
//	type request struct {
//	    ProductID string `json:"product_id" validate:"required,product_ref"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Details())
//	    return
//	}
package validation
