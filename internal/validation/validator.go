// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RefreshSentinel is the product reference that asks for a reset instead
// of a recommendation.
const RefreshSentinel = "refresh"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed validation rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e *FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string { return e.tag }

// Param returns the tag parameter, e.g. "100" for "max=100".
func (e *FieldError) Param() string { return e.param }

// Value returns the rejected value.
func (e *FieldError) Value() interface{} { return e.value }

func (e *FieldError) Error() string { return e.message }

// Errors collects the field errors of one struct.
type Errors struct {
	errors []FieldError
}

// Fields returns the individual field errors.
func (ve *Errors) Fields() []FieldError {
	return ve.errors
}

func (ve *Errors) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// Details returns the field errors in a form suitable for an API error
// body: the single failing field, or a list when several failed.
func (ve *Errors) Details() map[string]interface{} {
	if len(ve.errors) == 1 {
		e := ve.errors[0]
		return map[string]interface{}{"field": e.field, "tag": e.tag}
	}
	fields := make([]map[string]interface{}, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		}
	}
	return map[string]interface{}{"fields": fields}
}

// GetValidator returns the shared validator with the custom rules
// registered. It is safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("product_ref", isProductRef); err != nil {
			panic(fmt.Sprintf("register product_ref: %v", err))
		}
	})
	return validate
}

// ValidateStruct validates s and returns nil or the failed fields.
func ValidateStruct(s interface{}) *Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Errors{errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			field:   fe.Namespace(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe),
		}
	}
	return &Errors{errors: out}
}

// ParseProductRef interprets a product reference from the presentation
// layer. It returns refresh=true for the reset sentinel, otherwise the
// numeric product id.
func ParseProductRef(ref string) (id int, refresh bool, err error) {
	ref = strings.TrimSpace(ref)
	if ref == RefreshSentinel {
		return 0, true, nil
	}
	id, err = strconv.Atoi(ref)
	if err != nil || id < 0 {
		return 0, false, fmt.Errorf("product_id must be a non-negative integer or %q, got %q", RefreshSentinel, ref)
	}
	return id, false, nil
}

func isProductRef(fl validator.FieldLevel) bool {
	_, _, err := ParseProductRef(fl.Field().String())
	return err == nil
}

var messages = map[string]string{
	"required":    "%s is required",
	"product_ref": "%s must be a product id or \"refresh\"",
	"hostname":    "%s must be a valid hostname",
	"ip":          "%s must be a valid IP address",
}

var messagesWithParam = map[string]string{
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"gtefield": "%s must be greater than or equal to %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Namespace()
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
