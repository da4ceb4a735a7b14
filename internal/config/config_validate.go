// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/grocerec/internal/validation"
)

// Validate checks struct tag rules and the settings that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateCache()
}

// validateSecurity rejects a wildcard mixed with explicit origins, which
// go-chi/cors would silently treat as a wildcard.
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) < 2 {
		return nil
	}
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "*" {
			return fmt.Errorf("CORS_ORIGINS cannot mix \"*\" with explicit origins: %v", c.Security.CORSOrigins)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	cache := c.Recommend.Cache
	if cache.Enabled && cache.RefreshInterval > cache.TTL {
		return fmt.Errorf("recommend.cache.refresh_interval (%v) must not exceed recommend.cache.ttl (%v)",
			cache.RefreshInterval, cache.TTL)
	}
	return nil
}
