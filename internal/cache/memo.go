// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package cache

import (
	"sync"
	"time"
)

// Memo memoizes computed values under a data version. Entries expire after
// the TTL, and all entries are dropped as soon as a different version is
// observed. Failed computations are never stored.
type Memo struct {
	cache *Cache

	mu      sync.Mutex
	version string
}

// NewMemo creates a memoization layer backed by a TTL cache.
func NewMemo(ttl time.Duration) *Memo {
	return &Memo{cache: New(ttl)}
}

// Do returns the value stored for key at version, computing and storing it
// with fn on a miss. hit reports whether the value came from the cache.
func (m *Memo) Do(key, version string, fn func() (interface{}, error)) (value interface{}, hit bool, err error) {
	m.Observe(version)

	versioned := GenerateKey(key, version)
	if v, ok := m.cache.Get(versioned); ok {
		return v, true, nil
	}

	v, err := fn()
	if err != nil {
		return nil, false, err
	}

	// A concurrent Observe may have moved on; do not store stale results.
	m.mu.Lock()
	current := m.version
	m.mu.Unlock()
	if current == version {
		m.cache.Set(versioned, v)
	}

	return v, false, nil
}

// Observe records version as current. It clears the cache and returns true
// when version differs from the previously observed one.
func (m *Memo) Observe(version string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.version == version {
		return false
	}
	changed := m.version != ""
	m.version = version
	if changed {
		m.cache.Clear()
	}
	return changed
}

// Version returns the last observed data version.
func (m *Memo) Version() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Invalidate drops every memoized value.
func (m *Memo) Invalidate() {
	m.cache.Clear()
}

// Len returns the number of memoized values.
func (m *Memo) Len() int {
	return m.cache.Len()
}

// Stats returns the statistics of the underlying cache.
func (m *Memo) Stats() Stats {
	return m.cache.GetStats()
}

// HitRate returns the percentage of lookups served from the cache.
func (m *Memo) HitRate() float64 {
	return m.cache.HitRate()
}

// Close releases the background resources of the underlying cache.
func (m *Memo) Close() {
	m.cache.Close()
}
