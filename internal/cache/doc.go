// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

/*
Package cache provides the memoization layer for recommendation results.

Strategies recompute everything from the data source on each call. When
caching is enabled, the engine stores results in a Memo keyed by strategy,
request parameters and the data version of the source. Observing a new
version drops every stored result, so a changed input file is never
answered from the cache.

# Components

  - Cache: a thread-safe TTL map with lazy expiry on Get and a background
    sweep every five minutes until Close.
  - Memo: version-aware memoization over a Cache. Failed computations are
    not stored.
  - GenerateKey: stable keys from a method name and JSON-encodable
    parameters.

# Example

	memo := cache.NewMemo(10 * time.Minute)
	defer memo.Close()

	key := cache.GenerateKey("recommend:content", params)
	v, hit, err := memo.Do(key, version, func() (interface{}, error) {
	    return compute(ctx)
	})
*/
package cache
