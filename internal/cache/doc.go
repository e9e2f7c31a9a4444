// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package cache provides a thread-safe LRU cache with TTL expiry.

The recommendation engine uses it to memoize query results for the active
index. Keys include the index fingerprint, so entries computed against a
replaced index are never returned.

# Usage

	c := cache.NewLRU[string, int](1000, 10*time.Minute)
	c.Add("answer", 42)
	if v, ok := c.Get("answer"); ok {
	    fmt.Println(v)
	}

# Complexity

Get, Add and Remove are O(1). Eviction removes the least recently used entry.
Expired entries are removed lazily on access or by CleanupExpired.
*/
package cache
