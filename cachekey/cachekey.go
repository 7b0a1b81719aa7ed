// Package cachekey builds and matches the slash-joined keys used by the
// resolver's caches. Keys are plain strings so they can be inspected and
// pattern-matched from operational tooling.
package cachekey

import "strings"

const separator = "/"

// Join builds a cache key from path segments, skipping empty ones.
// Join("store", "glow", "centro") returns "store/glow/centro".
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, separator)
}

// Split returns the segments of a key. An empty key yields no segments.
func Split(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, separator)
}

// Match reports whether key matches pattern. A "*" segment in the pattern
// matches exactly one key segment; segment counts must agree. Match is used
// for cache inspection and debugging, not on the resolution hot path.
func Match(pattern, key string) bool {
	if pattern == key {
		return true
	}

	pp := Split(pattern)
	kp := Split(key)
	if len(pp) != len(kp) {
		return false
	}

	for i := range pp {
		if pp[i] == "*" {
			continue
		}
		if pp[i] != kp[i] {
			return false
		}
	}
	return true
}
