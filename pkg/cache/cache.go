// Package cache provides result caching for layout generation runs.
//
// Generation is deterministic given a method, grid size, seed, and parameter
// override, so a run is fully described by its request and the serialized
// result can be reused. The cache is a CLI-level concern: the core engine in
// pkg/layout never touches it.
//
// Three backends are provided: a file cache for local CLI usage, a Redis
// cache for shared environments, and a null cache to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKey derives the cache key for one generation request. Every input
// that influences the output participates in the hash, so two requests
// collide only if they would produce identical layouts.
func ResultKey(method string, width, height int, seed int64, overrides []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|", method, width, height, seed)
	h.Write(overrides)
	return "layout:" + hex.EncodeToString(h.Sum(nil))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
