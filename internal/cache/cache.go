// Package cache stores lookup-service responses so re-checking a document
// does not re-spend the shared request-rate budget.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for response caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a lookup request URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "citecheck:v1:" + hex.EncodeToString(hash[:])
}
