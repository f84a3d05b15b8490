// Package cache provides the fetch cache used during remote document
// ingestion so repeated ingests of the same source do not re-download it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a namespaced cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "chainsage:v1:" + hex.EncodeToString(hash[:])
}
