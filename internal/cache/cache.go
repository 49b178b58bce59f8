// Package cache keeps auxiliary assets in memory for the lifetime of the
// process. Nothing is written to disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const keyPrefix = "draftgate:v1:"

// Cache stores opaque values with a TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Len() int
}

// Key builds a namespaced cache key. Parts are hashed so arbitrary input
// (URLs, icon names) yields a fixed-length key.
func Key(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return keyPrefix + namespace + ":" + hex.EncodeToString(hash[:])
}
