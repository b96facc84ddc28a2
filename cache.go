package httpclient

import "time"

// Cache is the interface that response cache adapters must implement.
// TTL is passed per Set call; the underlying cache library handles
// expiration. Adapters live in the cache/otter and cache/ristretto
// packages.
type Cache[K comparable, V any] interface {
	// Get retrieves a cached value by key. Returns the value and true if
	// found.
	Get(key K) (V, bool)
	// Set stores a value with the given TTL.
	Set(key K, value V, ttl time.Duration)
	// Delete removes a cached entry by key.
	Delete(key K)
}

// CacheConfig holds configuration for a cache instance.
type CacheConfig struct {
	// MaxSize is the maximum number of entries the cache can hold.
	MaxSize int
}

// cacheKey returns the key under which req is cached and whether req may
// be served from the cache at all. Only GET requests are cached.
func (c *Client) cacheKey(req *Request) (string, bool) {
	if c.cache == nil || req.Method() != MethodGet {
		return "", false
	}

	return c.baseURL + req.Path(), true
}
