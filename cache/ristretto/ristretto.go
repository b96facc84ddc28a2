// Package ristretto provides an adapter for the Ristretto cache library,
// implementing the httpclient.Cache interface for use with
// httpclient.WithResponseCache.
package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/turbomanage/httpclient"
)

type (
	// Key is the subset of ristretto.Key types that are also comparable,
	// required by the httpclient.Cache interface.
	Key interface {
		uint64 | string | byte | int | int32 | uint32 | int64
	}

	// adapter wraps a ristretto.Cache to implement httpclient.Cache.
	adapter[K Key, V any] struct {
		cache *ristretto.Cache[K, V]
	}
)

// MustNew creates an httpclient.Cache backed by a Ristretto cache.
// K must satisfy [Key] (comparable subset of ristretto key types).
// MaxSize from [httpclient.CacheConfig] configures the cache capacity.
// It panics if the underlying Ristretto cache cannot be built.
//
// Ristretto admits writes asynchronously: a value may not be readable
// right after Set, and may be refused by its admission policy.
//
//nolint:ireturn,varnamelen // generic type params K,V are idiomatic in Go
func MustNew[K Key, V any](cfg httpclient.CacheConfig) httpclient.Cache[K, V] {
	// nolint:mnd // Ristretto recommends 10x max size for num counters and 64
	// buffer items.
	cache, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: int64(cfg.MaxSize) * 10,
		MaxCost:     int64(cfg.MaxSize),
		BufferItems: 64,
	})
	if err != nil {
		panic("httpclient/ristretto: failed to build cache: " + err.Error())
	}

	return &adapter[K, V]{cache: cache}
}

// Responses creates a response cache holding at most maxSize responses.
//
//nolint:ireturn // returns the cache interface expected by WithResponseCache
func Responses(maxSize int) httpclient.Cache[string, *httpclient.Response] {
	return MustNew[string, *httpclient.Response](httpclient.CacheConfig{MaxSize: maxSize})
}

// Get retrieves a cached value by key.
//
//nolint:ireturn // generic type parameter V, not an interface
func (a *adapter[K, V]) Get(key K) (V, bool) {
	return a.cache.Get(key)
}

// Set stores a value with the given TTL.
func (a *adapter[K, V]) Set(key K, value V, ttl time.Duration) {
	a.cache.SetWithTTL(key, value, 1, ttl)
}

// Delete removes a cached entry by key.
func (a *adapter[K, V]) Delete(key K) {
	a.cache.Del(key)
}
