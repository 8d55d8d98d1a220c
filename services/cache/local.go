package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LocalCache implements CacheService with an in-process expirable LRU, for
// runs without a memcache deployment. The TTL is fixed at construction; the
// per-call expiration argument is ignored, which suits the probe guard's
// single uniform TTL.
type LocalCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewLocalCache creates a local cache holding up to size entries for ttl.
func NewLocalCache(size int, ttl time.Duration) *LocalCache {
	if size <= 0 {
		size = 4096
	}
	return &LocalCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Get retrieves a value, returning ErrCacheMiss when absent or expired.
func (c *LocalCache) Get(key string) ([]byte, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

// Set stores a value. The expiration argument is ignored; see type doc.
func (c *LocalCache) Set(key string, value []byte, _ time.Duration) error {
	c.lru.Add(key, value)
	return nil
}

// Delete removes a value.
func (c *LocalCache) Delete(key string) error {
	c.lru.Remove(key)
	return nil
}
