package cache

import (
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache: miss")

// CacheService represents a generic cache service. The worker uses it as a
// probe guard (skip paths visited recently) and to hold a block marker after
// the source rate-limits us. A cache being down never fails the run.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
