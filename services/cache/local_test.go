package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCacheRoundTrip(t *testing.T) {
	c := NewLocalCache(16, time.Minute)

	require.NoError(t, c.Set("probed:/battery/a", []byte("1"), 0))

	v, err := c.Get("probed:/battery/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestLocalCacheMiss(t *testing.T) {
	c := NewLocalCache(16, time.Minute)

	_, err := c.Get("absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLocalCacheDelete(t *testing.T) {
	c := NewLocalCache(16, time.Minute)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	require.NoError(t, c.Delete("k"))

	_, err := c.Get("k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLocalCacheExpiry(t *testing.T) {
	c := NewLocalCache(16, 10*time.Millisecond)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get("k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLocalCacheEvictsBeyondCapacity(t *testing.T) {
	c := NewLocalCache(2, time.Minute)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Set("b", []byte("2"), 0))
	require.NoError(t, c.Set("c", []byte("3"), 0))

	_, err := c.Get("a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
