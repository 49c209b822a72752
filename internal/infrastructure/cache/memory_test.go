package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("messaging:credentials:store-1", "creds", time.Minute)
	v, ok := c.Get("messaging:credentials:store-1")
	assert.True(t, ok)
	assert.Equal(t, "creds", v)

	c.Delete("messaging:credentials:store-1")
	_, ok = c.Get("messaging:credentials:store-1")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("short", 1, 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok, "item past its TTL must not be returned")
}

func TestMemoryCache_ZeroDurationUsesDefault(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", "v", 0)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemoryCache_Flush(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Flush()

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.False(t, okA)
	assert.False(t, okB)
}
