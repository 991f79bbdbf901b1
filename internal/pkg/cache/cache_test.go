package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("k", 42)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.SetWithTTL("k", "v", 10*time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	// Expired entries are dropped on read
	assert.Equal(t, 0, c.Len())
}

func TestSetRefreshesExpiry(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.SetWithTTL("k", "old", 10*time.Millisecond)
	c.Set("k", "new")

	time.Sleep(20 * time.Millisecond)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestDeleteAndInvalidate(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Invalidate()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := NewTTLCache(time.Minute)
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				c.Set("shared", j)
				c.Get("shared")
				if j%100 == 0 {
					c.Invalidate()
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
