package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTTLCacheExpiresLazily(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTLCache[string, int](time.Hour, clock.Now)

	c.Set("ahri", 1)
	v, ok := c.Get("ahri")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	clock.Advance(59 * time.Minute)
	_, ok = c.Get("ahri")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())

	clock.Advance(time.Minute)
	_, ok = c.Get("ahri")
	assert.False(t, ok, "entry at exactly ttl is expired")
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheSetRefreshesTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewTTLCache[string, string](time.Minute, clock.Now)

	c.Set("k", "old")
	clock.Advance(50 * time.Second)
	c.Set("k", "new")
	clock.Advance(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestTTLCacheDeleteAndClear(t *testing.T) {
	c := NewTTLCache[string, int](0, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	c := NewTTLCache[int, int](time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(j, i)
				c.Get(j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
}
