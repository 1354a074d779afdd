//go:build !integration

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	l := newLRU[int](2, time.Minute)

	l.set("a", 1)
	l.set("b", 2)
	_, _ = l.get("a")
	evicted := l.set("c", 3)

	assert.True(t, evicted)
	_, result := l.get("b")
	assert.Equal(t, "miss", result)
	v, result := l.get("a")
	assert.Equal(t, "hit", result)
	assert.Equal(t, 1, v)
	assert.Equal(t, int64(1), l.metrics().Evictions)
}

func TestLRU_Expiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLRU[string](4, time.Second)
	l.now = func() time.Time { return clock }

	l.set("k", "v")
	clock = clock.Add(2 * time.Second)

	_, result := l.get("k")
	assert.Equal(t, "expired", result)
	assert.Equal(t, 0, l.metrics().Size)
}

func TestLRU_RemoveExpired(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLRU[int](4, time.Second)
	l.now = func() time.Time { return clock }

	l.set("old", 1)
	clock = clock.Add(2 * time.Second)
	l.set("new", 2)
	l.removeExpired()

	assert.Equal(t, 1, l.metrics().Size)
	_, result := l.get("new")
	assert.Equal(t, "hit", result)
}

func TestSharded(t *testing.T) {
	c := NewSharded[int]("test", 64, time.Minute, 3)
	defer c.Stop()

	assert.Len(t, c.shards, 4)

	c.Set("0000346374230", 7)
	v, ok := c.Get("0000346374230")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	c.Invalidate("0000346374230")
	_, ok = c.Get("0000346374230")
	assert.False(t, ok)

	c.Set("x", 1)
	c.Clear()
	m := c.Metrics()
	assert.Zero(t, m.Size)
	assert.Zero(t, m.Hits)
	assert.Equal(t, 64, m.Capacity)

	c.Stop()
}

func TestSharded_Concurrent(t *testing.T) {
	c := NewSharded[int]("test", 1000, time.Minute, 8)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				c.Set(key, j)
				v, ok := c.Get(key)
				assert.True(t, ok)
				assert.Equal(t, j, v)
			}
		}(i)
	}
	wg.Wait()
}
