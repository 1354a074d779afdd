// Package cache provides a sharded LRU cache with per-entry expiry.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/shipit-service/internal/metrics"
)

// Cache is a string keyed cache.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics is a snapshot of cache counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// Sharded spreads keys over independently locked LRU shards.
type Sharded[V any] struct {
	name   string
	shards []*lru[V]
	mask   uint32
	stopCh chan struct{}
	once   sync.Once
}

var _ Cache[int] = (*Sharded[int])(nil)

// NewSharded returns a cache holding about capacity entries for ttl each.
// numShards is rounded up to a power of two. name labels the Prometheus series.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}
	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	c := &Sharded[V]{
		name:   name,
		shards: make([]*lru[V], n),
		mask:   uint32(n - 1),
		stopCh: make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = newLRU[V](perShard, ttl)
	}
	go c.sweep(time.Minute)
	return c
}

func (c *Sharded[V]) shard(key string) *lru[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()&c.mask]
}

// Get returns a live entry.
func (c *Sharded[V]) Get(key string) (V, bool) {
	v, result := c.shard(key).get(key)
	metrics.RecordCacheOperation(c.name, "get", result)
	return v, result == "hit"
}

// Set stores value, evicting the least recently used entry of the shard when full.
func (c *Sharded[V]) Set(key string, value V) {
	if c.shard(key).set(key, value) {
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

// Invalidate drops key.
func (c *Sharded[V]) Invalidate(key string) {
	c.shard(key).invalidate(key)
	metrics.RecordCacheOperation(c.name, "invalidate", "success")
}

// Clear drops every entry and resets counters.
func (c *Sharded[V]) Clear() {
	for _, s := range c.shards {
		s.clear()
	}
	metrics.RecordCacheOperation(c.name, "clear", "success")
}

// Stop ends the background sweeper. It is safe to call more than once.
func (c *Sharded[V]) Stop() {
	c.once.Do(func() { close(c.stopCh) })
}

// Metrics sums the counters of every shard.
func (c *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range c.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

func (c *Sharded[V]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			for _, s := range c.shards {
				s.removeExpired()
			}
		case <-c.stopCh:
			return
		}
	}
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

type lru[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]

	hits, misses, evictions atomic.Int64
}

func newLRU[V any](capacity int, ttl time.Duration) *lru[V] {
	return &lru[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*entry[V], capacity),
	}
}

// get returns the value and "hit", "miss" or "expired".
func (l *lru[V]) get(key string) (V, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero V
	e, ok := l.items[key]
	if !ok {
		l.misses.Add(1)
		return zero, "miss"
	}
	if l.now().After(e.expiresAt) {
		l.drop(e)
		l.misses.Add(1)
		return zero, "expired"
	}
	l.moveToFront(e)
	l.hits.Add(1)
	return e.value, "hit"
}

// set reports whether an entry was evicted.
func (l *lru[V]) set(key string, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiresAt := l.now().Add(l.ttl)
	if e, ok := l.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		l.moveToFront(e)
		return false
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	l.items[key] = e
	l.pushFront(e)
	if len(l.items) <= l.capacity {
		return false
	}
	l.drop(l.tail)
	l.evictions.Add(1)
	return true
}

func (l *lru[V]) invalidate(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.items[key]; ok {
		l.drop(e)
	}
}

func (l *lru[V]) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make(map[string]*entry[V], l.capacity)
	l.head, l.tail = nil, nil
	l.hits.Store(0)
	l.misses.Store(0)
	l.evictions.Store(0)
}

func (l *lru[V]) removeExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for _, e := range l.items {
		if now.After(e.expiresAt) {
			l.drop(e)
		}
	}
}

func (l *lru[V]) metrics() Metrics {
	l.mu.Lock()
	size := len(l.items)
	l.mu.Unlock()
	return Metrics{
		Hits:      l.hits.Load(),
		Misses:    l.misses.Load(),
		Evictions: l.evictions.Load(),
		Size:      size,
		Capacity:  l.capacity,
	}
}

func (l *lru[V]) drop(e *entry[V]) {
	delete(l.items, e.key)
	l.unlink(e)
}

func (l *lru[V]) moveToFront(e *entry[V]) {
	if e == l.head {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}

func (l *lru[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

func (l *lru[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
