package blob

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/observability"
)

// CachedResolver wraps a Resolver with an in-memory LRU cache. Resolutions
// expire after ttl so signed URLs are renewed before they lapse; a zero ttl
// keeps them until evicted.
type CachedResolver struct {
	inner   Resolver
	cache   *lruCache[string]
	ttl     time.Duration
	now     func() time.Time
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner Resolver, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		cache:   newLRUCache[string](maxEntries),
		ttl:     ttl,
		now:     time.Now,
		metrics: metrics,
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, ref string) (string, error) {
	now := c.now()
	if u, ok := c.cache.get(ref, now); ok {
		c.metrics.BlobCache.WithLabelValues("hit").Inc()
		return u, nil
	}
	c.metrics.BlobCache.WithLabelValues("miss").Inc()

	u, err := c.inner.Resolve(ctx, ref)
	if err != nil {
		// Failures are not cached so the next report retries.
		return "", err
	}
	var expires time.Time
	if c.ttl > 0 {
		expires = now.Add(c.ttl)
	}
	c.cache.put(ref, u, expires)
	return u, nil
}

// lruCache is a small thread-safe LRU cache with optional per-entry expiry.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key     string
	value   V
	expires time.Time // zero means never
	prev    *entry[V]
	next    *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string, now time.Time) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !e.expires.IsZero() && !now.Before(e.expires) {
		delete(c.entries, key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expires = expires
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expires: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
