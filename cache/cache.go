package cache

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidConfig marks construction-time configuration errors. These
// indicate a programming error, not a data condition, and are always
// fatal: there is no silent clamping or fallback.
var ErrInvalidConfig = errors.New("cache: invalid configuration")

// DefaultMaxSize is the capacity used by callers that do not configure
// an explicit size.
const DefaultMaxSize = 256

// Statistics is a point-in-time snapshot of cache counters, not a live
// view. HitRate is Hits/(Hits+Misses), or zero before the first lookup.
type Statistics struct {
	Size    int
	MaxSize int
	Hits    int64
	Misses  int64
	HitRate float64
}

type config struct {
	trackStats bool
}

// Option configures a Cache.
type Option func(*config)

// WithStats enables or disables hit/miss counter tracking. Enabled by
// default; disabling it makes Stats report zero counts while size and
// capacity remain accurate.
func WithStats(enabled bool) Option {
	return func(c *config) { c.trackStats = enabled }
}

func applyOptions(opts []Option) config {
	cfg := config{trackStats: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a bounded memoization cache with LRU eviction. It is safe
// for concurrent use; all operations are simple synchronous map and
// list manipulations with no in-flight state.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	maxSize   int
	items     map[K]*list.Element
	evictList *list.List
	hits      int64
	misses    int64
	cfg       config
}

// New returns a Cache holding at most maxSize entries. A maxSize of
// zero or less fails with an error wrapping ErrInvalidConfig.
func New[K comparable, V any](maxSize int, opts ...Option) (*Cache[K, V], error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: maxSize must be a positive integer, got %d", ErrInvalidConfig, maxSize)
	}
	return &Cache[K, V]{
		maxSize:   maxSize,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		cfg:       applyOptions(opts),
	}, nil
}

// Get returns the value stored under key and refreshes its recency.
// A hit or miss is recorded when statistics tracking is enabled.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		if c.cfg.trackStats {
			c.hits++
		}
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	if c.cfg.trackStats {
		c.misses++
	}
	var zero V
	return zero, false
}

// Set inserts or overwrites the value under key. If the key is new and
// the cache is full, the least recently accessed entry is evicted
// first, so the cache never exceeds its configured maximum size.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)
		el.Value.(*entry[K, V]).value = value
		return
	}
	for c.evictList.Len() >= c.maxSize {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
	}
	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})
}

// Delete removes the entry under key, reporting whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// DeleteFunc removes every entry for which pred returns true and
// returns the number of entries removed.
func (c *Cache[K, V]) DeleteFunc(pred func(key K, value V) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var doomed []*list.Element
	for _, el := range c.items {
		e := el.Value.(*entry[K, V])
		if pred(e.key, e.value) {
			doomed = append(doomed, el)
		}
	}
	for _, el := range doomed {
		c.removeElement(el)
	}
	return len(doomed)
}

// Clear empties the cache and resets the hit/miss counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.evictList.Init()
	c.hits = 0
	c.misses = 0
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Statistics{
		Size:    len(c.items),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
