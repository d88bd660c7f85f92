package cache

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/johnpmayer/lrucache/internal/lru"
	"github.com/johnpmayer/lrucache/internal/policy"
)

// Config controls construction of a Cache.
//
//   - MaxEntries is the entry-count limit used by New and FromEntries; it must be > 0.
//   - Strictness selects when InsertFunc values are computed (lru.Eager by default).
//   - Logger receives debug events for evictions; nil disables logging.
type Config struct {
	MaxEntries int
	Strictness lru.Strictness
	Logger     *zerolog.Logger
}

// Cache is a concurrency-safe wrapper around one lru.Cache.
//
// Every method holds a single mutex for its whole duration. There is no read
// lock tier: Lookup reorders the chain, so it is a write like any other.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	engine *lru.Cache[K, V]
	stats  Stats
	log    zerolog.Logger
}

// New constructs an empty count-bounded cache.
//
// It fails with policy.ErrInvalidLimit when cfg.MaxEntries <= 0.
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	p, err := policy.Count[K, V](cfg.MaxEntries)
	if err != nil {
		return nil, err
	}
	return NewWithPolicy(p, cfg), nil
}

// NewWithPolicy constructs an empty cache accounted by p. cfg.MaxEntries is ignored.
func NewWithPolicy[K comparable, V any](p policy.Policy[K, V], cfg Config) *Cache[K, V] {
	return wrap(lru.NewWithPolicy(p, lru.WithStrictness(cfg.Strictness)), cfg)
}

// FromEntries builds a count-bounded cache holding entries, entries[0] most recently used.
func FromEntries[K comparable, V any](cfg Config, entries []lru.Entry[K, V]) (*Cache[K, V], error) {
	e, err := lru.FromEntries(cfg.MaxEntries, entries, lru.WithStrictness(cfg.Strictness))
	if err != nil {
		return nil, err
	}
	return wrap(e, cfg), nil
}

func wrap[K comparable, V any](e *lru.Cache[K, V], cfg Config) *Cache[K, V] {
	l := zerolog.Nop()
	if cfg.Logger != nil {
		l = cfg.Logger.With().Str("component", "cache").Logger()
	}
	return &Cache[K, V]{engine: e, log: l}
}

// Insert stores value under key and returns what had to be evicted, most
// recently evicted first. A rejected oversized value comes back as the only element.
func (c *Cache[K, V]) Insert(key K, value V) []lru.Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := c.engine.Insert(key, value)
	c.noteEvictedLocked(key, evicted)
	return evicted
}

// InsertFunc is Insert for a value produced by fn; see lru.Cache.InsertFunc.
//
// fn runs under the cache lock, either now or on first read.
func (c *Cache[K, V]) InsertFunc(key K, fn func() V) []lru.Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := c.engine.InsertFunc(key, fn)
	c.noteEvictedLocked(key, evicted)
	return evicted
}

// Lookup returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.engine.Lookup(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Delete(key)
}

// Pop removes and returns the least recently used entry.
func (c *Cache[K, V]) Pop() (lru.Entry[K, V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Pop()
}

// Entries returns a snapshot of all entries, most recently used first.
func (c *Cache[K, V]) Entries() []lru.Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Entries()
}

// Keys returns keys in MRU -> LRU order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Keys()
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Len()
}

// Limit returns the configured capacity limit, or false if unbounded.
func (c *Cache[K, V]) Limit() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Limit()
}

// Validate checks the engine invariants under the lock. Test helper.
func (c *Cache[K, V]) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Validate()
}

func (c *Cache[K, V]) noteEvictedLocked(key K, evicted []lru.Entry[K, V]) {
	if len(evicted) == 0 {
		return
	}
	c.stats.Evictions += uint64(len(evicted))

	if len(evicted) == 1 && evicted[0].Key == key {
		c.log.Debug().Interface("key", key).Msg("insert rejected: value exceeds capacity on its own")
		return
	}
	c.log.Debug().
		Interface("key", key).
		Int("evicted", len(evicted)).
		Int("len", c.engine.Len()).
		Msg("insert evicted least recently used entries")
}
