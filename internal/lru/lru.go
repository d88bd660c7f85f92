package lru

import (
	"slices"

	"github.com/johnpmayer/lrucache/internal/policy"
)

// Cache is a recency-ordered key/value store bounded by a policy.Policy.
//
// first is the most recently used key, last the least recently used one.
// Both are unset iff the cache is empty.
type Cache[K comparable, V any] struct {
	first ref[K]
	last  ref[K]

	pol     policy.Policy[K, V]
	entries map[K]*link[K, V]

	strictness Strictness
}

// New returns an empty cache admitting at most limit entries.
func New[K comparable, V any](limit int, opts ...Option) (*Cache[K, V], error) {
	p, err := policy.Count[K, V](limit)
	if err != nil {
		return nil, err
	}
	return NewWithPolicy(p, opts...), nil
}

// NewWithPolicy returns an empty cache accounted by p.
//
// p's accounting is discarded; the cache starts from p.Empty().
func NewWithPolicy[K comparable, V any](p policy.Policy[K, V], opts ...Option) *Cache[K, V] {
	if p == nil {
		panic("lru: nil policy")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		pol:        p.Empty(),
		entries:    make(map[K]*link[K, V]),
		strictness: o.strictness,
	}
}

// FromEntries builds a count-bounded cache whose order matches entries,
// entries[0] being the most recently used.
func FromEntries[K comparable, V any](limit int, entries []Entry[K, V], opts ...Option) (*Cache[K, V], error) {
	p, err := policy.Count[K, V](limit)
	if err != nil {
		return nil, err
	}
	return FromEntriesWithPolicy(p, entries, opts...), nil
}

// FromEntriesWithPolicy folds Insert over entries from last to first.
//
// With distinct keys that fit the budget, Entries() returns entries unchanged.
// Otherwise the usual insert rules apply and overflow is evicted silently.
func FromEntriesWithPolicy[K comparable, V any](p policy.Policy[K, V], entries []Entry[K, V], opts ...Option) *Cache[K, V] {
	c := NewWithPolicy(p, opts...)
	for i := len(entries) - 1; i >= 0; i-- {
		c.Insert(entries[i].Key, entries[i].Value)
	}
	return c
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.entries) }

// Limit returns the policy limit, or false when the policy is unbounded.
func (c *Cache[K, V]) Limit() (int, bool) { return c.pol.Limit() }

// Lookup returns the value for key and promotes it to most recently used.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	l, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.hit(key, l)
	return l.get(), true
}

// Insert stores value under key as the most recently used entry.
//
// It returns the entries evicted to stay within budget, most recently evicted
// first, or nil. A value whose own cost exceeds the whole budget is rejected:
// it is returned as the only element and any previous entry for key is dropped.
func (c *Cache[K, V]) Insert(key K, value V) []Entry[K, V] {
	return c.insert(key, &link[K, V]{value: value})
}

// InsertFunc is Insert for a value produced by fn.
//
// With Eager strictness fn runs immediately. With Lazy strictness it runs on
// first read, or right away if the policy needs the value to weigh it.
func (c *Cache[K, V]) InsertFunc(key K, fn func() V) []Entry[K, V] {
	if fn == nil {
		panic("lru: nil value func")
	}
	l := &link[K, V]{thunk: fn}
	if c.strictness == Eager {
		l.get()
	}
	return c.insert(key, l)
}

func (c *Cache[K, V]) insert(key K, l *link[K, V]) []Entry[K, V] {
	if _, out := c.pol.Empty().Add(key, c.weighable(l)); out == policy.Overflow {
		if old, ok := c.entries[key]; ok {
			c.remove(key, old)
		}
		return []Entry[K, V]{{Key: key, Value: l.get()}}
	}

	if old, ok := c.entries[key]; ok {
		c.pol = c.pol.Remove(key, c.weighable(old))
		old.value, old.thunk = l.value, l.thunk
		c.hit(key, old)
		l = old
	} else {
		c.pushFront(key, l)
	}

	var out policy.Outcome
	c.pol, out = c.pol.Add(key, c.weighable(l))
	if out == policy.Accepted {
		return nil
	}
	return c.evictOverflow()
}

// Delete removes key and returns its value.
func (c *Cache[K, V]) Delete(key K) (V, bool) {
	l, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.remove(key, l)
	return l.get(), true
}

// Pop removes and returns the least recently used entry.
func (c *Cache[K, V]) Pop() (Entry[K, V], bool) {
	if !c.last.ok {
		return Entry[K, V]{}, false
	}
	key := c.last.key
	v, _ := c.Delete(key)
	return Entry[K, V]{Key: key, Value: v}, true
}

// Entries returns a snapshot of all entries, most recently used first.
// It does not change the order.
func (c *Cache[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(c.entries))
	for r := c.first; r.ok; {
		l := c.entries[r.key]
		out = append(out, Entry[K, V]{Key: r.key, Value: l.get()})
		r = l.next
	}
	return out
}

// Keys returns keys in MRU -> LRU order without computing pending values.
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, len(c.entries))
	for r := c.first; r.ok; r = c.entries[r.key].next {
		out = append(out, r.key)
	}
	return out
}

// weighable returns the value to hand the policy. Count-style policies never
// read it, so a pending lazy value is left alone for them.
func (c *Cache[K, V]) weighable(l *link[K, V]) V {
	if c.pol.ValueAware() {
		return l.get()
	}
	return l.value
}

// evictOverflow drops entries from the LRU end until the policy accepts.
// The head is never evicted: insert already rejected anything that cannot
// fit on its own.
func (c *Cache[K, V]) evictOverflow() []Entry[K, V] {
	var evicted []Entry[K, V]
	for c.pol.Status() == policy.Overflow && len(c.entries) > 1 {
		key := c.last.key
		l := c.entries[key]
		c.remove(key, l)
		evicted = append(evicted, Entry[K, V]{Key: key, Value: l.get()})
	}
	slices.Reverse(evicted)
	return evicted
}
