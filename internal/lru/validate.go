package lru

import (
	"errors"
	"fmt"

	"github.com/johnpmayer/lrucache/internal/policy"
)

// ErrCorrupt is wrapped by every error returned from Validate.
var ErrCorrupt = errors.New("lru: corrupt cache")

// Validate checks the structural invariants of the cache and returns the
// first violation found, or nil.
//
// It walks the whole chain twice and replays the policy, so it is O(n).
// Meant for tests and fuzzing.
func (c *Cache[K, V]) Validate() error {
	n := len(c.entries)

	if c.first.ok != c.last.ok {
		return fmt.Errorf("%w: head set=%v but tail set=%v", ErrCorrupt, c.first.ok, c.last.ok)
	}
	if (n == 0) == c.first.ok {
		return fmt.Errorf("%w: %d entries with head set=%v", ErrCorrupt, n, c.first.ok)
	}
	if n == 1 && c.first.key != c.last.key {
		return fmt.Errorf("%w: single entry but head %v != tail %v", ErrCorrupt, c.first.key, c.last.key)
	}

	// Forward walk, bounded by n so a cycle cannot spin forever.
	forward := make([]K, 0, n)
	prev := ref[K]{}
	for r := c.first; r.ok; {
		if len(forward) == n {
			return fmt.Errorf("%w: chain longer than %d entries (cycle?)", ErrCorrupt, n)
		}
		l, ok := c.entries[r.key]
		if !ok {
			return fmt.Errorf("%w: chain references missing key %v", ErrCorrupt, r.key)
		}
		if l.prev != prev {
			return fmt.Errorf("%w: key %v has prev %v, want %v", ErrCorrupt, r.key, l.prev, prev)
		}
		forward = append(forward, r.key)
		prev = r
		r = l.next
	}
	if len(forward) != n {
		return fmt.Errorf("%w: chain has %d entries, map has %d", ErrCorrupt, len(forward), n)
	}
	if n > 0 && forward[n-1] != c.last.key {
		return fmt.Errorf("%w: chain ends at %v, tail is %v", ErrCorrupt, forward[n-1], c.last.key)
	}

	// Backward walk must be the exact reverse.
	i := n - 1
	for r := c.last; r.ok; r = c.entries[r.key].prev {
		if i < 0 || forward[i] != r.key {
			return fmt.Errorf("%w: reverse walk diverges at %v", ErrCorrupt, r.key)
		}
		i--
	}
	if i != -1 {
		return fmt.Errorf("%w: reverse walk stopped %d entries short", ErrCorrupt, i+1)
	}

	// Replaying the policy over the contents must reproduce its accounting.
	p := c.pol.Empty()
	for _, key := range forward {
		var out policy.Outcome
		p, out = p.Add(key, c.weighable(c.entries[key]))
		if out == policy.Overflow {
			return fmt.Errorf("%w: policy overflows replaying key %v", ErrCorrupt, key)
		}
	}
	if p.Used() != c.pol.Used() || p.Status() != c.pol.Status() {
		return fmt.Errorf("%w: policy accounts %d, replay gives %d", ErrCorrupt, c.pol.Used(), p.Used())
	}
	return nil
}
