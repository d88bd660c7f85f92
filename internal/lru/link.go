package lru

// ref is an optional key: the chain neighbour of a record, or nothing.
type ref[K comparable] struct {
	key K
	ok  bool
}

func some[K comparable](key K) ref[K] { return ref[K]{key: key, ok: true} }

func (r ref[K]) is(key K) bool { return r.ok && r.key == key }

// link is the per-key record stored in the map.
//
// thunk is non-nil while a lazily supplied value has not been computed yet.
type link[K comparable, V any] struct {
	value V
	thunk func() V

	prev ref[K] // towards MRU
	next ref[K] // towards LRU
}

// get returns the value, computing a pending thunk at most once.
func (l *link[K, V]) get() V {
	if l.thunk != nil {
		l.value = l.thunk()
		l.thunk = nil
	}
	return l.value
}

// Entry is a key/value pair as seen by callers.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}
