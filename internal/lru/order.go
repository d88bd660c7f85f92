package lru

// pushFront links a new key in as most recently used.
func (c *Cache[K, V]) pushFront(key K, l *link[K, V]) {
	l.prev = ref[K]{}
	l.next = c.first
	if c.first.ok {
		c.entries[c.first.key].prev = some(key)
	} else {
		c.last = some(key)
	}
	c.first = some(key)
	c.entries[key] = l
}

// hit promotes a resident key to most recently used.
//
// Tail: the predecessor becomes the new tail. Interior: the neighbours are
// spliced together. Either way the key is then reattached at the head.
func (c *Cache[K, V]) hit(key K, l *link[K, V]) {
	if c.first.is(key) {
		return
	}
	// Not the head, so l.prev is set.
	prev := c.entries[l.prev.key]
	if c.last.is(key) {
		c.last = l.prev
		prev.next = ref[K]{}
	} else {
		prev.next = l.next
		c.entries[l.next.key].prev = l.prev
	}

	c.entries[c.first.key].prev = some(key)
	l.prev = ref[K]{}
	l.next = c.first
	c.first = some(key)
}

// unlink splices key out of the chain. The map entry is left in place.
func (c *Cache[K, V]) unlink(l *link[K, V]) {
	switch {
	case !l.prev.ok && !l.next.ok:
		c.first = ref[K]{}
		c.last = ref[K]{}
	case !l.prev.ok:
		c.first = l.next
		c.entries[l.next.key].prev = ref[K]{}
	case !l.next.ok:
		c.last = l.prev
		c.entries[l.prev.key].next = ref[K]{}
	default:
		c.entries[l.prev.key].next = l.next
		c.entries[l.next.key].prev = l.prev
	}
	l.prev = ref[K]{}
	l.next = ref[K]{}
}

// remove unlinks key, drops it from the map and releases it from the policy.
func (c *Cache[K, V]) remove(key K, l *link[K, V]) {
	c.unlink(l)
	delete(c.entries, key)
	c.pol = c.pol.Remove(key, c.weighable(l))
}
