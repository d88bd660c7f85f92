package cache

// Stats counts cache activity since construction.
//
// Evictions includes values rejected for being larger than the whole budget.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
