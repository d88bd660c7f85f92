// Package lru implements the eviction engine behind the cache.
//
// Layout:
//   - A map holds one link record per live key.
//   - Records reference their neighbours by key, not by pointer, forming a
//     doubly linked MRU -> LRU chain threaded through the map.
//   - A policy.Policy value decides when the chain is over budget; the engine
//     evicts from the LRU end until it is not.
//
// Cache is not safe for concurrent use. internal/cache wraps it behind a mutex.
package lru
