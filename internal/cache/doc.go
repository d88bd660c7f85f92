// Package cache provides a concurrency-safe, bounded LRU cache.
//
// Goals for this package:
//   - Share one internal/lru engine between goroutines with linearizable semantics
//   - Keep locking coarse: one sync.Mutex, held for the whole of every call
//   - Report evictions to the caller as return values, and to a zerolog.Logger at debug level
//
// There is no read-only fast path. Lookup promotes the entry it finds, so it
// takes the same exclusive lock as Insert.
package cache
