package cache

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/johnpmayer/lrucache/internal/lru"
	"github.com/johnpmayer/lrucache/internal/policy"
)

func TestLRUEviction(t *testing.T) {
	c, err := New[string, []byte](Config{MaxEntries: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	c.Insert("a", []byte("A"))
	c.Insert("b", []byte("B"))

	// Touch a so b becomes LRU.
	if _, ok := c.Lookup("a"); !ok {
		t.Fatalf("expected a to exist")
	}

	// Insert c => should evict b.
	evicted := c.Insert("c", []byte("C"))
	if len(evicted) != 1 || evicted[0].Key != "b" {
		t.Fatalf("expected b to be evicted, got %v", evicted)
	}

	if _, ok := c.Lookup("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Lookup("a"); !ok {
		t.Fatalf("expected a to remain")
	}
	if _, ok := c.Lookup("c"); !ok {
		t.Fatalf("expected c to exist")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestNew_InvalidLimit(t *testing.T) {
	if _, err := New[string, int](Config{}); !errors.Is(err, policy.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := FromEntries[string, int](Config{MaxEntries: -1}, nil); !errors.Is(err, policy.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestFromEntries_SnapshotAndLimit(t *testing.T) {
	in := []lru.Entry[string, int]{{Key: "x", Value: 1}, {Key: "y", Value: 2}}
	c, err := FromEntries(Config{MaxEntries: 5}, in)
	if err != nil {
		t.Fatalf("from entries: %v", err)
	}
	if got := c.Entries(); !slices.Equal(got, in) {
		t.Fatalf("entries: got %v, want %v", got, in)
	}
	if limit, ok := c.Limit(); !ok || limit != 5 {
		t.Fatalf("limit: got %d %v", limit, ok)
	}

	p, ok := c.Pop()
	if !ok || p.Key != "y" {
		t.Fatalf("pop: got %v %v", p, ok)
	}
	if v, ok := c.Delete("x"); !ok || v != 1 {
		t.Fatalf("delete: got %d %v", v, ok)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, len %d", c.Len())
	}
}

func TestStatsTracking(t *testing.T) {
	c, _ := New[string, int](Config{MaxEntries: 1})

	c.Insert("a", 1)
	c.Lookup("a") // hit
	c.Lookup("b") // miss
	c.Insert("b", 2)

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Evictions != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLogger_DebugOnEvictionAndRejection(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p, _ := policy.Bytes[string, string](4)
	c := NewWithPolicy(p, Config{Logger: &logger})

	c.Insert("a", "12")
	c.Insert("b", "34")
	c.Insert("c", "5")
	c.Insert("huge", "123456")

	out := buf.String()
	if !strings.Contains(out, `"evicted":1`) {
		t.Fatalf("expected eviction event, got %q", out)
	}
	if !strings.Contains(out, "insert rejected") || !strings.Contains(out, `"key":"huge"`) {
		t.Fatalf("expected rejection event, got %q", out)
	}
	if !strings.Contains(out, `"component":"cache"`) {
		t.Fatalf("expected component field, got %q", out)
	}
}

func TestInsertFunc_LazyUnderLock(t *testing.T) {
	c, _ := New[string, int](Config{MaxEntries: 4, Strictness: lru.Lazy})

	var calls int
	c.InsertFunc("k", func() int { calls++; return 9 })
	if calls != 0 {
		t.Fatalf("expected deferred evaluation")
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, ok := c.Lookup("k"); !ok || v != 9 {
				t.Errorf("lookup: got %d %v", v, ok)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected one evaluation, got %d", calls)
	}
}

// Run with -race.
func TestConcurrentAccess_BoundAndInvariants(t *testing.T) {
	const (
		workers = 16
		perG    = 500
		limit   = 32
	)
	c, _ := New[string, int](Config{MaxEntries: limit})

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				k := fmt.Sprintf("k%d", (g*perG+i)%97)
				if i%3 == 0 {
					c.Lookup(k)
					continue
				}
				c.Insert(k, i)
				if n := c.Len(); n > limit {
					t.Errorf("len %d exceeds limit %d", n, limit)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.Len() != limit {
		t.Fatalf("expected a full cache, len %d", c.Len())
	}
}

// Each goroutine inserts its own keys exactly once. Every key must end up
// either resident or returned as evicted exactly once, as in some sequential
// order of the same inserts.
func TestConcurrentInsert_EveryKeyAccountedOnce(t *testing.T) {
	const (
		workers = 8
		perG    = 200
		limit   = 50
	)
	c, _ := New[string, int](Config{MaxEntries: limit})

	var (
		mu      sync.Mutex
		evicted = make(map[string]int)
		wg      sync.WaitGroup
	)
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				k := fmt.Sprintf("g%d-%d", g, i)
				for _, e := range c.Insert(k, i) {
					mu.Lock()
					evicted[e.Key]++
					mu.Unlock()
				}
			}
		}(g)
	}
	wg.Wait()

	resident := c.Keys()
	if len(resident) != limit {
		t.Fatalf("expected %d resident keys, got %d", limit, len(resident))
	}
	for _, k := range resident {
		if evicted[k] != 0 {
			t.Fatalf("key %s both resident and evicted", k)
		}
	}
	for k, n := range evicted {
		if n != 1 {
			t.Fatalf("key %s evicted %d times", k, n)
		}
	}
	if got := len(evicted) + len(resident); got != workers*perG {
		t.Fatalf("accounted for %d keys, inserted %d", got, workers*perG)
	}
	if stats := c.Stats(); stats.Evictions != uint64(len(evicted)) {
		t.Fatalf("stats evictions %d, observed %d", stats.Evictions, len(evicted))
	}
}

func BenchmarkInsertLookupParallel(b *testing.B) {
	c, _ := New[int, int](Config{MaxEntries: 1024})
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%2 == 0 {
				c.Insert(i%4096, i)
			} else {
				c.Lookup(i % 4096)
			}
			i++
		}
	})
}
