package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/johnpmayer/lrucache/internal/cache"
)

func main() {
	capacity := flag.Int("capacity", 2, "maximum number of entries")
	workers := flag.Int("workers", 8, "goroutines in the concurrent phase")
	ops := flag.Int("ops", 10000, "operations per worker in the concurrent phase")
	verbose := flag.Bool("v", false, "log evictions at debug level")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	// Signal-aware context bounds the concurrent phase.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := cache.New[string, int](cache.Config{MaxEntries: *capacity, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Int("capacity", *capacity).Msg("cannot build cache")
	}

	logger.Info().Int("capacity", *capacity).Msg("lrucache demo starting")

	// -------------------------------------------------------------------
	// 1) Eviction walkthrough
	// -------------------------------------------------------------------
	for i, k := range []string{"a", "b", "c"} {
		evicted := c.Insert(k, i+1)
		logger.Info().Str("insert", k).Interface("evicted", evicted).Interface("order", c.Entries()).Msg("insert")
	}

	// Touch "b" so "c" becomes least-recently-used.
	if v, ok := c.Lookup("b"); ok {
		logger.Info().Str("lookup", "b").Int("value", v).Interface("order", c.Entries()).Msg("b -> MRU")
	}

	evicted := c.Insert("d", 4)
	logger.Info().Str("insert", "d").Interface("evicted", evicted).Interface("order", c.Entries()).Msg("insert")

	// -------------------------------------------------------------------
	// 2) Concurrent workload on one shared cache
	// -------------------------------------------------------------------
	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < *ops; i++ {
				if ctx.Err() != nil {
					return
				}
				k := fmt.Sprintf("k%d", (w*31+i)%(*capacity*4))
				if i%2 == 0 {
					c.Insert(k, i)
				} else {
					c.Lookup(k)
				}
			}
		}(w)
	}
	wg.Wait()

	if ctx.Err() != nil {
		logger.Warn().Msg("received shutdown signal")
	}
	if err := c.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("cache invariants broken")
	}

	stats := c.Stats()
	logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("len", c.Len()).
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Uint64("evictions", stats.Evictions).
		Msg("concurrent phase done")
}
