package main

import (
	"flag"
	"runtime/debug"
	"time"

	"github.com/coocood/freecache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Baseline plan: freecache over the same read-only workload. Entries are
// loaded once with a TTL long enough to outlive the run.
func planFreecache() {
	var (
		totalKeys  int
		valueSize  int
		readers    int
		iterations int64
		missPct    int
		cacheMB    int
	)

	flag.IntVar(&totalKeys, "keys", 2_000_000, "number of keys to load")
	flag.IntVar(&valueSize, "value-size", 64, "value size in bytes")
	flag.IntVar(&readers, "readers", 4, "number of read workers")
	flag.Int64Var(&iterations, "iterations", 50_000_000, "lookups per worker")
	flag.IntVar(&missPct, "miss-pct", 5, "percent of lookups aimed at absent keys")
	flag.IntVar(&cacheMB, "cache-mb", 1024, "freecache size in MiB")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cache := freecache.NewCache(cacheMB * 1024 * 1024)
	debug.SetGCPercent(20)

	keys, values := makeKeys(totalKeys, valueSize)
	start := time.Now()
	for i := range keys {
		if err := cache.Set([]byte(keys[i]), values[i], 24*60*60); err != nil {
			log.Panic().Err(err).Str("key", keys[i]).Msg("freecache load failed")
		}
	}
	log.Info().
		Int64("entries", cache.EntryCount()).
		Dur("build_time", time.Since(start)).
		Msg("freecache loaded")

	runReaders("freecache", readers, iterations, missPct, keys, func(key string) bool {
		_, err := cache.Get([]byte(key))
		return err == nil
	})
}
