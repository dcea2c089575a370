package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Baseline plan: the built-in map over the same read-only workload.
func planStdMap() {
	var (
		totalKeys  int
		valueSize  int
		readers    int
		iterations int64
		missPct    int
	)

	flag.IntVar(&totalKeys, "keys", 2_000_000, "number of keys to load")
	flag.IntVar(&valueSize, "value-size", 64, "value size in bytes")
	flag.IntVar(&readers, "readers", 4, "number of read workers")
	flag.Int64Var(&iterations, "iterations", 50_000_000, "lookups per worker")
	flag.IntVar(&missPct, "miss-pct", 5, "percent of lookups aimed at absent keys")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	keys, values := makeKeys(totalKeys, valueSize)
	start := time.Now()
	m := make(map[string][]byte, totalKeys)
	for i := range keys {
		m[keys[i]] = values[i]
	}
	log.Info().
		Int("entries", len(m)).
		Dur("build_time", time.Since(start)).
		Msg("builtin map loaded")

	runReaders("stdmap", readers, iterations, missPct, keys, func(key string) bool {
		_, ok := m[key]
		return ok
	})
}
