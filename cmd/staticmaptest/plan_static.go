package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/staticmap/pkg/staticmap"
)

func planStatic() {
	var (
		totalKeys  int
		valueSize  int
		readers    int
		iterations int64
		missPct    int
		cpuProfile string
	)

	flag.IntVar(&totalKeys, "keys", 2_000_000, "number of keys to build the table from")
	flag.IntVar(&valueSize, "value-size", 64, "value size in bytes")
	flag.IntVar(&readers, "readers", 4, "number of read workers")
	flag.Int64Var(&iterations, "iterations", 50_000_000, "lookups per worker")
	flag.IntVar(&missPct, "miss-pct", 5, "percent of lookups aimed at absent keys")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to this file")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	keys, values := makeKeys(totalKeys, valueSize)
	pairs := make([]staticmap.Pair[string, []byte], totalKeys)
	for i := range keys {
		pairs[i] = staticmap.Pair[string, []byte]{Key: keys[i], Value: values[i]}
	}

	start := time.Now()
	tbl, err := staticmap.NewFromStrings(pairs)
	if err != nil {
		log.Panic().Err(err).Msg("failed to build static table")
	}
	st := tbl.Stats()
	log.Info().
		Int("entries", st.Entries).
		Int("capacity", st.Capacity).
		Int("max_displacement", st.MaxDisplacement).
		Float64("load_factor", st.LoadFactor).
		Dur("build_time", time.Since(start)).
		Msg("static table built")

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Panic().Err(err).Msg("failed to create cpu profile file")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Panic().Err(err).Msg("failed to start cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	runReaders("static", readers, iterations, missPct, keys, func(key string) bool {
		_, ok := tbl.Get(key)
		return ok
	})
}
