package main

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const latencySampleEvery = 1024

// normalDistInt returns an integer in [0, max) following a normal
// distribution centered at max/2 with standard deviation = max/8, so hot
// keys cluster in the middle of the key space.
func normalDistInt(rng *rand.Rand, max int) int {
	if max <= 0 {
		return 0
	}

	mean := float64(max) / 2.0
	stdDev := float64(max) / 8.0

	for {
		val := rng.NormFloat64()*stdDev + mean
		if val >= 0 && val < float64(max) {
			return int(val)
		}
	}
}

// makeKeys pre-generates the key space and deterministic values.
func makeKeys(totalKeys, valueSize int) ([]string, [][]byte) {
	keys := make([]string, totalKeys)
	values := make([][]byte, totalKeys)
	for i := 0; i < totalKeys; i++ {
		keys[i] = fmt.Sprintf("key_%016d", i)
		values[i] = make([]byte, valueSize)
		for j := range values[i] {
			values[i][j] = byte((i + j) % 256)
		}
	}
	return keys, values
}

type latencyRecorder struct {
	samples []time.Duration
	mu      sync.Mutex
}

func newLatencyRecorder(capacity int) *latencyRecorder {
	return &latencyRecorder{
		samples: make([]time.Duration, 0, capacity),
	}
}

func (lr *latencyRecorder) record(d time.Duration) {
	lr.mu.Lock()
	lr.samples = append(lr.samples, d)
	lr.mu.Unlock()
}

func (lr *latencyRecorder) percentile(p float64) time.Duration {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if len(lr.samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(lr.samples))
	copy(sorted, lr.samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return sorted[int(float64(len(sorted)-1)*p)]
}

// runReaders drives the lookup workload: readers workers each issue
// iterations lookups, keys drawn from a normal distribution over the key
// space, missPct percent of lookups aimed at keys that were never loaded.
// Every 1024th lookup is latency-sampled.
func runReaders(name string, readers int, iterations int64, missPct int, keys []string, lookup func(key string) bool) {
	var (
		hits   atomic.Int64
		misses atomic.Int64
		wg     sync.WaitGroup
	)
	recorder := newLatencyRecorder(int(iterations*int64(readers)/latencySampleEvery) + readers)

	start := time.Now()
	for w := 0; w < readers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w) + 1))
			for i := int64(0); i < iterations; i++ {
				key := keys[normalDistInt(rng, len(keys))]
				if rng.Intn(100) < missPct {
					key = fmt.Sprintf("missing_%016d", rng.Intn(len(keys)))
				}

				if i%latencySampleEvery == 0 {
					t0 := time.Now()
					ok := lookup(key)
					recorder.record(time.Since(t0))
					countLookup(ok, &hits, &misses)
					continue
				}
				countLookup(lookup(key), &hits, &misses)
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := hits.Load() + misses.Load()
	log.Info().
		Str("plan", name).
		Int64("lookups", total).
		Int64("hits", hits.Load()).
		Int64("misses", misses.Load()).
		Dur("elapsed", elapsed).
		Float64("qps", float64(total)/elapsed.Seconds()).
		Dur("p50", recorder.percentile(0.50)).
		Dur("p99", recorder.percentile(0.99)).
		Dur("p999", recorder.percentile(0.999)).
		Msg("workload finished")
}

func countLookup(ok bool, hits, misses *atomic.Int64) {
	if ok {
		hits.Add(1)
	} else {
		misses.Add(1)
	}
}
