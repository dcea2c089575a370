package staticmap

import (
	"fmt"
	"math/rand"
	"testing"
)

const (
	benchKeyCount  = 100_000
	benchValueSize = 64
)

// generateBenchData pre-generates keys and values to avoid benchmark
// contamination.
func generateBenchData(keyCount, valueSize int) ([]string, [][]byte) {
	keys := make([]string, keyCount)
	values := make([][]byte, keyCount)
	for i := 0; i < keyCount; i++ {
		keys[i] = fmt.Sprintf("key_%016d", i)
		values[i] = make([]byte, valueSize)
		for j := range values[i] {
			values[i][j] = byte((i + j) % 256)
		}
	}
	return keys, values
}

// zipfianIndex skews reads so 80% of requests go to 20% of keys.
func zipfianIndex(rng *rand.Rand, maxIndex int) int {
	if rng.Float64() < 0.8 {
		return rng.Intn(maxIndex / 5)
	}
	return maxIndex/5 + rng.Intn(maxIndex*4/5)
}

func setupBenchTable(b *testing.B, keys []string, values [][]byte) *Table[string, []byte] {
	b.Helper()

	pairs := make([]Pair[string, []byte], len(keys))
	for i := range keys {
		pairs[i] = Pair[string, []byte]{Key: keys[i], Value: values[i]}
	}
	tbl, err := NewFromStrings(pairs)
	if err != nil {
		b.Fatalf("NewFromStrings failed: %v", err)
	}
	return tbl
}

func BenchmarkGetUniform(b *testing.B) {
	keys, values := generateBenchData(benchKeyCount, benchValueSize)
	tbl := setupBenchTable(b, keys, values)
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[rng.Intn(len(keys))]
		if _, ok := tbl.Get(key); !ok {
			b.Fatalf("Get(%q) missed", key)
		}
	}
}

func BenchmarkGetZipfian(b *testing.B) {
	keys, values := generateBenchData(benchKeyCount, benchValueSize)
	tbl := setupBenchTable(b, keys, values)
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[zipfianIndex(rng, len(keys))]
		if _, ok := tbl.Get(key); !ok {
			b.Fatalf("Get(%q) missed", key)
		}
	}
}

func BenchmarkGetMiss(b *testing.B) {
	keys, values := generateBenchData(benchKeyCount, benchValueSize)
	tbl := setupBenchTable(b, keys, values)

	misses := make([]string, benchKeyCount)
	for i := range misses {
		misses[i] = fmt.Sprintf("missing_%016d", i)
	}
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := misses[rng.Intn(len(misses))]
		if _, ok := tbl.Get(key); ok {
			b.Fatalf("Get(%q) hit a missing key", key)
		}
	}
}

// Baseline: the built-in map over the same data and access pattern.
func BenchmarkBuiltinMapGetUniform(b *testing.B) {
	keys, values := generateBenchData(benchKeyCount, benchValueSize)
	m := make(map[string][]byte, len(keys))
	for i := range keys {
		m[keys[i]] = values[i]
	}
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[rng.Intn(len(keys))]
		if _, ok := m[key]; !ok {
			b.Fatalf("map miss on %q", key)
		}
	}
}

func BenchmarkGetIntKeys(b *testing.B) {
	pairs := make([]Pair[uint64, uint64], benchKeyCount)
	for i := range pairs {
		pairs[i] = Pair[uint64, uint64]{Key: uint64(i) * 2654435761, Value: uint64(i)}
	}
	tbl, err := NewFromComparable(pairs)
	if err != nil {
		b.Fatalf("NewFromComparable failed: %v", err)
	}
	rng := rand.New(rand.NewSource(42))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := pairs[rng.Intn(len(pairs))].Key
		if _, ok := tbl.Get(key); !ok {
			b.Fatalf("Get(%d) missed", key)
		}
	}
}

func BenchmarkConstruct(b *testing.B) {
	keys, values := generateBenchData(benchKeyCount, benchValueSize)
	pairs := make([]Pair[string, []byte], len(keys))
	for i := range keys {
		pairs[i] = Pair[string, []byte]{Key: keys[i], Value: values[i]}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewFromStrings(pairs); err != nil {
			b.Fatalf("NewFromStrings failed: %v", err)
		}
	}
}
