package staticmap

import (
	"github.com/Meesho/BharatMLStack/staticmap/internal/hashing"
)

// NewFromStrings builds a Table for byte-sequence keys using xxhash and
// byte-wise equality.
func NewFromStrings[V any](pairs []Pair[string, V]) (*Table[string, V], error) {
	return New(pairs, hashing.Hash64, func(a, b string) bool { return a == b })
}

// NewFromComparable builds a Table for comparable value-type keys, hashing
// the key's structural byte image with xxh3. Suited to scalar and compact
// struct keys; see hashing.Hash64Of for the pointer-key caveat.
func NewFromComparable[K comparable, V any](pairs []Pair[K, V]) (*Table[K, V], error) {
	return New(pairs, hashing.Hash64Of[K], func(a, b K) bool { return a == b })
}
