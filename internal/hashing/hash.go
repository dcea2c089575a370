package hashing

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// Hash64 hashes a byte-sequence key.
func Hash64(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Hash64Of hashes the in-memory image of a comparable key. Suited to scalar
// and compact struct keys; keys holding pointers, strings or interfaces hash
// by identity, not content.
func Hash64Of[K comparable](key K) uint64 {
	size := unsafe.Sizeof(key)
	if size == 0 {
		return xxh3.Hash(nil)
	}
	return xxh3.Hash(unsafe.Slice((*byte)(unsafe.Pointer(&key)), size))
}
