package staticmap

import (
	"fmt"
	"math/bits"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoPairs = fmt.Errorf("static table needs at least one pair")
)

// HashFn maps a key to an unsigned 64-bit hash.
type HashFn[K any] func(key K) uint64

// EqualFn reports whether two keys are the same key.
type EqualFn[K any] func(a, b K) bool

// Pair is one key/value input to New.
type Pair[K, V any] struct {
	Key   K
	Value V
}

type entry[K, V any] struct {
	key  K
	val  V
	disp uint32
	used bool
}

// Table is a fixed-capacity, open-addressed hash table built once from the
// complete key set and read-only afterwards. Collisions are resolved with
// Robin Hood displacement, so every lookup is a linear probe of at most
// maxDisp+1 slots. Capacity is sized for <=60% occupancy and never changes:
// no resize, no rehash, no delete. Since nothing mutates the table after New
// returns, any number of goroutines may call Get and Has concurrently
// without locking.
type Table[K, V any] struct {
	slots   []entry[K, V]
	mask    uint64
	maxDisp uint32
	size    int
	hash    HashFn[K]
	equal   EqualFn[K]
}

// Stats is a construction-time snapshot of the table layout.
type Stats struct {
	Entries         int
	Capacity        int
	MaxDisplacement int
	LoadFactor      float64
}

// capacityFor returns the smallest power of two >= ceil(n*5/3), which keeps
// occupancy at or below 60%.
func capacityFor(n int) int {
	need := (n*5 + 2) / 3
	if need < 2 {
		need = 2
	}
	return 1 << bits.Len(uint(need-1))
}

// New builds a Table from pairs using the supplied hash and equality
// strategies. Returns ErrNoPairs for an empty input. Duplicate keys are
// accepted: a duplicate landing on the slot that already holds the key
// overwrites it, but a duplicate whose earlier copy was displaced off the
// shared probe prefix leaves both copies in place and Get returns the first
// match along the probe path.
func New[K, V any](pairs []Pair[K, V], hash HashFn[K], equal EqualFn[K]) (*Table[K, V], error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	capacity := capacityFor(len(pairs))
	t := &Table[K, V]{
		slots: make([]entry[K, V], capacity),
		mask:  uint64(capacity - 1),
		hash:  hash,
		equal: equal,
	}
	for _, p := range pairs {
		t.insert(p.Key, p.Value)
	}
	return t, nil
}

func (t *Table[K, V]) insert(key K, val V) {
	capacity := uint64(len(t.slots))
	idx := t.hash(key) & t.mask
	disp := uint32(0)
	for {
		slot := &t.slots[idx]
		if !slot.used {
			slot.key = key
			slot.val = val
			slot.disp = disp
			slot.used = true
			t.size++
			if disp > t.maxDisp {
				t.maxDisp = disp
			}
			return
		}
		if t.equal(slot.key, key) {
			slot.val = val
			slot.disp = disp
			if disp > t.maxDisp {
				t.maxDisp = disp
			}
			return
		}
		if slot.disp < disp {
			// Robin Hood swap: the richer candidate takes the slot, the
			// evicted resident keeps probing from the next offset.
			key, slot.key = slot.key, key
			val, slot.val = slot.val, val
			disp, slot.disp = slot.disp, disp
			if slot.disp > t.maxDisp {
				t.maxDisp = slot.disp
			}
		}
		idx = (idx + 1) & t.mask
		disp++
		if uint64(disp) > capacity {
			log.Panic().
				Uint64("capacity", capacity).
				Int("pairs", t.size).
				Msg("probe exhausted every slot, table sizing invariant is broken")
		}
	}
}

// Get returns a pointer into the table for key's value, or (nil, false) when
// the key is absent. It probes at most maxDisp+1 slots and allocates nothing.
func (t *Table[K, V]) Get(key K) (*V, bool) {
	idx := t.hash(key) & t.mask
	for d := uint32(0); d <= t.maxDisp; d++ {
		slot := &t.slots[idx]
		if !slot.used {
			// Robin Hood placement never leaves a gap inside a probe run,
			// so an empty slot proves absence.
			return nil, false
		}
		if t.equal(slot.key, key) {
			return &slot.val, true
		}
		idx = (idx + 1) & t.mask
	}
	return nil, false
}

// Has reports whether key is present.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Len returns the number of occupied slots.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Cap returns the slot count, always a power of two.
func (t *Table[K, V]) Cap() int {
	return len(t.slots)
}

// MaxDisplacement returns the largest probe distance of any occupied slot.
func (t *Table[K, V]) MaxDisplacement() int {
	return int(t.maxDisp)
}

// LoadFactor returns occupied slots over capacity, at most 0.6.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.slots))
}

func (t *Table[K, V]) Stats() Stats {
	return Stats{
		Entries:         t.size,
		Capacity:        len(t.slots),
		MaxDisplacement: int(t.maxDisp),
		LoadFactor:      t.LoadFactor(),
	}
}

// Range calls fn for every occupied slot in slot order until fn returns
// false. Values are passed by copy, so Range cannot mutate the table.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for i := range t.slots {
		if !t.slots[i].used {
			continue
		}
		if !fn(t.slots[i].key, t.slots[i].val) {
			return
		}
	}
}
