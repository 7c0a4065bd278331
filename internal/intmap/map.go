// Package intmap is an open-addressed, 64-bit-integer-keyed hash table
// with linear probing and a splitmix64-class avalanche mixer, used
// wherever packed coordinates or canonical keys need a lookup table
// without the overhead of formatting them into strings.
package intmap

// sentinelReplacement is the fixed nonzero key every legitimate key of 0 is
// remapped to, so the table never needs a separate "is this slot the zero
// key or just empty" bit alongside the occupied flag.
const sentinelReplacement = 0x9E3779B97F4A7C15

// mix is splitmix64's output-mixing step: a 64-bit avalanche function that
// tolerates adversarial key patterns, unlike a trivial identity or
// multiplicative hash on packed coordinates.
func mix(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// Mix exposes the package's avalanche mixer for callers that fold
// multi-field keys down to a single uint64 before using this table, such
// as a group's canonical member key.
func Mix(x uint64) uint64 { return mix(x) }

func canonicalKey(key uint64) uint64 {
	if key == 0 {
		return sentinelReplacement
	}
	return key
}

// Map is an open-addressed hash table from uint64 to V, maintained at a
// load factor <= 0.5.
type Map[V any] struct {
	keys     []uint64
	vals     []V
	occupied []bool
	count    int
}

// New allocates a table sized for at least capacityHint entries at the
// target load factor.
func New[V any](capacityHint int) *Map[V] {
	size := 16
	for size <= capacityHint*2 {
		size <<= 1
	}
	return &Map[V]{
		keys:     make([]uint64, size),
		vals:     make([]V, size),
		occupied: make([]bool, size),
	}
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int { return m.count }

func (m *Map[V]) indexFor(key uint64) int {
	mask := uint64(len(m.keys) - 1)
	idx := mix(key) & mask
	for m.occupied[idx] && m.keys[idx] != key {
		idx = (idx + 1) & mask
	}
	return int(idx)
}

func (m *Map[V]) maybeGrow() {
	if float64(m.count+1) <= float64(len(m.keys))*0.5 {
		return
	}
	old := *m
	*m = Map[V]{
		keys:     make([]uint64, len(old.keys)*2),
		vals:     make([]V, len(old.vals)*2),
		occupied: make([]bool, len(old.occupied)*2),
	}
	for i, occ := range old.occupied {
		if occ {
			idx := m.indexFor(old.keys[i])
			m.keys[idx] = old.keys[i]
			m.vals[idx] = old.vals[i]
			m.occupied[idx] = true
			m.count++
		}
	}
}

// Put inserts or overwrites the value for key.
func (m *Map[V]) Put(key uint64, val V) {
	key = canonicalKey(key)
	m.maybeGrow()
	idx := m.indexFor(key)
	if !m.occupied[idx] {
		m.occupied[idx] = true
		m.keys[idx] = key
		m.count++
	}
	m.vals[idx] = val
}

// PutIfAbsent inserts val under key only if key is not already present.
// Returns true if the insertion happened (key was new).
func (m *Map[V]) PutIfAbsent(key uint64, val V) bool {
	key = canonicalKey(key)
	m.maybeGrow()
	idx := m.indexFor(key)
	if m.occupied[idx] {
		return false
	}
	m.occupied[idx] = true
	m.keys[idx] = key
	m.vals[idx] = val
	m.count++
	return true
}

// Get looks up key, returning the stored value and whether it was present.
func (m *Map[V]) Get(key uint64) (V, bool) {
	key = canonicalKey(key)
	idx := m.indexFor(key)
	if !m.occupied[idx] {
		var zero V
		return zero, false
	}
	return m.vals[idx], true
}

// Has reports whether key is present.
func (m *Map[V]) Has(key uint64) bool {
	_, ok := m.Get(key)
	return ok
}

// Each calls f once per stored entry, in table (not insertion) order.
func (m *Map[V]) Each(f func(key uint64, val V)) {
	for i, occ := range m.occupied {
		if occ {
			f(m.keys[i], m.vals[i])
		}
	}
}
