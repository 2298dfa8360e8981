// Package keyed provides enhanced keyed-storage containers.
package keyed

// ArrayMap is a Store backing over parallel key/value slices with a
// key-to-position index.
//
// Insert, lookup, update, and removal are all O(1); removal swaps the
// removed slot with the last slot and updates the moved key's index, the
// same trick used to keep key-tracking lists contiguous in O(1).
//
// Ordering contract: Range visits entries in insertion order only until the
// first removal. After any removal the order reflects the swap history and
// is unspecified beyond "every live entry exactly once". This is a
// deliberate trade-off for O(1) removal, not a defect.
type ArrayMap[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

// Compile-time interface check.
var _ Store[string, int] = (*ArrayMap[string, int])(nil)

// NewArrayMap creates an empty ArrayMap.
func NewArrayMap[K comparable, V any]() *ArrayMap[K, V] {
	return &ArrayMap[K, V]{
		index: make(map[K]int),
	}
}

// NewArrayMapOf creates an ArrayMap seeded from pairs.
// Later duplicates override earlier ones when override is true; otherwise the
// first occurrence of a key wins.
func NewArrayMapOf[K comparable, V any](pairs []Entry[K, V], override bool) *ArrayMap[K, V] {
	m := &ArrayMap[K, V]{
		keys:   make([]K, 0, len(pairs)),
		values: make([]V, 0, len(pairs)),
		index:  make(map[K]int, len(pairs)),
	}
	seed[K, V](m, pairs, override)

	return m
}

// Get returns the value stored under key and whether the key exists.
func (m *ArrayMap[K, V]) Get(key K) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.values[i], true
	}

	var zero V

	return zero, false
}

// Has reports whether key is present.
func (m *ArrayMap[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Put stores value under key, returning the previous value and whether the
// key already existed. The error is always nil.
//
// An existing key is updated in place; a new key is appended to the end of
// the enumeration order.
func (m *ArrayMap[K, V]) Put(key K, value V) (V, bool, error) {
	if i, ok := m.index[key]; ok {
		prev := m.values[i]
		m.values[i] = value

		return prev, true, nil
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)

	var zero V

	return zero, false, nil
}

// Remove deletes key in O(1) by moving the last slot into the vacated
// position. Reports whether the key was present.
func (m *ArrayMap[K, V]) Remove(key K) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}

	last := len(m.keys) - 1

	if i != last {
		moved := m.keys[last]

		m.keys[i] = moved
		m.values[i] = m.values[last]
		m.index[moved] = i
	}

	// Zero the tail slots so the truncated backing array does not pin the
	// removed key/value for the garbage collector.
	var (
		zeroK K
		zeroV V
	)

	m.keys[last] = zeroK
	m.values[last] = zeroV

	m.keys = m.keys[:last]
	m.values = m.values[:last]
	delete(m.index, key)

	return true
}

// Len returns the number of entries.
func (m *ArrayMap[K, V]) Len() int {
	return len(m.keys)
}

// Clear removes all entries.
func (m *ArrayMap[K, V]) Clear() {
	m.keys = nil
	m.values = nil
	m.index = make(map[K]int)
}

// Range calls fn for every entry until fn returns false.
// See the type documentation for the ordering contract.
func (m *ArrayMap[K, V]) Range(fn func(key K, value V) bool) {
	for i := range m.keys {
		if !fn(m.keys[i], m.values[i]) {
			return
		}
	}
}

// Clone returns an independent copy preserving the current slot order.
func (m *ArrayMap[K, V]) Clone() Store[K, V] {
	out := &ArrayMap[K, V]{
		keys:   make([]K, len(m.keys)),
		values: make([]V, len(m.values)),
		index:  make(map[K]int, len(m.index)),
	}

	copy(out.keys, m.keys)
	copy(out.values, m.values)

	for k, i := range m.index {
		out.index[k] = i
	}

	return out
}
