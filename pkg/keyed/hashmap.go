// Package keyed provides enhanced keyed-storage containers.
package keyed

// HashMap is the baseline Store backing over a Go map.
//
// All operations are O(1) amortized. Range order is unspecified: the Go
// runtime randomizes map iteration, so HashMap promises nothing beyond
// "every live entry exactly once". Callers that care about ordering before
// removals should use ArrayMap.
type HashMap[K comparable, V any] struct {
	items map[K]V
}

// Compile-time interface check.
var _ Store[string, int] = (*HashMap[string, int])(nil)

// NewHashMap creates an empty HashMap.
func NewHashMap[K comparable, V any]() *HashMap[K, V] {
	return &HashMap[K, V]{
		items: make(map[K]V),
	}
}

// NewHashMapOf creates a HashMap seeded from pairs.
// Later duplicates override earlier ones when override is true; otherwise the
// first occurrence of a key wins.
func NewHashMapOf[K comparable, V any](pairs []Entry[K, V], override bool) *HashMap[K, V] {
	m := &HashMap[K, V]{
		items: make(map[K]V, len(pairs)),
	}
	seed[K, V](m, pairs, override)

	return m
}

// Get returns the value stored under key and whether the key exists.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *HashMap[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Put stores value under key, returning the previous value and whether the
// key already existed. The error is always nil.
func (m *HashMap[K, V]) Put(key K, value V) (V, bool, error) {
	prev, existed := m.items[key]
	m.items[key] = value

	return prev, existed, nil
}

// Remove deletes key, reporting whether it was present.
func (m *HashMap[K, V]) Remove(key K) bool {
	if _, ok := m.items[key]; !ok {
		return false
	}

	delete(m.items, key)

	return true
}

// Len returns the number of entries.
func (m *HashMap[K, V]) Len() int {
	return len(m.items)
}

// Clear removes all entries.
func (m *HashMap[K, V]) Clear() {
	m.items = make(map[K]V)
}

// Range calls fn for every entry until fn returns false.
// Order is unspecified.
func (m *HashMap[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range m.items {
		if !fn(k, v) {
			return
		}
	}
}

// Clone returns an independent copy.
func (m *HashMap[K, V]) Clone() Store[K, V] {
	out := make(map[K]V, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}

	return &HashMap[K, V]{items: out}
}
