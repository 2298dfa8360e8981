// Package keyed provides enhanced keyed-storage containers.
package keyed

// Keys returns all keys in Range order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

// Values returns all values in Range order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Range(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})

	return values
}

// Entries returns all key-value pairs in Range order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.Len())
	m.Range(func(key K, value V) bool {
		entries = append(entries, Entry[K, V]{Key: key, Value: value})
		return true
	})

	return entries
}

// ForEach calls fn for every entry.
func (m *Map[K, V]) ForEach(fn func(value V, key K)) {
	m.Range(func(key K, value V) bool {
		fn(value, key)
		return true
	})
}

// Find returns the first entry (in Range order) satisfying pred.
func (m *Map[K, V]) Find(pred func(value V, key K) bool) (K, V, bool) {
	var (
		foundKey   K
		foundValue V
		found      bool
	)

	m.Range(func(key K, value V) bool {
		if pred(value, key) {
			foundKey, foundValue, found = key, value, true
			return false
		}

		return true
	})

	return foundKey, foundValue, found
}

// Every reports whether all entries satisfy pred. It is true for an empty
// container.
func (m *Map[K, V]) Every(pred func(value V, key K) bool) bool {
	ok := true

	m.Range(func(key K, value V) bool {
		if !pred(value, key) {
			ok = false
			return false
		}

		return true
	})

	return ok
}

// Some reports whether at least one entry satisfies pred.
func (m *Map[K, V]) Some(pred func(value V, key K) bool) bool {
	_, _, found := m.Find(pred)
	return found
}

// Filter returns a new Map, over the same backing variant, holding the
// entries that satisfy pred.
func (m *Map[K, V]) Filter(pred func(value V, key K) bool) *Map[K, V] {
	// Clone-then-clear yields an empty store of the same variant (and, for
	// Bounded backings, the same policy).
	store := m.store.Clone()
	store.Clear()

	out := &Map[K, V]{
		store:  store,
		isNull: m.isNull,
		equals: m.equals,
	}

	m.Range(func(key K, value V) bool {
		if pred(value, key) {
			_, _, _ = store.Put(key, value)
		}

		return true
	})

	return out
}
