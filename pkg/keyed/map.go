// Package keyed provides enhanced keyed-storage containers.
package keyed

import "reflect"

// NullFunc reports whether a stored value counts as unusable. A key whose
// value satisfies the predicate behaves like a missing key in every
// conditional operation (the value is "recorded but unusable").
type NullFunc[V any] func(V) bool

// EqualFunc compares two values for the equality-gated operations
// (CompareAndSwapValue, RemoveIfEquals).
type EqualFunc[V any] func(a, b V) bool

// Map layers the atomic update-operation family over a Store.
//
// Absence semantics: a key is absent when it is missing from the backing
// store or when its value satisfies the configured null predicate. All
// conditional operations branch on exactly this rule.
//
// Operations that can insert a new key (Set, Compute, ComputeIfAbsent,
// Merge, SetIfAbsent) surface the backing store's Put error, which is
// non-nil only when the backing is a strict Bounded store at capacity.
// Reads and removals are total.
type Map[K comparable, V any] struct {
	store  Store[K, V]
	isNull NullFunc[V]
	equals EqualFunc[V]
}

// Option configures a Map.
type Option[K comparable, V any] func(*Map[K, V])

// WithStore sets the backing store. The default is a fresh HashMap.
func WithStore[K comparable, V any](s Store[K, V]) Option[K, V] {
	return func(m *Map[K, V]) {
		if s != nil {
			m.store = s
		}
	}
}

// WithNull sets the null predicate. The default considers nothing null.
func WithNull[K comparable, V any](fn NullFunc[V]) Option[K, V] {
	return func(m *Map[K, V]) {
		if fn != nil {
			m.isNull = fn
		}
	}
}

// WithEquals sets the value-equality function used by CompareAndSwapValue
// and RemoveIfEquals. The default is reflect.DeepEqual.
func WithEquals[K comparable, V any](fn EqualFunc[V]) Option[K, V] {
	return func(m *Map[K, V]) {
		if fn != nil {
			m.equals = fn
		}
	}
}

// New creates a Map over a fresh HashMap, unless WithStore overrides the
// backing.
func New[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		store:  NewHashMap[K, V](),
		isNull: func(V) bool { return false },
		equals: func(a, b V) bool { return reflect.DeepEqual(a, b) },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// From creates a Map seeded from pairs. Later duplicate keys override
// earlier ones; see FromKeepFirst for the opposite policy.
func From[K comparable, V any](pairs []Entry[K, V], opts ...Option[K, V]) *Map[K, V] {
	m := New[K, V](opts...)
	seed[K, V](m.store, pairs, true)

	return m
}

// FromKeepFirst creates a Map seeded from pairs where the first occurrence
// of a duplicate key wins.
func FromKeepFirst[K comparable, V any](pairs []Entry[K, V], opts ...Option[K, V]) *Map[K, V] {
	m := New[K, V](opts...)
	seed[K, V](m.store, pairs, false)

	return m
}

// Store exposes the backing store.
func (m *Map[K, V]) Store() Store[K, V] {
	return m.store
}

// lookup resolves key under the absence rule: ok is true only when the key
// exists and its value is usable. A null value reports (zero, false).
func (m *Map[K, V]) lookup(key K) (V, bool) {
	v, ok := m.store.Get(key)
	if !ok || m.isNull(v) {
		var zero V
		return zero, false
	}

	return v, true
}

// Get returns the raw stored value and whether the key exists. The null
// predicate is not applied; use GetUsable for absence-rule reads.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.store.Get(key)
}

// GetUsable returns the value under the absence rule: a missing key and a
// null value both report (zero, false).
func (m *Map[K, V]) GetUsable(key K) (V, bool) {
	return m.lookup(key)
}

// Has reports whether key is present, null values included.
func (m *Map[K, V]) Has(key K) bool {
	return m.store.Has(key)
}

// Set stores value under key unconditionally. A lenient capacity
// rejection is absorbed: the insert is skipped and Set returns nil.
func (m *Map[K, V]) Set(key K, value V) error {
	_, _, err := m.store.Put(key, value)
	if lenientRejection(err) {
		return nil
	}

	return err
}

// Put stores value under key, returning the previous value and whether the
// key already existed. A lenient capacity rejection is absorbed and
// reported as (zero, false, nil).
func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	prev, existed, err := m.store.Put(key, value)
	if lenientRejection(err) {
		var zero V
		return zero, false, nil
	}

	return prev, existed, err
}

// Remove deletes key, reporting whether it was present.
func (m *Map[K, V]) Remove(key K) bool {
	return m.store.Remove(key)
}

// RemoveIfEquals deletes key only when it is present and its current value
// equals expected. It reports whether a deletion occurred.
func (m *Map[K, V]) RemoveIfEquals(key K, expected V) bool {
	current, ok := m.store.Get(key)
	if !ok || !m.equals(current, expected) {
		return false
	}

	return m.store.Remove(key)
}

// Len returns the number of entries, null values included.
func (m *Map[K, V]) Len() int {
	return m.store.Len()
}

// IsEmpty reports whether the container has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.store.Len() == 0
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.store.Clear()
}

// Range calls fn for every entry until fn returns false. Ordering follows
// the backing store's contract.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.store.Range(fn)
}

// Clone returns an independent Map over a clone of the backing store, with
// the same null predicate and equality function.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		store:  m.store.Clone(),
		isNull: m.isNull,
		equals: m.equals,
	}
}

// Compute always calls fn with the current value (zero when absent) and a
// flag reporting whether the key held a usable value. An absent result
// (keep=false, or a value satisfying the null predicate) removes the key and
// reports (zero, false); otherwise the result is stored and returned.
func (m *Map[K, V]) Compute(key K, fn func(key K, old V, present bool) (V, bool)) (V, bool, error) {
	old, present := m.lookup(key)

	next, keep := fn(key, old, present)
	if !keep || m.isNull(next) {
		m.store.Remove(key)

		var zero V

		return zero, false, nil
	}

	if _, _, err := m.store.Put(key, next); err != nil {
		var zero V
		if lenientRejection(err) {
			return zero, false, nil
		}

		return zero, false, err
	}

	return next, true, nil
}

// ComputeIfAbsent calls fn and stores its result only when key is absent
// under the absence rule; an existing usable value is returned unchanged and
// fn is not invoked. A null result from fn is not stored.
func (m *Map[K, V]) ComputeIfAbsent(key K, fn func(key K) V) (V, error) {
	if v, ok := m.lookup(key); ok {
		return v, nil
	}

	v := fn(key)
	if m.isNull(v) {
		return v, nil
	}

	if _, _, err := m.store.Put(key, v); err != nil {
		var zero V
		if lenientRejection(err) {
			return zero, nil
		}

		return zero, err
	}

	return v, nil
}

// ComputeIfPresent calls fn only when key holds a usable value. An absent
// result removes the key and reports (zero, false); a present result is
// stored and returned. When the key is already absent, fn is not invoked.
func (m *Map[K, V]) ComputeIfPresent(key K, fn func(key K, old V) (V, bool)) (V, bool, error) {
	old, present := m.lookup(key)
	if !present {
		var zero V
		return zero, false, nil
	}

	next, keep := fn(key, old)
	if !keep || m.isNull(next) {
		m.store.Remove(key)

		var zero V

		return zero, false, nil
	}

	// The key exists, so Put cannot hit a capacity bound.
	if _, _, err := m.store.Put(key, next); err != nil {
		var zero V
		return zero, false, err
	}

	return next, true, nil
}

// Merge stores value directly when key is absent under the absence rule,
// without invoking fn. Otherwise it calls fn(old, value): an absent result
// removes the key and reports (zero, false); a present result is stored and
// returned.
func (m *Map[K, V]) Merge(key K, value V, fn func(old, incoming V) (V, bool)) (V, bool, error) {
	old, present := m.lookup(key)
	if !present {
		if _, _, err := m.store.Put(key, value); err != nil {
			var zero V
			if lenientRejection(err) {
				return zero, false, nil
			}

			return zero, false, err
		}

		return value, true, nil
	}

	next, keep := fn(old, value)
	if !keep || m.isNull(next) {
		m.store.Remove(key)

		var zero V

		return zero, false, nil
	}

	if _, _, err := m.store.Put(key, next); err != nil {
		var zero V
		return zero, false, err
	}

	return next, true, nil
}

// SetIfAbsent stores value when key is absent under the absence rule.
//
// Return contract, preserving the distinction between the two kinds of
// absence:
//
//   - key missing: value is stored; (value, true) is returned;
//   - key present but null: value is stored; the prior null value is
//     returned with true, so callers can tell "recorded but unusable" from
//     "missing" by applying the null predicate to the result;
//   - key usable: nothing changes; (existing, false) is returned.
//
// A lenient capacity rejection skips the insert and reports
// (zero, false, nil), so stored=true always means the value is in the
// store.
func (m *Map[K, V]) SetIfAbsent(key K, value V) (V, bool, error) {
	current, exists := m.store.Get(key)
	if exists && !m.isNull(current) {
		return current, false, nil
	}

	if _, _, err := m.store.Put(key, value); err != nil {
		var zero V
		if lenientRejection(err) {
			return zero, false, nil
		}

		return zero, false, err
	}

	if exists {
		return current, true, nil
	}

	return value, true, nil
}

// ReplaceValue replaces the value under key only when the key exists, null
// values included. It returns the prior value and whether a replacement
// occurred; no insertion ever happens.
func (m *Map[K, V]) ReplaceValue(key K, value V) (V, bool) {
	old, exists := m.store.Get(key)
	if !exists {
		var zero V
		return zero, false
	}

	// The key exists, so Put cannot hit a capacity bound.
	_, _, _ = m.store.Put(key, value)

	return old, true
}

// CompareAndSwapValue replaces the value under key only when the key exists
// and its current value equals old. It reports whether the swap occurred.
func (m *Map[K, V]) CompareAndSwapValue(key K, old, next V) bool {
	current, exists := m.store.Get(key)
	if !exists || !m.equals(current, old) {
		return false
	}

	_, _, _ = m.store.Put(key, next)

	return true
}

// Sweep removes every entry whose value satisfies pred and returns the
// removed values in the traversal order of a key snapshot taken before any
// removal. Taking the snapshot first keeps the sweep immune to the
// swap-removal order disruption of ArrayMap: no entry is skipped or visited
// twice.
func (m *Map[K, V]) Sweep(pred func(value V, key K) bool) []V {
	snapshot := make([]K, 0, m.store.Len())
	m.store.Range(func(k K, _ V) bool {
		snapshot = append(snapshot, k)
		return true
	})

	var removed []V

	for _, k := range snapshot {
		v, ok := m.store.Get(k)
		if !ok || !pred(v, k) {
			continue
		}

		if m.store.Remove(k) {
			removed = append(removed, v)
		}
	}

	return removed
}
