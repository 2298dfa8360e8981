// Package keyed provides enhanced keyed-storage containers.
package keyed

import "fmt"

// Bounded decorates a Store with a fixed entry-count capacity.
//
// The capacity guards new-key insertion only: updates to existing keys
// always delegate, regardless of the current size. The policy for a rejected
// insertion is fixed at construction:
//
//   - strict: Put returns a *CapacityError and performs no mutation;
//   - lenient (default): Put skips the insertion, reports the rejection
//     through the configured DiagnosticSink, and returns a *CapacityError
//     with Lenient set so callers can tell the skip apart from a
//     successful insert. Map operations absorb lenient rejections and
//     report the key as absent.
type Bounded[K comparable, V any] struct {
	inner    Store[K, V]
	capacity int
	strict   bool
	sink     DiagnosticSink
}

// Compile-time interface check.
var _ Store[string, int] = (*Bounded[string, int])(nil)

// BoundedOption configures a Bounded store.
type BoundedOption[K comparable, V any] func(*Bounded[K, V])

// WithStrict makes rejected insertions fail with a *CapacityError instead of
// being silently skipped.
func WithStrict[K comparable, V any]() BoundedOption[K, V] {
	return func(b *Bounded[K, V]) {
		b.strict = true
	}
}

// WithSink sets the DiagnosticSink notified on lenient-mode rejections.
// The default sink logs through slog.Default().
func WithSink[K comparable, V any](sink DiagnosticSink) BoundedOption[K, V] {
	return func(b *Bounded[K, V]) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// NewBounded wraps inner with a capacity bound. A nil inner store defaults
// to a fresh HashMap. NewBounded returns ErrInvalidCapacity when capacity is
// not a positive integer.
func NewBounded[K comparable, V any](inner Store[K, V], capacity int, opts ...BoundedOption[K, V]) (*Bounded[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	if inner == nil {
		inner = NewHashMap[K, V]()
	}

	b := &Bounded[K, V]{
		inner:    inner,
		capacity: capacity,
		sink:     NewSlogSink(nil),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Capacity returns the configured capacity.
func (b *Bounded[K, V]) Capacity() int {
	return b.capacity
}

// Strict reports whether rejected insertions fail rather than being skipped.
func (b *Bounded[K, V]) Strict() bool {
	return b.strict
}

// Get returns the value stored under key and whether the key exists.
func (b *Bounded[K, V]) Get(key K) (V, bool) {
	return b.inner.Get(key)
}

// Has reports whether key is present.
func (b *Bounded[K, V]) Has(key K) bool {
	return b.inner.Has(key)
}

// Put stores value under key, enforcing the capacity bound on new keys.
func (b *Bounded[K, V]) Put(key K, value V) (V, bool, error) {
	// Updates never count against capacity.
	if b.inner.Has(key) {
		return b.inner.Put(key, value)
	}

	if b.inner.Len() >= b.capacity {
		var zero V

		if b.strict {
			return zero, false, &CapacityError{Capacity: b.capacity, Key: key}
		}

		b.sink.RejectedInsert(key, b.capacity)

		return zero, false, &CapacityError{Capacity: b.capacity, Key: key, Lenient: true}
	}

	return b.inner.Put(key, value)
}

// Remove deletes key, reporting whether it was present.
func (b *Bounded[K, V]) Remove(key K) bool {
	return b.inner.Remove(key)
}

// Len returns the number of entries.
func (b *Bounded[K, V]) Len() int {
	return b.inner.Len()
}

// Clear removes all entries.
func (b *Bounded[K, V]) Clear() {
	b.inner.Clear()
}

// Range calls fn for every entry until fn returns false.
func (b *Bounded[K, V]) Range(fn func(key K, value V) bool) {
	b.inner.Range(fn)
}

// Clone returns an independent copy with the same capacity, policy, and
// sink over a clone of the inner store.
func (b *Bounded[K, V]) Clone() Store[K, V] {
	return &Bounded[K, V]{
		inner:    b.inner.Clone(),
		capacity: b.capacity,
		strict:   b.strict,
		sink:     b.sink,
	}
}
