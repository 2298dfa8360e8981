// Package keyed provides enhanced keyed-storage containers.
package keyed

// Entry is a single key-value pair, used for seeding containers and for
// enumeration results.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Store is the minimal keyed-storage contract shared by all backings.
//
// General notes:
//
//   - Read-style methods (Get, Has, Len) are total and never fail; absence is
//     communicated through the boolean return, never through an error.
//   - Put returns a non-nil error only when a decorator rejects the mutation
//     on policy grounds (see Bounded in strict mode). Plain backings never
//     return an error.
//   - Stores are not safe for concurrent use. Callers that need concurrency
//     should look at pkg/cmap instead.
type Store[K comparable, V any] interface {
	// Get returns the value stored under key and whether the key exists.
	Get(key K) (V, bool)

	// Has reports whether key is present in the store.
	Has(key K) bool

	// Put stores value under key, overwriting any existing value.
	// It returns the previous value and whether the key already existed.
	Put(key K, value V) (prev V, existed bool, err error)

	// Remove deletes key from the store.
	// It returns false, without effect, if the key does not exist.
	Remove(key K) bool

	// Len returns the number of entries currently stored.
	Len() int

	// Clear removes all entries.
	Clear()

	// Range calls fn for every entry until fn returns false.
	//
	// Each call enumerates the live store state; a Range started after a
	// mutation observes it. Every live entry is visited exactly once per
	// call. Ordering is backing-specific: see HashMap and ArrayMap.
	//
	// fn must not mutate the store.
	Range(fn func(key K, value V) bool)

	// Clone returns an independent same-backing copy of the store.
	// Mutating the clone never affects the original.
	Clone() Store[K, V]
}

// seed fills s from pairs. When override is true (the default used by the
// package constructors), a later duplicate key overwrites an earlier one;
// otherwise the first occurrence wins.
func seed[K comparable, V any](s Store[K, V], pairs []Entry[K, V], override bool) {
	for _, p := range pairs {
		if !override && s.Has(p.Key) {
			continue
		}

		// Plain backings never fail Put.
		_, _, _ = s.Put(p.Key, p.Value)
	}
}
