// Package keyed provides enhanced keyed-storage containers.
//
// The package separates three concerns:
//
//   - Store is the minimal get/has/put/remove/enumerate contract. Two
//     backings are provided: HashMap (Go map, no order guarantee) and
//     ArrayMap (parallel key/value slices with an O(1) swap-removal index).
//   - Map layers an atomic update-operation family (Compute, Merge,
//     SetIfAbsent, CompareAndSwapValue, Sweep, ...) over any Store, together
//     with a configurable "null" predicate that makes a recorded-but-unusable
//     value behave like a missing key in every conditional operation.
//   - Bounded decorates any Store with a fixed entry-count capacity that
//     guards new-key insertion only.
//
// Containers are single-writer: no internal locking is performed, and
// callbacks passed to Compute, ComputeIfPresent, Merge, or Sweep must not
// mutate the container they were invoked from.
package keyed
