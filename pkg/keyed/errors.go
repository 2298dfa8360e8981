// Package keyed provides enhanced keyed-storage containers.
package keyed

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded matches any *CapacityError via errors.Is.
	ErrCapacityExceeded = errors.New("keyed: capacity exceeded")

	// ErrInvalidCapacity is returned by NewBounded when the requested
	// capacity is not a positive integer.
	ErrInvalidCapacity = errors.New("keyed: capacity must be a positive integer")
)

// CapacityError reports a new-key insertion rejected by a Bounded store.
// It carries the configured capacity and the rejected key. Lenient is set
// when the rejecting store is in lenient mode; Map operations absorb
// lenient rejections and report the key as absent, so callers of Map only
// ever observe strict rejections.
type CapacityError struct {
	Capacity int
	Key      any
	Lenient  bool
}

// Error implements the error interface.
func (e *CapacityError) Error() string {
	return fmt.Sprintf("keyed: capacity exceeded (capacity %d, key %v)", e.Capacity, e.Key)
}

// Is makes errors.Is(err, ErrCapacityExceeded) hold for CapacityError values.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// lenientRejection reports whether err is a capacity rejection from a
// lenient Bounded store. Map operations treat such a rejection as a skipped
// insert rather than a failure.
func lenientRejection(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce) && ce.Lenient
}
