// Package repl provides the interactive shell mode for mapkit-bench.
package repl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/yndnr/mapkit-go/pkg/keyed"
)

// ErrNoContainer is returned by commands that need a container before
// one was created with "new".
var ErrNoContainer = errors.New("no container; create one with: new hash|array [capacity] [strict]")

// Session holds the shell's current container.
//
// Values are strings; the empty string is the null value, so a key set
// to "" is recorded but unusable and behaves as absent in conditional
// commands.
type Session struct {
	m       *keyed.Map[string, string]
	backing string
	bounded bool
}

// NewSession creates a session without a container.
func NewSession() *Session {
	return &Session{}
}

// Create replaces the session's container.
func (s *Session) Create(backing string, capacity int, strict bool) error {
	var store keyed.Store[string, string]

	switch backing {
	case "hash":
		store = keyed.NewHashMap[string, string]()
	case "array":
		store = keyed.NewArrayMap[string, string]()
	default:
		return fmt.Errorf("unknown backing %q (want hash or array)", backing)
	}

	if capacity > 0 {
		opts := []keyed.BoundedOption[string, string]{
			keyed.WithSink[string, string](keyed.DiscardSink()),
		}
		if strict {
			opts = append(opts, keyed.WithStrict[string, string]())
		}

		bounded, err := keyed.NewBounded(store, capacity, opts...)
		if err != nil {
			return err
		}
		store = bounded
	}

	s.m = keyed.New(
		keyed.WithStore[string, string](store),
		keyed.WithNull[string, string](func(v string) bool { return v == "" }),
	)
	s.backing = backing
	s.bounded = capacity > 0

	return nil
}

// Map returns the current container, or an error when none exists.
func (s *Session) Map() (*keyed.Map[string, string], error) {
	if s.m == nil {
		return nil, ErrNoContainer
	}

	return s.m, nil
}

// Describe returns a one-line summary of the container.
func (s *Session) Describe() string {
	if s.m == nil {
		return "no container"
	}

	desc := s.backing + ", " + strconv.Itoa(s.m.Len()) + " entries"
	if s.bounded {
		desc += ", bounded"
	}

	return desc
}

// SortedKeys returns the container's keys in sorted order.
func (s *Session) SortedKeys() []string {
	if s.m == nil {
		return nil
	}

	keys := make([]string, 0, s.m.Len())
	s.m.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)

	return keys
}
