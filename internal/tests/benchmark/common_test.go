package benchmark

import (
	"fmt"

	"github.com/yndnr/mapkit-go/pkg/keyed"
)

// EntryCounts are the container sizes benchmarked across all suites.
var EntryCounts = []int{100, 1_000, 10_000, 100_000}

// benchKey builds a deterministic key for index i.
func benchKey(i int) string {
	return fmt.Sprintf("k%08d", i)
}

// benchKeys pre-builds n keys so key construction stays out of the
// measured loop.
func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = benchKey(i)
	}
	return keys
}

// fillStore seeds a store with n entries and returns the keys used.
func fillStore(s keyed.Store[string, int64], n int) []string {
	keys := benchKeys(n)
	for i, k := range keys {
		_, _, _ = s.Put(k, int64(i))
	}
	return keys
}

// fillMap seeds a map view with n entries, marking every 16th value
// as a tombstone so sweep benchmarks have something to collect.
func fillMap(m *keyed.Map[string, int64], n int) []string {
	keys := benchKeys(n)
	for i, k := range keys {
		v := int64(i)
		if i%16 == 0 {
			v = -1
		}
		_ = m.Set(k, v)
	}
	return keys
}
