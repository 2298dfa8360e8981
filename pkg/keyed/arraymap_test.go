package keyed

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkArrayMapInvariant asserts the structural invariant of ArrayMap: the
// index, key slice, and value slice agree in size, and every indexed
// position round-trips to its key.
func checkArrayMapInvariant[K comparable, V any](t *testing.T, m *ArrayMap[K, V]) {
	t.Helper()

	require.Equal(t, len(m.keys), len(m.values), "keys and values must stay parallel")
	require.Equal(t, len(m.keys), len(m.index), "index must cover every slot exactly once")

	for k, i := range m.index {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, len(m.keys))
		require.Equal(t, k, m.keys[i], "index position must round-trip to its key")
	}
}

func TestArrayMap_PutGetRemove(t *testing.T) {
	t.Parallel()

	m := NewArrayMap[string, int]()

	_, ok := m.Get("missing")
	assert.False(t, ok, "Get on a missing key must report absence")
	assert.False(t, m.Has("missing"))
	assert.Equal(t, 0, m.Len())

	prev, existed, err := m.Put("a", 1)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Zero(t, prev)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	// Update in place: size must not change and the previous value returns.
	prev, existed, err = m.Put("a", 2)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, 1, prev)
	assert.Equal(t, 1, m.Len())

	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"), "second Remove must be a no-op")
	assert.Equal(t, 0, m.Len())

	checkArrayMapInvariant(t, m)
}

func TestArrayMap_SwapRemoval(t *testing.T) {
	t.Parallel()

	m := NewArrayMap[string, int]()

	for i, k := range []string{"a", "b", "c", "d"} {
		_, _, err := m.Put(k, i)
		require.NoError(t, err)
	}

	// Removing a middle slot moves the last slot into the hole.
	require.True(t, m.Remove("b"))
	checkArrayMapInvariant(t, m)

	assert.Equal(t, 3, m.Len())
	assert.False(t, m.Has("b"))

	got, ok := m.Get("d")
	require.True(t, ok, "the moved entry must stay reachable")
	assert.Equal(t, 3, got)

	// Removing the final slot must not move anything.
	require.True(t, m.Remove("c"))
	checkArrayMapInvariant(t, m)

	// Removing down to empty.
	require.True(t, m.Remove("a"))
	require.True(t, m.Remove("d"))
	checkArrayMapInvariant(t, m)
	assert.Equal(t, 0, m.Len())
}

func TestArrayMap_InsertionOrderUntilFirstRemoval(t *testing.T) {
	t.Parallel()

	m := NewArrayMap[string, int]()

	keys := []string{"w", "x", "y", "z"}
	for i, k := range keys {
		_, _, err := m.Put(k, i)
		require.NoError(t, err)
	}

	var seen []string

	m.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return true
	})

	assert.Equal(t, keys, seen, "order must be insertion order before any removal")

	// After a removal the order is unspecified, but every live entry must
	// still appear exactly once.
	require.True(t, m.Remove("x"))

	counts := make(map[string]int)
	m.Range(func(k string, _ int) bool {
		counts[k]++
		return true
	})

	assert.Equal(t, map[string]int{"w": 1, "y": 1, "z": 1}, counts)
}

func TestArrayMap_RangeEarlyStop(t *testing.T) {
	t.Parallel()

	m := NewArrayMapOf[string, int]([]Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	}, true)

	var visited int

	m.Range(func(string, int) bool {
		visited++
		return visited < 2
	})

	assert.Equal(t, 2, visited)
}

func TestArrayMap_SeedOverridePolicy(t *testing.T) {
	t.Parallel()

	pairs := []Entry[string, int]{
		{Key: "k", Value: 1},
		{Key: "k", Value: 2},
	}

	override := NewArrayMapOf(pairs, true)
	got, ok := override.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got, "override mode must keep the later duplicate")
	assert.Equal(t, 1, override.Len())

	keepFirst := NewArrayMapOf(pairs, false)
	got, ok = keepFirst.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, got, "keep-first mode must keep the earlier duplicate")
	assert.Equal(t, 1, keepFirst.Len())
}

func TestArrayMap_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	m := NewArrayMap[string, int]()
	for i := range 5 {
		_, _, err := m.Put(fmt.Sprintf("k%d", i), i)
		require.NoError(t, err)
	}

	clone := m.Clone()

	require.True(t, clone.Remove("k0"))
	_, _, err := clone.Put("extra", 99)
	require.NoError(t, err)

	assert.True(t, m.Has("k0"), "mutating the clone must not touch the original")
	assert.False(t, m.Has("extra"))
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, 5, clone.Len())
}

func TestArrayMap_Clear(t *testing.T) {
	t.Parallel()

	m := NewArrayMap[int, string]()
	for i := range 4 {
		_, _, err := m.Put(i, "v")
		require.NoError(t, err)
	}

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has(0))
	checkArrayMapInvariant(t, m)

	// The map must stay usable after Clear.
	_, _, err := m.Put(7, "again")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

// TestArrayMap_InvariantUnderRandomOps hammers the structure with a random
// insert/update/remove mix and re-checks the index invariant after every
// mutation.
func TestArrayMap_InvariantUnderRandomOps(t *testing.T) {
	t.Parallel()

	var (
		m   = NewArrayMap[int, int]()
		ref = make(map[int]int)
		rng = rand.New(rand.NewPCG(42, 7))
	)

	for range 2000 {
		key := int(rng.IntN(64))

		switch rng.IntN(3) {
		case 0, 1:
			value := int(rng.IntN(1000))

			_, _, err := m.Put(key, value)
			require.NoError(t, err)

			ref[key] = value
		case 2:
			_, expected := ref[key]
			assert.Equal(t, expected, m.Remove(key))
			delete(ref, key)
		}

		checkArrayMapInvariant(t, m)
		require.Equal(t, len(ref), m.Len())
	}

	for k, v := range ref {
		got, ok := m.Get(k)
		require.True(t, ok, "key %d must survive the op sequence", k)
		assert.Equal(t, v, got)
	}
}
