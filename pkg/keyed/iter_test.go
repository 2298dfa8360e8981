package keyed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderedMap(t *testing.T) *Map[string, int] {
	t.Helper()

	m := New[string, int](WithStore[string, int](NewArrayMap[string, int]()))
	for _, e := range []Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	} {
		require.NoError(t, m.Set(e.Key, e.Value))
	}

	return m
}

func TestMap_KeysValuesEntries(t *testing.T) {
	t.Parallel()

	m := newOrderedMap(t)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, []int{1, 2, 3}, m.Values())
	assert.Equal(t, []Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	}, m.Entries())
}

func TestMap_ForEach(t *testing.T) {
	t.Parallel()

	m := newOrderedMap(t)

	sum := 0
	m.ForEach(func(v int, _ string) {
		sum += v
	})

	assert.Equal(t, 6, sum)
}

func TestMap_Find(t *testing.T) {
	t.Parallel()

	m := newOrderedMap(t)

	k, v, found := m.Find(func(v int, _ string) bool { return v > 1 })
	require.True(t, found)
	assert.Equal(t, "b", k, "Find must return the first match in Range order")
	assert.Equal(t, 2, v)

	_, _, found = m.Find(func(v int, _ string) bool { return v > 100 })
	assert.False(t, found)
}

func TestMap_EverySome(t *testing.T) {
	t.Parallel()

	m := newOrderedMap(t)

	assert.True(t, m.Every(func(v int, _ string) bool { return v > 0 }))
	assert.False(t, m.Every(func(v int, _ string) bool { return v > 1 }))
	assert.True(t, m.Some(func(v int, _ string) bool { return v == 3 }))
	assert.False(t, m.Some(func(v int, _ string) bool { return v == 99 }))

	empty := New[string, int]()
	assert.True(t, empty.Every(func(int, string) bool { return false }),
		"Every must hold vacuously on an empty container")
	assert.False(t, empty.Some(func(int, string) bool { return true }))
}

func TestMap_Filter(t *testing.T) {
	t.Parallel()

	m := newOrderedMap(t)

	odd := m.Filter(func(v int, _ string) bool { return v%2 == 1 })

	assert.Equal(t, []string{"a", "c"}, odd.Keys())
	assert.Equal(t, 3, m.Len(), "Filter must not mutate the source")

	// The filtered map keeps the backing variant: ArrayMap gives insertion
	// order.
	require.NoError(t, odd.Set("z", 9))
	assert.Equal(t, []string{"a", "c", "z"}, odd.Keys())
}

func TestMap_FilterKeepsBoundedPolicy(t *testing.T) {
	t.Parallel()

	b, err := NewBounded[string, int](nil, 2, WithStrict[string, int]())
	require.NoError(t, err)

	m := New[string, int](WithStore[string, int](b))
	require.NoError(t, m.Set("a", 1))
	require.NoError(t, m.Set("b", 2))

	all := m.Filter(func(int, string) bool { return true })
	assert.Equal(t, 2, all.Len())

	// The filtered container inherits the strict capacity of the source.
	err = all.Set("c", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}
