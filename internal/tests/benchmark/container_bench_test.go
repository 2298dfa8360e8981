package benchmark

import (
	"fmt"
	"testing"

	"github.com/yndnr/mapkit-go/pkg/keyed"
)

func BenchmarkHashMapPut(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			keys := benchKeys(count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m := keyed.NewHashMap[string, int64]()
				for j, k := range keys {
					_, _, _ = m.Put(k, int64(j))
				}
			}
		})
	}
}

func BenchmarkArrayMapPut(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			keys := benchKeys(count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m := keyed.NewArrayMap[string, int64]()
				for j, k := range keys {
					_, _, _ = m.Put(k, int64(j))
				}
			}
		})
	}
}

func BenchmarkHashMapGet(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			m := keyed.NewHashMap[string, int64]()
			keys := fillStore(m, count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m.Get(keys[i%count])
			}
		})
	}
}

func BenchmarkArrayMapGet(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			m := keyed.NewArrayMap[string, int64]()
			keys := fillStore(m, count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m.Get(keys[i%count])
			}
		})
	}
}

func BenchmarkArrayMapRemove(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			base := keyed.NewArrayMap[string, int64]()
			keys := fillStore(base, count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				m := base.Clone()
				b.StartTimer()
				for _, k := range keys {
					m.Remove(k)
				}
			}
		})
	}
}

func BenchmarkMapSweep(b *testing.B) {
	isTombstone := func(v int64) bool { return v < 0 }
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			base := keyed.New(
				keyed.WithStore[string, int64](keyed.NewHashMap[string, int64]()),
				keyed.WithNull[string, int64](isTombstone),
			)
			fillMap(base, count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				m := keyed.New(
					keyed.WithStore[string, int64](base.Store().Clone()),
					keyed.WithNull[string, int64](isTombstone),
				)
				b.StartTimer()
				_ = m.Sweep(func(v int64, _ string) bool { return isTombstone(v) })
			}
		})
	}
}

func BenchmarkBoundedPut(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			keys := benchKeys(count)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				inner := keyed.NewHashMap[string, int64]()
				m, _ := keyed.NewBounded[string, int64](inner, count)
				for j, k := range keys {
					_, _, _ = m.Put(k, int64(j))
				}
			}
		})
	}
}
