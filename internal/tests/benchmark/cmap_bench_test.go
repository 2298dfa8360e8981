package benchmark

import (
	"fmt"
	"testing"

	"github.com/yndnr/mapkit-go/pkg/cmap"
)

func benchStrategy(s cmap.HashStrategy) string {
	if s == cmap.HashMurmur {
		return "murmur"
	}
	return "xxhash"
}

func BenchmarkCmapSetParallel(b *testing.B) {
	for _, strategy := range []cmap.HashStrategy{cmap.HashXX, cmap.HashMurmur} {
		b.Run(benchStrategy(strategy), func(b *testing.B) {
			m := cmap.New[string, int64](cmap.WithHashStrategy(strategy))
			keys := benchKeys(10_000)
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					m.Set(keys[i%len(keys)], int64(i))
					i++
				}
			})
		})
	}
}

func BenchmarkCmapGetParallel(b *testing.B) {
	for _, count := range EntryCounts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			m := cmap.New[string, int64]()
			keys := benchKeys(count)
			for i, k := range keys {
				m.Set(k, int64(i))
			}
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					_, _ = m.Get(keys[i%count])
					i++
				}
			})
		})
	}
}
