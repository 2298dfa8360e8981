// Package cmap provides a concurrent-safe sharded map.
package cmap

import (
	"fmt"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// HashStrategy selects the function used to route keys to shards.
type HashStrategy int

const (
	// HashXX routes keys with xxHash (the default).
	HashXX HashStrategy = iota

	// HashMurmur routes keys with MurmurHash3.
	HashMurmur
)

// hashFunc maps a key's byte representation to a 64-bit hash.
type hashFunc func([]byte) uint64

// Map is a concurrent-safe sharded map.
type Map[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
	hash      hashFunc
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// Option configures a Map.
type Option func(*options)

type options struct {
	shardCount int
	strategy   HashStrategy
}

// WithShards sets the shard count. shardCount must be a power of 2; invalid
// values fall back to DefaultShardCount.
func WithShards(shardCount int) Option {
	return func(o *options) {
		o.shardCount = shardCount
	}
}

// WithHashStrategy selects the shard-routing hash.
func WithHashStrategy(strategy HashStrategy) Option {
	return func(o *options) {
		o.strategy = strategy
	}
}

// New creates a new sharded map.
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	o := options{
		shardCount: DefaultShardCount,
		strategy:   HashXX,
	}

	for _, opt := range opts {
		opt(&o)
	}

	// Ensure shardCount is a power of 2
	if o.shardCount <= 0 || o.shardCount&(o.shardCount-1) != 0 {
		o.shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], o.shardCount),
		shardMask: uint64(o.shardCount - 1),
		hash:      hashFor(o.strategy),
	}

	for i := 0; i < o.shardCount; i++ {
		m.shards[i] = &shard[K, V]{
			items: make(map[K]V),
		}
	}

	return m
}

// hashFor returns the hash function for a strategy.
func hashFor(strategy HashStrategy) hashFunc {
	switch strategy {
	case HashMurmur:
		return func(b []byte) uint64 { return murmur3.Sum64(b) }
	default:
		return xxhash.Sum64
	}
}

// getShard returns the shard for a key.
// String keys skip the fmt round-trip.
func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	if s, ok := any(key).(string); ok {
		return m.shards[m.hash([]byte(s))&m.shardMask]
	}

	return m.shards[m.hash(fmt.Appendf(nil, "%v", key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[key] = value
}

// Delete removes a key.
func (m *Map[K, V]) Delete(key K) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.items, key)
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

// Clear removes all items.
func (m *Map[K, V]) Clear() {
	for _, shard := range m.shards {
		shard.mu.Lock()
		shard.items = make(map[K]V)
		shard.mu.Unlock()
	}
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// ShardStats describes the occupancy of a single shard.
type ShardStats struct {
	Index int
	Count int
}

// Stats returns statistics about all shards.
func (m *Map[K, V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, shard := range m.shards {
		shard.mu.RLock()
		stats[i] = ShardStats{
			Index: i,
			Count: len(shard.items),
		}
		shard.mu.RUnlock()
	}
	return stats
}
