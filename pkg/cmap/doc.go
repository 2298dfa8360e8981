// Package cmap provides a concurrent-safe sharded map.
//
// It uses sharding to reduce lock contention, providing better performance
// than sync.Map for high-concurrency workloads. Keys are routed to shards by
// a pluggable hash (xxHash by default, MurmurHash3 as an alternative).
//
// Unlike the single-writer containers in pkg/keyed, a cmap.Map may be read
// and written from many goroutines at once. The workbench uses it for its
// live container registry, which metric collectors read while runs mutate.
package cmap
