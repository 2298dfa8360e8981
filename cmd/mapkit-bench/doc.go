// Package main provides the entry point for mapkit-bench.
//
// mapkit-bench runs configurable workloads against the mapkit keyed
// containers:
//
//   - hash- or array-backed containers, optionally capacity-bounded
//   - deterministic operation mixes driven by a seed
//   - per-operation counters and capacity-rejection reporting
//   - Prometheus metrics for live runs
//
// Usage:
//
//	mapkit-bench run [flags]
//	mapkit-bench --config /path/to/bench.yaml run
//	mapkit-bench watch
//
// The run command executes the configured scenarios once; watch reruns
// them whenever the config file changes.
package main
