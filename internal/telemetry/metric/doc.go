// Package metric provides Prometheus metrics for the mapkit workbench.
//
// It exposes operation rates, run durations, and per-container gauges
// (entries, capacity, rejected inserts) in Prometheus format.
package metric
