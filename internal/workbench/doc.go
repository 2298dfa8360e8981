// Package workbench drives synthetic operation mixes against the keyed
// containers.
//
// A Scenario describes one container (backing, capacity, policy) and the
// workload to run against it. The Runner executes the mix, paces it with a
// rate limiter, and reports per-operation counters. Live containers are
// published through a Registry so the metrics collector can scrape entry
// counts at any time.
package workbench
