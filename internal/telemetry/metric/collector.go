// Package metric provides Prometheus metrics for the mapkit workbench.
package metric

import "github.com/prometheus/client_golang/prometheus"

// Snapshot is a point-in-time view of one container.
type Snapshot struct {
	// Container is the container's registered name.
	Container string
	// Backing names the storage variant ("hash" or "array").
	Backing string
	// Entries is the current number of stored entries.
	Entries int
	// Capacity is the configured bound, or 0 when unbounded.
	Capacity int
}

// Source yields snapshots of all live containers.
type Source interface {
	Snapshots() []Snapshot
}

// Collector exposes container gauges from a Source.
//
// Gauges are read at scrape time, so entry counts are always current
// without the containers pushing updates.
type Collector struct {
	source Source

	entriesDesc  *prometheus.Desc
	capacityDesc *prometheus.Desc
}

// NewCollector creates a collector over the given snapshot source.
func NewCollector(src Source) *Collector {
	return &Collector{
		source: src,
		entriesDesc: prometheus.NewDesc(
			namespace+"_container_entries",
			"Current number of entries in a container.",
			[]string{"container", "backing"}, nil,
		),
		capacityDesc: prometheus.NewDesc(
			namespace+"_container_capacity",
			"Configured capacity of a bounded container.",
			[]string{"container"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entriesDesc
	ch <- c.capacityDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, snap := range c.source.Snapshots() {
		ch <- prometheus.MustNewConstMetric(
			c.entriesDesc, prometheus.GaugeValue,
			float64(snap.Entries), snap.Container, snap.Backing,
		)
		if snap.Capacity > 0 {
			ch <- prometheus.MustNewConstMetric(
				c.capacityDesc, prometheus.GaugeValue,
				float64(snap.Capacity), snap.Container,
			)
		}
	}
}
