// Package workbench drives synthetic operation mixes against the keyed
// containers.
package workbench

import (
	"sort"

	"github.com/yndnr/mapkit-go/internal/telemetry/metric"
	"github.com/yndnr/mapkit-go/pkg/cmap"
)

// Probe reads a container's current state. Probes are called from the
// metrics scrape goroutine, so they must be safe to call while a run
// mutates the container only if the caller guarantees that; the runner
// registers probes before the run starts and removes them after it ends.
type Probe func() metric.Snapshot

// Registry publishes live containers to the metrics collector.
//
// It is safe for concurrent use; registration from runner goroutines and
// reads from the scrape handler go through a sharded map.
type Registry struct {
	probes *cmap.Map[string, Probe]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		probes: cmap.New[string, Probe](),
	}
}

// Register adds or replaces the probe for a named container.
func (r *Registry) Register(name string, probe Probe) {
	if probe == nil {
		return
	}
	r.probes.Set(name, probe)
}

// Deregister removes the probe for a named container.
func (r *Registry) Deregister(name string) {
	r.probes.Delete(name)
}

// Names returns the registered container names, sorted.
func (r *Registry) Names() []string {
	names := r.probes.Keys()
	sort.Strings(names)

	return names
}

// Snapshots implements metric.Source.
func (r *Registry) Snapshots() []metric.Snapshot {
	snaps := make([]metric.Snapshot, 0, r.probes.Count())

	r.probes.Range(func(_ string, probe Probe) bool {
		snaps = append(snaps, probe())
		return true
	})

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Container < snaps[j].Container
	})

	return snaps
}

var _ metric.Source = (*Registry)(nil)
