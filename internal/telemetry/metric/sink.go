// Package metric provides Prometheus metrics for the mapkit workbench.
package metric

import "github.com/yndnr/mapkit-go/pkg/keyed"

// RejectionSink is a keyed.DiagnosticSink that counts rejected inserts
// for one container in a metrics registry.
type RejectionSink struct {
	registry  *Registry
	container string
}

var _ keyed.DiagnosticSink = (*RejectionSink)(nil)

// NewRejectionSink creates a sink that reports rejected inserts for
// the named container.
func NewRejectionSink(r *Registry, container string) *RejectionSink {
	return &RejectionSink{registry: r, container: container}
}

// RejectedInsert implements keyed.DiagnosticSink.
func (s *RejectionSink) RejectedInsert(key any, capacity int) {
	s.registry.IncRejection(s.container)
}
