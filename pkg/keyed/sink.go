// Package keyed provides enhanced keyed-storage containers.
package keyed

import (
	"log/slog"

	"github.com/hashicorp/go-hclog"
)

// DiagnosticSink receives structured notices about new-key insertions
// rejected by a lenient Bounded store. Implementations must not mutate the
// container that emitted the notice.
type DiagnosticSink interface {
	// RejectedInsert is called once per rejected insertion with the rejected
	// key and the configured capacity.
	RejectedInsert(key any, capacity int)
}

// SinkFunc adapts a plain function to a DiagnosticSink.
type SinkFunc func(key any, capacity int)

// RejectedInsert implements DiagnosticSink.
func (f SinkFunc) RejectedInsert(key any, capacity int) {
	f(key, capacity)
}

// NewSlogSink returns a DiagnosticSink that logs rejections at Warn level
// through the given slog logger. A nil logger falls back to slog.Default().
func NewSlogSink(l *slog.Logger) DiagnosticSink {
	return SinkFunc(func(key any, capacity int) {
		logger := l
		if logger == nil {
			logger = slog.Default()
		}

		logger.Warn("insert rejected: container at capacity",
			"capacity", capacity,
			"key", key,
		)
	})
}

// NewHclogSink returns a DiagnosticSink that logs rejections through a
// hashicorp-style logger, for embedding into stacks that standardize on
// hclog.
func NewHclogSink(l hclog.Logger) DiagnosticSink {
	return SinkFunc(func(key any, capacity int) {
		logger := l
		if logger == nil {
			logger = hclog.Default()
		}

		logger.Warn("insert rejected: container at capacity",
			"capacity", capacity,
			"key", key,
		)
	})
}

// MultiSink returns a DiagnosticSink that forwards every notice to all
// given sinks in order. Nil entries are skipped.
func MultiSink(sinks ...DiagnosticSink) DiagnosticSink {
	return SinkFunc(func(key any, capacity int) {
		for _, s := range sinks {
			if s != nil {
				s.RejectedInsert(key, capacity)
			}
		}
	})
}

// discardSink drops all notices. Used in tests and as a building block.
type discardSink struct{}

func (discardSink) RejectedInsert(any, int) {}

// DiscardSink returns a DiagnosticSink that drops every notice.
func DiscardSink() DiagnosticSink {
	return discardSink{}
}
