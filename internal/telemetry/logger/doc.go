// Package logger provides structured logging for the mapkit workbench.
//
// It wraps log/slog with a small Logger interface, a process-wide default,
// and context propagation for per-run identifiers.
package logger
