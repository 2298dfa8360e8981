// Package repl provides the interactive shell mode for mapkit-bench.
//
// The shell drives a single keyed container with line commands (set,
// get, remove, sweep, ...), which is handy for exploring the absence
// rule and capacity policies without writing a scenario.
package repl
