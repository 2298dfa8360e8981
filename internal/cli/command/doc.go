// Package command provides CLI command definitions for mapkit-bench.
//
// Commands:
//
//   - run: execute the configured scenarios once and print results
//   - watch: rerun scenarios whenever the config file changes
//   - shell: drive a container interactively
//   - config: show, initialize, and validate configuration
//   - version: print build information
package command
