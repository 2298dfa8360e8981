// Package config defines the mapkit-bench configuration structure.
//
// Configuration comes from a YAML file, MAPKIT_-prefixed environment
// variables, and command-line flags, in increasing priority.
package config
