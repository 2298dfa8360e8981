// Package config defines the mapkit-bench configuration structure.
package config

import "github.com/yndnr/mapkit-go/internal/workbench"

// Config is the configuration for mapkit-bench.
type Config struct {
	// Log configures the workbench logger.
	Log LogConfig `koanf:"log" yaml:"log"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`

	// Scenarios are the workloads executed by the run command, in order.
	Scenarios []workbench.Scenario `koanf:"scenarios" yaml:"scenarios"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"` // json, text
}

// MetricsConfig configures the Prometheus metrics listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Address string `koanf:"address" yaml:"address"`
}

// Default returns the default configuration: one default scenario,
// metrics disabled.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: "127.0.0.1:9190",
		},
		Scenarios: []workbench.Scenario{workbench.DefaultScenario()},
	}
}

// Validate checks every scenario and rejects duplicate names.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Scenarios))

	for _, sc := range c.Scenarios {
		if err := sc.Validate(); err != nil {
			return err
		}

		if _, dup := seen[sc.Name]; dup {
			return &DuplicateScenarioError{Name: sc.Name}
		}
		seen[sc.Name] = struct{}{}
	}

	return nil
}
