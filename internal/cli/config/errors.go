// Package config defines the mapkit-bench configuration structure.
package config

import "fmt"

// DuplicateScenarioError reports two scenarios sharing a name.
type DuplicateScenarioError struct {
	Name string
}

func (e *DuplicateScenarioError) Error() string {
	return fmt.Sprintf("config: duplicate scenario name %q", e.Name)
}
