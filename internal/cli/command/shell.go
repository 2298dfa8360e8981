// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapkit-go/internal/cli/repl"
)

// ShellCommand starts the interactive container shell.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Drive a container interactively",
		Action: func(c *cli.Context) error {
			return repl.New().Run()
		},
	}
}
