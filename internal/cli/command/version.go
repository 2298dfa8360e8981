// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapkit-go/internal/cli/output"
	"github.com/yndnr/mapkit-go/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Print build information",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)

	return formatter.Format(c.App.Writer, buildinfo.Get())
}
