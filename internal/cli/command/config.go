// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapkit-go/internal/cli/config"
	"github.com/yndnr/mapkit-go/internal/cli/output"
)

// ConfigCommand manages the bench configuration file.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage bench configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: configShowAction,
			},
			{
				Name:   "init",
				Usage:  "Write a default config file",
				Action: configInitAction,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration for errors",
				Action: configValidateAction,
			},
			{
				Name:   "path",
				Usage:  "Print the default config file path",
				Action: configPathAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	// Tables flatten the nested config poorly; YAML reads better as
	// the default here.
	format := output.Format(flags.Output)
	if format == output.FormatTable {
		format = output.FormatYAML
	}

	return output.NewFormatter(format, flags.Wide).Format(c.App.Writer, cfg)
}

func configInitAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	path := flags.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)

	return nil
}

func configValidateAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "ok: %d scenario(s)\n", len(cfg.Scenarios))

	return nil
}

func configPathAction(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, config.DefaultConfigPath())
	return nil
}
