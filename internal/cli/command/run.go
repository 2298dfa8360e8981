// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapkit-go/internal/cli/config"
	"github.com/yndnr/mapkit-go/internal/cli/output"
	"github.com/yndnr/mapkit-go/internal/telemetry/metric"
	"github.com/yndnr/mapkit-go/internal/workbench"
)

// RunCommand executes the configured scenarios once.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute the configured scenarios and print results",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "only",
				Aliases: []string{"n"},
				Usage:   "Run only the named scenarios",
			},
			&cli.StringFlag{
				Name:  "backing",
				Usage: "Ad-hoc run: container backing (hash, array)",
			},
			&cli.IntFlag{
				Name:  "ops",
				Usage: "Ad-hoc run: number of operations",
			},
			&cli.IntFlag{
				Name:  "key-space",
				Usage: "Ad-hoc run: distinct key count",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "Ad-hoc run: capacity bound (0 = unbounded)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Ad-hoc run: fail inserts at capacity instead of skipping",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Ad-hoc run: operations per second (0 = unthrottled)",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Ad-hoc run: mix seed",
			},
			&cli.IntFlag{
				Name:  "sweep-every",
				Usage: "Ad-hoc run: sweep after every N operations",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	scenarios, metricsCfg, err := resolveScenarios(c, flags)
	if err != nil {
		return err
	}

	metrics := metric.NewRegistry()
	registry := workbench.NewRegistry()

	if err := metrics.RegisterSource(registry); err != nil {
		return err
	}

	if metricsCfg.Enabled {
		stop := serveMetrics(metrics, metricsCfg.Address)
		defer func() { _ = stop(context.Background()) }()
	}

	runner := workbench.NewRunner(registry, metrics)

	showProgress := flags.Output == string(output.FormatTable) && !c.Bool("no-progress")

	results := make([]workbench.Result, 0, len(scenarios))

	for _, sc := range scenarios {
		var bar *output.ProgressBar
		if showProgress {
			bar = output.NewProgressBar(os.Stderr, sc.Name)
			runner.OnProgress = func(done, total int) {
				bar.Update(int64(done), int64(total))
			}
		} else {
			runner.OnProgress = nil
		}

		result, err := runner.Run(c.Context, sc)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		results = append(results, result)
	}

	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)

	return formatter.Format(c.App.Writer, results)
}

// resolveScenarios picks the workload list: ad-hoc flags build a single
// scenario; otherwise the config file's list applies, optionally
// filtered by --only.
func resolveScenarios(c *cli.Context, flags *GlobalFlags) ([]workbench.Scenario, config.MetricsConfig, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, config.MetricsConfig{}, err
	}

	if adhoc(c) {
		sc := workbench.DefaultScenario()
		sc.Name = "adhoc"

		if c.IsSet("backing") {
			sc.Backing = c.String("backing")
		}
		if c.IsSet("ops") {
			sc.Ops = c.Int("ops")
		}
		if c.IsSet("key-space") {
			sc.KeySpace = c.Int("key-space")
		}
		if c.IsSet("capacity") {
			sc.Capacity = c.Int("capacity")
		}
		if c.IsSet("strict") {
			sc.Strict = c.Bool("strict")
		}
		if c.IsSet("rate") {
			sc.Rate = c.Float64("rate")
		}
		if c.IsSet("seed") {
			sc.Seed = c.Uint64("seed")
		}
		if c.IsSet("sweep-every") {
			sc.SweepEvery = c.Int("sweep-every")
		}

		if err := sc.Validate(); err != nil {
			return nil, config.MetricsConfig{}, err
		}

		return []workbench.Scenario{sc}, cfg.Metrics, nil
	}

	only := c.StringSlice("only")
	if len(only) == 0 {
		return cfg.Scenarios, cfg.Metrics, nil
	}

	wanted := make(map[string]struct{}, len(only))
	for _, name := range only {
		wanted[name] = struct{}{}
	}

	var picked []workbench.Scenario
	for _, sc := range cfg.Scenarios {
		if _, ok := wanted[sc.Name]; ok {
			picked = append(picked, sc)
			delete(wanted, sc.Name)
		}
	}

	for name := range wanted {
		return nil, config.MetricsConfig{}, fmt.Errorf("unknown scenario %q", name)
	}

	return picked, cfg.Metrics, nil
}

func adhoc(c *cli.Context) bool {
	for _, name := range []string{"backing", "ops", "key-space", "capacity", "strict", "rate", "seed", "sweep-every"} {
		if c.IsSet(name) {
			return true
		}
	}

	return false
}
