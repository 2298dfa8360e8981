// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mapkit-go/internal/cli/config"
	"github.com/yndnr/mapkit-go/internal/infra/confloader"
	"github.com/yndnr/mapkit-go/internal/infra/shutdown"
	"github.com/yndnr/mapkit-go/internal/telemetry/logger"
	"github.com/yndnr/mapkit-go/internal/telemetry/metric"
	"github.com/yndnr/mapkit-go/internal/workbench"
)

// WatchCommand reruns the configured scenarios whenever the config file
// changes, serving metrics continuously until interrupted.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Rerun scenarios on config changes until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-address",
				Usage: "Override the metrics listener address",
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Grace period for shutdown hooks",
				Value: 5 * time.Second,
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	path := flags.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	metrics := metric.NewRegistry()
	registry := workbench.NewRegistry()

	if err := metrics.RegisterSource(registry); err != nil {
		return err
	}

	address := cfg.Metrics.Address
	if c.IsSet("metrics-address") {
		address = c.String("metrics-address")
	}

	stopMetrics := serveMetrics(metrics, address)

	runner := workbench.NewRunner(registry, metrics)

	// Reloads are serialized through this channel; a change arriving
	// mid-run coalesces into at most one pending rerun.
	reload := make(chan struct{}, 1)
	reload <- struct{}{}

	watcher, err := confloader.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Watch(path); err != nil {
		return err
	}

	watcher.OnChange(func(changed string) {
		if filepath.Base(changed) != filepath.Base(path) {
			return
		}

		select {
		case reload <- struct{}{}:
		default:
		}
	})

	watcher.StartAsync()

	runCtx, cancelRuns := context.WithCancel(c.Context)

	go func() {
		for range reload {
			if runCtx.Err() != nil {
				return
			}

			current, err := config.Load(flags.ConfigPath)
			if err != nil {
				logger.Error("config reload failed", "error", err)
				continue
			}

			runAll(runCtx, runner, current.Scenarios)
		}
	}()

	handler := shutdown.NewHandler(c.Duration("shutdown-timeout"))
	handler.OnShutdown(func(ctx context.Context) error {
		cancelRuns()
		return watcher.Stop()
	})
	handler.OnShutdown(stopMetrics)

	fmt.Fprintf(c.App.Writer, "watching %s; metrics on http://%s/metrics\n", path, address)

	return handler.Wait()
}

func runAll(ctx context.Context, runner *workbench.Runner, scenarios []workbench.Scenario) {
	for _, sc := range scenarios {
		result, err := runner.Run(ctx, sc)
		if err != nil {
			logger.Error("scenario failed", "scenario", sc.Name, "error", err)
			return
		}

		logger.Info("scenario completed",
			"scenario", sc.Name,
			"run_id", result.RunID,
			"total_ops", result.TotalOps(),
			"final_size", result.FinalSize,
		)
	}
}
