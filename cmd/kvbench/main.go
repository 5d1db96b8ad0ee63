// Package main provides the CLI entry point for kvbench, a workload-driven
// benchmark harness for embedded key-value stores.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hash-anu/rocksdb-benchmark/bench"
	"github.com/hash-anu/rocksdb-benchmark/engine"
	"github.com/hash-anu/rocksdb-benchmark/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "kvbench",
		Short: "Embedded key-value store benchmark harness",
		Long: `Kvbench opens an embedded key-value engine configured to mimic a small
store's resource profile and runs a fixed sequence of workload phases
(sequential writes, random reads, scan, updates, deletes, existence checks,
mixed workload, bulk insert), timing throughput and sampling process memory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	cfg := bench.DefaultConfig()

	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the fixed benchmark workload",
		Long: `Run every benchmark phase in order against one engine instance, then the
isolated bulk-insert phase against a second instance, and print a report.
Both instances' on-disk artifacts are destroyed before the process exits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, cfg, outputJSON)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend,
		fmt.Sprintf("Storage backend (%s)",
			strings.Join(engine.Backends(), ", ")))
	flags.StringVar(&cfg.Dir, "db-dir", cfg.Dir,
		"Storage path for the main engine instance")
	flags.StringVar(&cfg.BulkDir, "bulk-db-dir", cfg.BulkDir,
		"Storage path for the isolated bulk-insert instance")
	flags.IntVar(&cfg.NumRecords, "records", cfg.NumRecords,
		"Number of records in the benchmark keyspace")
	flags.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize,
		"Puts per durable commit in the sequential-write phase")
	flags.IntVar(&cfg.NumReads, "reads", cfg.NumReads,
		"Point lookups in the random-read and exists-check phases")
	flags.IntVar(&cfg.NumUpdates, "updates", cfg.NumUpdates,
		"Puts in the random-update phase")
	flags.IntVar(&cfg.NumDeletes, "deletes", cfg.NumDeletes,
		"Deletes in the random-delete phase")
	flags.IntVar(&cfg.MixedOps, "mixed-ops", cfg.MixedOps,
		"Total operations in the mixed-workload phase")
	flags.IntVar(&cfg.FlushThreshold, "flush-threshold", cfg.FlushThreshold,
		"Pending operations that trigger a mixed-workload commit")
	flags.Int64Var(&cfg.Seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.BoolVar(&outputJSON, "json", false,
		"Output the report as JSON instead of text")

	return cmd
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg bench.Config,
	outputJSON bool,
) error {
	logger.InfoContext(ctx, "starting benchmark",
		slog.String("backend", cfg.Backend),
		slog.Int("records", cfg.NumRecords),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Int("reads", cfg.NumReads),
		slog.Int("updates", cfg.NumUpdates),
		slog.Int("deletes", cfg.NumDeletes),
		slog.Int("mixed_ops", cfg.MixedOps),
		slog.Int64("seed", cfg.Seed),
	)

	runner, err := bench.NewRunner(cfg, engine.SmallProfile(), logger)
	if err != nil {
		return err
	}

	rep, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "benchmark failed",
			slog.String("error", err.Error()))

		return err
	}

	if outputJSON {
		if err := report.RenderJSON(os.Stdout, rep); err != nil {
			return fmt.Errorf("render JSON report: %w", err)
		}
	} else {
		if err := report.Render(os.Stdout, rep); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Duration("total", rep.TotalElapsed))

	return nil
}
