package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"mvbench/internal/harness"
	"mvbench/internal/plan"
	"mvbench/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	CSV        bool
	ProfileTo  string
	ProfileDir string
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench [plan.cue]",
		Short: "Run a benchmark plan",
		Long: `Run a benchmark plan against the vote engine.

Without an argument the built-in default plan runs: every distribution and
every variant over a ladder of input sizes. A CUE plan file narrows the
matrix:

  mvbench bench nightly.cue
  mvbench bench --db results.db --csv nightly.cue
  mvbench bench --profile cpu`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.CSV, "csv", false, "emit raw CSV instead of a report")
	cmd.Flags().StringVar(&opts.ProfileTo, "profile", "", "write a profile (cpu|mem)")
	cmd.Flags().StringVar(&opts.ProfileDir, "profile-dir", ".", "directory for profile output")

	return cmd
}

func runBench(opts *BenchOptions, args []string, cmd *cobra.Command) error {
	p, err := loadPlan(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load plan", err)
	}
	slog.Info("plan loaded", "name", p.Name, "sizes", len(p.Sizes), "variants", len(p.Variants))

	if opts.ProfileTo != "" {
		stop, err := startProfile(opts.ProfileTo, opts.ProfileDir)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start profiler", err)
		}
		defer stop()
	}

	runner := &harness.Runner{}
	res, err := runner.Run(p)
	if err != nil {
		return WrapExitError(ExitCommandError, "benchmark run failed", err)
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		if err := st.SaveRun(context.Background(), res); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		slog.Info("run persisted", "run_id", res.RunID, "db", opts.Database)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.CSV:
		return harness.WriteCSV(out, res)
	case opts.Format == "json":
		f := &OutputFormatter{Format: opts.Format, Writer: out}
		return f.JSON(res)
	default:
		return harness.RenderText(out, res)
	}
}

func loadPlan(args []string) (*plan.Plan, error) {
	if len(args) == 0 {
		return plan.Default(), nil
	}
	return plan.Load(args[0])
}

// startProfile begins a pkg/profile session and returns its stop func.
func startProfile(kind, dir string) (func(), error) {
	switch kind {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(dir)).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(dir)).Stop, nil
	default:
		return nil, fmt.Errorf("unknown profile kind %q: must be cpu or mem", kind)
	}
}
