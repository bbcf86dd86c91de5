package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"mvbench/internal/harness"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	BuiltinsOnly bool
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [scenario-dir]",
		Short: "Run conformance scenarios",
		Long: `Run conformance scenarios against the vote engine.

The built-in set covers every documented edge case across all variants.
A directory of YAML scenario files extends it:

  mvbench verify
  mvbench verify ./scenarios`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.BuiltinsOnly, "builtins-only", false, "skip scenario files even if a directory is given")

	return cmd
}

func runVerify(opts *VerifyOptions, args []string, cmd *cobra.Command) error {
	scenarios := harness.BuiltinScenarios()

	if len(args) == 1 && !opts.BuiltinsOnly {
		loaded, err := harness.LoadScenarios(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenarios", err)
		}
		scenarios = append(scenarios, loaded...)
	}
	slog.Info("running scenarios", "count", len(scenarios))

	results, allPass := harness.RunScenarios(scenarios)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: out}
		if err := f.JSON(results); err != nil {
			return err
		}
	} else {
		if err := harness.RenderScenarioResults(out, results); err != nil {
			return err
		}
	}

	if !allPass {
		return NewExitError(ExitFailure, "one or more scenarios failed")
	}
	return nil
}
