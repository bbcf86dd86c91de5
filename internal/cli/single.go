package cli

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mvbench/internal/harness"
	"mvbench/internal/metrics"
	"mvbench/internal/vote"
)

// SingleOptions holds flags for the single command.
type SingleOptions struct {
	*RootOptions
	Distribution string
	Variant      string
	Seed         int64
	Workers      int
}

// NewSingleCommand creates the single command.
func NewSingleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SingleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "single <size>",
		Short: "Run one instrumented invocation",
		Long: `Run one instrumented engine invocation and print its metrics.

Example:
  mvbench single 100000
  mvbench single 100000 --distribution alternating --variant parallel`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Distribution, "distribution", string(harness.DistMajority), "input distribution")
	cmd.Flags().StringVar(&opts.Variant, "variant", string(vote.VariantBaseline), "engine variant")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "input generator seed")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel verification workers (0 = one per CPU)")

	return cmd
}

// singleOutcome is the JSON payload for a single run.
type singleOutcome struct {
	Algorithm     string           `json:"algorithm"`
	Size          int              `json:"size"`
	Distribution  string           `json:"distribution"`
	MajorityFound bool             `json:"majority_found"`
	MajorityValue *int             `json:"majority_value,omitempty"`
	Metrics       map[string]int64 `json:"metrics"`
}

func runSingle(opts *SingleOptions, sizeArg string, cmd *cobra.Command) error {
	size, err := strconv.Atoi(sizeArg)
	if err != nil || size <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("size must be a positive integer, got %q", sizeArg))
	}

	dist := harness.Distribution(opts.Distribution)
	if !harness.KnownDistribution(dist) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown distribution %q", opts.Distribution))
	}
	variant := vote.Variant(opts.Variant)
	if !knownVariant(variant) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown variant %q", opts.Variant))
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	seq, err := harness.Generate(dist, size, rng)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate input", err)
	}

	tracker := metrics.NewTracker(harness.AlgorithmName(variant))
	engine := vote.NewInstrumented[int](tracker)

	value, found, err := engine.FindByVariant(variant, seq, opts.Workers)
	if err != nil {
		return WrapExitError(ExitCommandError, "engine call failed", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		outcome := singleOutcome{
			Algorithm:     tracker.Algorithm(),
			Size:          size,
			Distribution:  string(dist),
			MajorityFound: found,
			Metrics:       tracker.Snapshot(),
		}
		if found {
			outcome.MajorityValue = &value
		}
		f := &OutputFormatter{Format: opts.Format, Writer: out}
		return f.JSON(outcome)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "=== Performance Metrics for %s ===\n", tracker.Algorithm())
	p.Fprintf(out, "Input: %d elements, %s distribution\n", size, dist)
	if found {
		p.Fprintf(out, "Majority element: %d\n", value)
	} else {
		p.Fprintf(out, "Majority element: none\n")
	}
	p.Fprintf(out, "Comparisons: %d\n", tracker.Comparisons())
	p.Fprintf(out, "Array accesses: %d\n", tracker.Accesses())
	p.Fprintf(out, "Execution time: %d ns\n", tracker.Elapsed().Nanoseconds())
	p.Fprintf(out, "Memory allocations: %d\n", tracker.Allocations())
	p.Fprintf(out, "Method calls: %d\n", tracker.Calls())
	fmt.Fprintln(out)
	fmt.Fprintln(out, metrics.CSVHeader())
	fmt.Fprintln(out, tracker.CSVRecord())
	return nil
}

func knownVariant(v vote.Variant) bool {
	for _, known := range vote.Variants {
		if v == known {
			return true
		}
	}
	return false
}
