package harness

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mvbench/internal/metrics"
	"mvbench/internal/plan"
	"mvbench/internal/vote"
)

// RunIDGenerator produces identifiers for benchmark runs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDGenerator is the production run-ID generator.
type UUIDGenerator struct{}

// Generate returns a random UUID string.
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// Row is one engine invocation's worth of results and counters.
type Row struct {
	Algorithm    string
	Size         int
	Distribution Distribution
	Rep          int
	Comparisons  int64
	Accesses     int64
	TimeNs       int64
	Allocations  int64
	Calls        int64
	Found        bool
	Value        int
}

// RunResult is the outcome of executing one benchmark plan.
type RunResult struct {
	RunID     string
	PlanName  string
	StartedAt time.Time
	Rows      []Row
}

// Runner executes benchmark plans against instrumented engines.
//
// The zero value is production-ready: UUID run IDs and wall-clock timing.
// Tests inject IDGen and Now to make runs byte-for-byte reproducible.
type Runner struct {
	// IDGen generates the run ID. Nil means UUIDGenerator.
	IDGen RunIDGenerator

	// Now is the time source handed to each tracker. Nil means time.Now.
	Now func() time.Time

	// Logger receives per-cell progress at debug level. Nil means the
	// default logger.
	Logger *slog.Logger
}

// Run executes every (size, distribution, variant, repetition) cell of the
// plan in a stable order. Each cell gets a fresh tracker and engine, so its
// Row carries exactly that invocation's counters.
//
// Input generation draws from a single rand.Rand seeded from the plan, so
// identical plans produce identical sequences.
func (r *Runner) Run(p *plan.Plan) (*RunResult, error) {
	idGen := r.IDGen
	if idGen == nil {
		idGen = UUIDGenerator{}
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, d := range p.Distributions {
		if !KnownDistribution(Distribution(d)) {
			return nil, fmt.Errorf("plan %q: unknown distribution %q", p.Name, d)
		}
	}

	result := &RunResult{
		RunID:     idGen.Generate(),
		PlanName:  p.Name,
		StartedAt: now(),
	}
	rng := rand.New(rand.NewSource(p.Seed))

	logger.Info("benchmark run started",
		"run_id", result.RunID,
		"plan", p.Name,
		"cells", len(p.Sizes)*len(p.Distributions)*len(p.Variants)*p.Repetitions)

	for _, size := range p.Sizes {
		for _, distName := range p.Distributions {
			dist := Distribution(distName)
			for _, variant := range p.Variants {
				for rep := 0; rep < p.Repetitions; rep++ {
					row, err := r.runCell(p, dist, variant, size, rep, rng, now)
					if err != nil {
						return nil, err
					}
					logger.Debug("cell complete",
						"algorithm", row.Algorithm,
						"size", size,
						"distribution", string(dist),
						"rep", rep,
						"comparisons", row.Comparisons)
					result.Rows = append(result.Rows, row)
				}
			}
		}
	}

	logger.Info("benchmark run finished", "run_id", result.RunID, "rows", len(result.Rows))
	return result, nil
}

func (r *Runner) runCell(p *plan.Plan, dist Distribution, variant vote.Variant, size, rep int, rng *rand.Rand, now func() time.Time) (Row, error) {
	seq, err := Generate(dist, size, rng)
	if err != nil {
		return Row{}, fmt.Errorf("plan %q: %w", p.Name, err)
	}

	tracker := metrics.NewTrackerWithNow(AlgorithmName(variant), now)
	engine := vote.NewInstrumented[int](tracker)

	value, found, err := engine.FindByVariant(variant, seq, p.Workers)
	if err != nil {
		return Row{}, fmt.Errorf("plan %q: running %s on %s/%d: %w", p.Name, variant, dist, size, err)
	}

	return Row{
		Algorithm:    tracker.Algorithm(),
		Size:         size,
		Distribution: dist,
		Rep:          rep,
		Comparisons:  tracker.Comparisons(),
		Accesses:     tracker.Accesses(),
		TimeNs:       tracker.Elapsed().Nanoseconds(),
		Allocations:  tracker.Allocations(),
		Calls:        tracker.Calls(),
		Found:        found,
		Value:        value,
	}, nil
}

// AlgorithmName returns the stable algorithm label recorded for a variant.
func AlgorithmName(v vote.Variant) string {
	switch v {
	case vote.VariantBaseline:
		return "boyer_moore"
	case vote.VariantOptimized:
		return "boyer_moore_optimized"
	case vote.VariantEnhanced:
		return "boyer_moore_enhanced"
	case vote.VariantParallel:
		return "boyer_moore_parallel"
	default:
		return "boyer_moore_" + string(v)
	}
}

// CSVColumns is the fixed column order produced by WriteCSV.
var CSVColumns = []string{
	"algorithm_name", "size", "distribution", "rep",
	"comparisons", "array_accesses", "time_ns", "memory_allocations", "calls",
	"majority_found", "majority_value",
}

// WriteCSV serializes a run's rows with a fixed column order. The
// majority_value field is empty when no majority was found.
func WriteCSV(w io.Writer, res *RunResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVColumns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range res.Rows {
		value := ""
		if row.Found {
			value = strconv.Itoa(row.Value)
		}
		record := []string{
			row.Algorithm,
			strconv.Itoa(row.Size),
			string(row.Distribution),
			strconv.Itoa(row.Rep),
			strconv.FormatInt(row.Comparisons, 10),
			strconv.FormatInt(row.Accesses, 10),
			strconv.FormatInt(row.TimeNs, 10),
			strconv.FormatInt(row.Allocations, 10),
			strconv.FormatInt(row.Calls, 10),
			strconv.FormatBool(row.Found),
			value,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
