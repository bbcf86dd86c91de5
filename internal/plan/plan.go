// Package plan compiles benchmark plan definitions from CUE files.
//
// A plan declares the benchmark matrix: input sizes, distributions, engine
// variants, repetitions, the RNG seed, and the parallel worker count.
// Plans are authored in CUE:
//
//	plan: {
//		name:          "nightly"
//		sizes:         [100, 1000, 10000, 100000]
//		distributions: ["majority", "nomajority", "alternating"]
//		variants:      ["baseline", "optimized"]
//		repetitions:   3
//		seed:          42
//		workers:       4
//	}
//
// Only name and sizes are required; the remaining fields default to a full
// single-repetition baseline run.
package plan

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"mvbench/internal/vote"
)

// Plan is a compiled benchmark matrix.
type Plan struct {
	// Name identifies the plan in stored results.
	Name string

	// Sizes lists input sequence lengths, all positive.
	Sizes []int

	// Distributions names the input generators to exercise.
	// Validated semantically by the harness; empty means all.
	Distributions []string

	// Variants lists the engine entry points to benchmark.
	Variants []vote.Variant

	// Repetitions is the number of runs per matrix cell, at least 1.
	Repetitions int

	// Seed feeds the input generators for reproducible sequences.
	Seed int64

	// Workers is the parallel-variant worker count; 0 means one per CPU.
	Workers int
}

// CompileError reports a problem in a plan definition.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: plan field %q: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("plan field %q: %s", e.Field, e.Message)
}

// Default returns the built-in plan used when no CUE file is given:
// every distribution and every variant over a modest size ladder.
func Default() *Plan {
	dists := make([]string, 0, 8)
	for _, d := range defaultDistributions {
		dists = append(dists, d)
	}
	return &Plan{
		Name:          "default",
		Sizes:         []int{100, 1000, 10000, 100000},
		Distributions: dists,
		Variants:      append([]vote.Variant(nil), vote.Variants...),
		Repetitions:   1,
		Seed:          1,
		Workers:       0,
	}
}

// defaultDistributions mirrors harness.Distributions without importing it
// (the harness imports this package).
var defaultDistributions = []string{
	"majority", "nomajority", "alternating", "sorted", "reversed", "identical", "random",
}

// Load reads and compiles a plan from a CUE file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling plan file: %w", err)
	}

	planVal := value.LookupPath(cue.ParsePath("plan"))
	if !planVal.Exists() {
		return nil, &CompileError{Field: "plan", Message: "top-level plan struct is required"}
	}
	return Compile(planVal)
}

// Compile parses a CUE value into a Plan and validates it.
func Compile(v cue.Value) (*Plan, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("invalid plan value: %w", err)
	}

	p := &Plan{
		Repetitions: 1,
		Seed:        1,
	}

	// name (required)
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{Field: "name", Message: "name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, &CompileError{Field: "name", Message: "name must be a string", Pos: nameVal.Pos()}
	}
	p.Name = name

	// sizes (required, non-empty, positive)
	p.Sizes, err = parseInts(v, "sizes")
	if err != nil {
		return nil, err
	}
	if len(p.Sizes) == 0 {
		return nil, &CompileError{Field: "sizes", Message: "at least one size is required", Pos: v.Pos()}
	}
	for _, s := range p.Sizes {
		if s <= 0 {
			return nil, &CompileError{Field: "sizes", Message: fmt.Sprintf("sizes must be positive, got %d", s), Pos: v.Pos()}
		}
	}

	// distributions (optional, defaults to all)
	dists, err := parseStrings(v, "distributions")
	if err != nil {
		return nil, err
	}
	if len(dists) == 0 {
		dists = append(dists, defaultDistributions...)
	}
	p.Distributions = dists

	// variants (optional, defaults to baseline)
	variants, err := parseStrings(v, "variants")
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		p.Variants = []vote.Variant{vote.VariantBaseline}
	} else {
		for _, name := range variants {
			variant := vote.Variant(name)
			if !knownVariant(variant) {
				return nil, &CompileError{Field: "variants", Message: fmt.Sprintf("unknown variant %q", name), Pos: v.Pos()}
			}
			p.Variants = append(p.Variants, variant)
		}
	}

	// repetitions (optional, >= 1)
	if repVal := v.LookupPath(cue.ParsePath("repetitions")); repVal.Exists() {
		reps, err := repVal.Int64()
		if err != nil {
			return nil, &CompileError{Field: "repetitions", Message: "repetitions must be an integer", Pos: repVal.Pos()}
		}
		if reps < 1 {
			return nil, &CompileError{Field: "repetitions", Message: fmt.Sprintf("repetitions must be at least 1, got %d", reps), Pos: repVal.Pos()}
		}
		p.Repetitions = int(reps)
	}

	// seed (optional)
	if seedVal := v.LookupPath(cue.ParsePath("seed")); seedVal.Exists() {
		seed, err := seedVal.Int64()
		if err != nil {
			return nil, &CompileError{Field: "seed", Message: "seed must be an integer", Pos: seedVal.Pos()}
		}
		p.Seed = seed
	}

	// workers (optional, >= 0)
	if wVal := v.LookupPath(cue.ParsePath("workers")); wVal.Exists() {
		w, err := wVal.Int64()
		if err != nil {
			return nil, &CompileError{Field: "workers", Message: "workers must be an integer", Pos: wVal.Pos()}
		}
		if w < 0 {
			return nil, &CompileError{Field: "workers", Message: fmt.Sprintf("workers cannot be negative, got %d", w), Pos: wVal.Pos()}
		}
		p.Workers = int(w)
	}

	return p, nil
}

func knownVariant(v vote.Variant) bool {
	for _, known := range vote.Variants {
		if v == known {
			return true
		}
	}
	return false
}

func parseInts(v cue.Value, field string) ([]int, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, &CompileError{Field: field, Message: field + " must be a list of integers", Pos: listVal.Pos()}
	}
	var out []int
	for iter.Next() {
		n, err := iter.Value().Int64()
		if err != nil {
			return nil, &CompileError{Field: field, Message: field + " must contain only integers", Pos: iter.Value().Pos()}
		}
		out = append(out, int(n))
	}
	return out, nil
}

func parseStrings(v cue.Value, field string) ([]string, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, &CompileError{Field: field, Message: field + " must be a list of strings", Pos: listVal.Pos()}
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Field: field, Message: field + " must contain only strings", Pos: iter.Value().Pos()}
		}
		out = append(out, s)
	}
	return out, nil
}
