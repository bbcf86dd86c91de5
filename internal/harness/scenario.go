package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"mvbench/internal/vote"
)

// Scenario defines one conformance case: an input sequence, the variant to
// exercise, and the expected verdict.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Variant selects the engine entry point. Empty means baseline.
	Variant vote.Variant `yaml:"variant,omitempty"`

	// Input is the sequence under test. All elements must be integers or
	// all strings. An omitted key is a nil sequence; an explicit empty
	// list is an empty one - the two exercise different fault codes.
	Input []any `yaml:"input"`

	// Expect states the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected verdict for a scenario.
type ExpectClause struct {
	// Invalid expects the default API to fail with an input contract
	// violation (and the safe API to return absent).
	Invalid bool `yaml:"invalid,omitempty"`

	// Present expects a majority element to exist.
	Present bool `yaml:"present,omitempty"`

	// Value is the expected majority element when Present is true.
	Value any `yaml:"value,omitempty"`
}

// Result is the outcome of executing one scenario.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass indicates the observed verdict matched the expectation.
	Pass bool `json:"pass"`

	// Errors contains mismatch descriptions. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// LoadScenario reads one scenario from a YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently weakening a case.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// filename for stable execution order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scanning scenario dir: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Variant != "" {
		known := false
		for _, v := range vote.Variants {
			if s.Variant == v {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown variant %q", s.Variant)
		}
	}
	if s.Expect.Invalid && s.Expect.Present {
		return fmt.Errorf("expect cannot be both invalid and present")
	}
	if !s.Expect.Invalid && len(s.Input) > 0 && s.Expect.Present && s.Expect.Value == nil {
		return fmt.Errorf("expect.value is required when expect.present is true")
	}
	return nil
}

// RunScenario executes one scenario and reports whether the engine's
// verdict matched the expectation.
func RunScenario(s *Scenario) *Result {
	res := NewResult(s.Name)

	variant := s.Variant
	if variant == "" {
		variant = vote.VariantBaseline
	}

	ints, strs, err := coerceInput(s.Input)
	if err != nil {
		res.AddError(err.Error())
		return res
	}

	if strs != nil {
		runScenarioTyped(res, s, variant, strs)
	} else {
		runScenarioTyped(res, s, variant, ints)
	}
	return res
}

// RunScenarios executes scenarios in order and reports overall success.
func RunScenarios(scenarios []*Scenario) ([]*Result, bool) {
	results := make([]*Result, 0, len(scenarios))
	allPass := true
	for _, s := range scenarios {
		r := RunScenario(s)
		if !r.Pass {
			allPass = false
		}
		results = append(results, r)
	}
	return results, allPass
}

func runScenarioTyped[T comparable](res *Result, s *Scenario, variant vote.Variant, seq []T) {
	engine := vote.New[T]()
	value, found, err := engine.FindByVariant(variant, seq, 0)

	if s.Expect.Invalid {
		if err == nil {
			res.AddError("expected an invalid-input fault, call succeeded")
		} else if !vote.IsInvalidInput(err) {
			res.AddError(fmt.Sprintf("expected an invalid-input fault, got: %v", err))
		}
		// The safe variant must absorb the same condition as absent.
		if _, ok := engine.FindMajoritySafe(seq); ok {
			res.AddError("safe variant returned a value for invalid input")
		}
		return
	}

	if err != nil {
		res.AddError(fmt.Sprintf("unexpected error: %v", err))
		return
	}
	if found != s.Expect.Present {
		res.AddError(fmt.Sprintf("majority present = %v, expected %v", found, s.Expect.Present))
		return
	}
	if found {
		got := fmt.Sprintf("%v", value)
		want := fmt.Sprintf("%v", s.Expect.Value)
		if got != want {
			res.AddError(fmt.Sprintf("majority element = %s, expected %s", got, want))
		}
	}
}

// coerceInput splits a raw YAML sequence into an int or string slice.
// A nil input stays nil (the "no data" condition); an empty input becomes
// an empty int slice. Mixed element types are rejected.
func coerceInput(in []any) ([]int, []string, error) {
	if in == nil {
		return nil, nil, nil
	}

	ints := make([]int, 0, len(in))
	strs := make([]string, 0, len(in))
	for i, e := range in {
		switch v := e.(type) {
		case int:
			ints = append(ints, v)
		case string:
			strs = append(strs, v)
		default:
			return nil, nil, fmt.Errorf("input[%d]: unsupported element type %T", i, e)
		}
	}

	switch {
	case len(strs) == 0:
		return ints, nil, nil
	case len(ints) == 0:
		return nil, strs, nil
	default:
		return nil, nil, fmt.Errorf("input mixes integers and strings")
	}
}

// BuiltinScenarios returns the canonical conformance set: the documented
// edge cases across every variant, plus the fault-contract cases.
func BuiltinScenarios() []*Scenario {
	base := []struct {
		name   string
		input  []any
		expect ExpectClause
	}{
		{"majority_exists", []any{1, 2, 3, 2, 2, 2, 1}, ExpectClause{Present: true, Value: 2}},
		{"majority_at_end", []any{3, 3, 4, 2, 4, 4, 2, 4, 4}, ExpectClause{Present: true, Value: 4}},
		{"no_majority", []any{1, 2, 3, 4, 5}, ExpectClause{Present: false}},
		{"single_element", []any{5}, ExpectClause{Present: true, Value: 5}},
		{"two_equal", []any{2, 2}, ExpectClause{Present: true, Value: 2}},
		{"two_unequal", []any{1, 2}, ExpectClause{Present: false}},
		{"exact_half_rejected", []any{1, 1, 1, 2, 2, 2}, ExpectClause{Present: false}},
		{"string_majority", []any{"apple", "banana", "apple", "apple", "cherry"}, ExpectClause{Present: true, Value: "apple"}},
		{"empty_input", []any{}, ExpectClause{Invalid: true}},
		{"nil_input", nil, ExpectClause{Invalid: true}},
	}

	var out []*Scenario
	for _, v := range vote.Variants {
		for _, b := range base {
			out = append(out, &Scenario{
				Name:    fmt.Sprintf("%s/%s", v, b.name),
				Variant: v,
				Input:   b.input,
				Expect:  b.expect,
			})
		}
	}
	return out
}
