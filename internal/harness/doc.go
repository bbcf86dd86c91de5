// Package harness drives the vote engine for benchmarking and conformance.
//
// The harness has two halves:
//
// Benchmarking: a Runner executes a compiled benchmark plan (see package
// plan) by generating synthetic input distributions, invoking an
// instrumented engine per (size, distribution, variant, repetition) cell,
// and collecting one Row of counters per invocation. Rows serialize to a
// fixed-column CSV for plotting, or persist to the results store.
//
// Conformance: scenarios defined in YAML files (or the built-in set) state
// an input sequence, a variant, and the expected verdict. RunScenario
// executes one scenario against the engine and reports pass/fail with
// error strings.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	variant: baseline        # baseline | optimized | enhanced | parallel
//	input: [1, 2, 3, 2, 2, 2, 1]
//	expect:
//	  present: true
//	  value: 2
//
// String sequences are supported the same way:
//
//	input: [apple, banana, apple, apple, cherry]
//	expect: { present: true, value: apple }
//
// Degenerate inputs assert the fault contract instead of a verdict:
//
//	input: []                # or omit the key entirely for a nil sequence
//	expect: { invalid: true }
//
// # Deterministic Execution
//
// Generators draw from a caller-seeded rand.Rand and the Runner accepts an
// injectable run-ID generator and time source, so the same plan produces
// byte-identical rows across runs. This is what makes golden-file
// comparison of rendered reports possible.
package harness
