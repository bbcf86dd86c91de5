package vote

import (
	"fmt"

	"mvbench/internal/metrics"
)

// Variant names the engine entry points. Used by the harness and the
// scenario format to select an implementation by name.
type Variant string

const (
	VariantBaseline  Variant = "baseline"
	VariantOptimized Variant = "optimized"
	VariantEnhanced  Variant = "enhanced"
	VariantParallel  Variant = "parallel"
)

// Variants lists all dispatchable variant names.
var Variants = []Variant{VariantBaseline, VariantOptimized, VariantEnhanced, VariantParallel}

// Engine runs the majority-vote algorithm over sequences of T.
//
// The zero-value tracker state means uninstrumented: the hot loops carry no
// counting overhead beyond a nil check per phase. An instrumented engine
// accumulates into its Tracker across calls until ResetMetrics.
type Engine[T comparable] struct {
	tracker *metrics.Tracker
}

// New creates an uninstrumented engine.
func New[T comparable]() *Engine[T] {
	return &Engine[T]{}
}

// NewInstrumented creates an engine that accumulates operation counts and
// elapsed time into tracker. The tracker is owned by this engine; sharing
// one tracker across engines invoked concurrently is a caller error.
func NewInstrumented[T comparable](tracker *metrics.Tracker) *Engine[T] {
	return &Engine[T]{tracker: tracker}
}

// Tracker returns the attached metrics tracker, or nil if uninstrumented.
func (e *Engine[T]) Tracker() *metrics.Tracker {
	return e.tracker
}

// ResetMetrics zeroes the attached tracker. No-op for uninstrumented engines.
func (e *Engine[T]) ResetMetrics() {
	if e.tracker != nil {
		e.tracker.Reset()
	}
}

// FindMajority returns the element occurring in strictly more than half of
// the positions of seq, if one exists.
//
// A nil sequence fails with NIL_INPUT and an empty sequence with EMPTY_INPUT;
// both satisfy IsInvalidInput. For any non-empty input the call returns a
// definite verdict: (value, true) when a majority exists, (zero, false)
// otherwise. A tie at exactly half is not a majority.
func (e *Engine[T]) FindMajority(seq []T) (T, bool, error) {
	var zero T
	if err := validate(seq); err != nil {
		return zero, false, err
	}

	if e.tracker != nil {
		e.tracker.IncrCalls()
		e.tracker.StartTiming()
		defer e.tracker.StopTiming()
	}

	candidate := e.selectCandidate(seq)
	if e.verify(seq, candidate) {
		return candidate, true, nil
	}
	return zero, false, nil
}

// FindMajoritySafe is the non-faulting form of FindMajority: nil and empty
// sequences yield an absent result instead of an error.
func (e *Engine[T]) FindMajoritySafe(seq []T) (T, bool) {
	v, ok, err := e.FindMajority(seq)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, ok
}

// FindMajorityOptimized returns the same verdict as FindMajority for every
// input, but verification may stop early once the remaining unscanned
// elements cannot flip the outcome. With metrics enabled it may therefore
// record fewer than 2n comparisons.
func (e *Engine[T]) FindMajorityOptimized(seq []T) (T, bool, error) {
	var zero T
	if err := validate(seq); err != nil {
		return zero, false, err
	}

	if e.tracker != nil {
		e.tracker.IncrCalls()
		e.tracker.StartTiming()
		defer e.tracker.StopTiming()
	}

	candidate := e.selectCandidate(seq)
	if e.verifyEarlyExit(seq, candidate) {
		return candidate, true, nil
	}
	return zero, false, nil
}

// FindMajorityEnhanced spells out the one- and two-element cases before
// deferring to the general algorithm. The branches are already implied by
// the algorithm; they exist to make the edge-case intent explicit, and the
// variant agrees with FindMajority on all inputs.
func (e *Engine[T]) FindMajorityEnhanced(seq []T) (T, bool, error) {
	var zero T
	if err := validate(seq); err != nil {
		return zero, false, err
	}

	switch len(seq) {
	case 1:
		// A single element is trivially its own majority.
		return seq[0], true, nil
	case 2:
		if seq[0] == seq[1] {
			return seq[0], true, nil
		}
		return zero, false, nil
	}
	return e.FindMajority(seq)
}

// FindMajorityBatch applies the safe variant to each inner sequence
// independently and returns the set of distinct majority elements found.
// Invalid or majority-less inner sequences contribute nothing.
func (e *Engine[T]) FindMajorityBatch(batch [][]T) map[T]struct{} {
	out := make(map[T]struct{})
	if e.tracker != nil {
		e.tracker.AddAllocations(1)
	}
	for _, seq := range batch {
		if v, ok := e.FindMajoritySafe(seq); ok {
			out[v] = struct{}{}
		}
	}
	return out
}

// FindByVariant dispatches to the named variant. workers only applies to
// the parallel variant; pass 0 to use one worker per CPU.
func (e *Engine[T]) FindByVariant(v Variant, seq []T, workers int) (T, bool, error) {
	switch v {
	case VariantBaseline:
		return e.FindMajority(seq)
	case VariantOptimized:
		return e.FindMajorityOptimized(seq)
	case VariantEnhanced:
		return e.FindMajorityEnhanced(seq)
	case VariantParallel:
		return e.FindMajorityParallel(seq, workers)
	default:
		var zero T
		return zero, false, fmt.Errorf("unknown variant %q", v)
	}
}

// FindMajority is the one-shot uninstrumented form for any comparable
// element type. Same algorithm and contract as Engine.FindMajority.
func FindMajority[T comparable](seq []T) (T, bool, error) {
	return New[T]().FindMajority(seq)
}

// selectCandidate runs phase 1: the voting/cancellation pass. Exactly one
// equality comparison and one element access per position.
func (e *Engine[T]) selectCandidate(seq []T) T {
	var candidate T
	count := 0

	for _, x := range seq {
		switch {
		case count == 0:
			candidate = x
			count = 1
		case x == candidate:
			count++
		default:
			count--
		}
	}

	if e.tracker != nil {
		n := int64(len(seq))
		e.tracker.AddComparisons(n)
		e.tracker.AddAccesses(n)
	}
	return candidate
}

// verify runs phase 2: a full occurrence count of the candidate. Exactly one
// comparison and one access per position.
func (e *Engine[T]) verify(seq []T, candidate T) bool {
	count := 0
	for _, x := range seq {
		if x == candidate {
			count++
		}
	}

	if e.tracker != nil {
		n := int64(len(seq))
		e.tracker.AddComparisons(n)
		e.tracker.AddAccesses(n)
	}
	return count > len(seq)/2
}

// verifyEarlyExit is verify with two provably safe short-circuits: stop once
// the count already exceeds half (verdict is majority), or once even
// counting every remaining element could not push it past half (verdict is
// no majority). Neither exit can change the verdict, only when it is known.
func (e *Engine[T]) verifyEarlyExit(seq []T, candidate T) bool {
	half := len(seq) / 2
	count := 0
	scanned := 0

	for _, x := range seq {
		scanned++
		if x == candidate {
			count++
		}
		if count > half {
			break
		}
		if count+(len(seq)-scanned) <= half {
			break
		}
	}

	if e.tracker != nil {
		e.tracker.AddComparisons(int64(scanned))
		e.tracker.AddAccesses(int64(scanned))
	}
	return count > half
}

func validate[T any](seq []T) error {
	if seq == nil {
		return newNilInputError()
	}
	if len(seq) == 0 {
		return newEmptyInputError()
	}
	return nil
}
