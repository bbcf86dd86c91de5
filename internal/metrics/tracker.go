// Package metrics implements the performance counters attached to a vote
// engine instance.
//
// A Tracker belongs to exactly one engine instance. The engine updates it
// in place during instrumented calls; the harness reads it out afterwards,
// either as a named-counter snapshot or as a fixed-column CSV record.
//
// Trackers are deliberately NOT safe for concurrent mutation. Callers that
// benchmark from multiple goroutines must use one engine (and therefore one
// Tracker) per goroutine. This keeps the hot counting path free of atomics
// and makes the 2n-comparisons/2n-accesses cost invariant observable without
// measurement noise.
package metrics

import (
	"fmt"
	"time"
)

// Counter names used as Snapshot keys. The CSV column order below is fixed
// and must not change: downstream plotting consumes it positionally.
const (
	KeyComparisons = "comparisons"
	KeyAccesses    = "array_accesses"
	KeyTimeNs      = "time_ns"
	KeyAllocations = "memory_allocations"
	KeyCalls       = "calls"
)

// Tracker accumulates operation counts across instrumented calls.
//
// Comparisons, accesses, allocations and calls are monotonic until Reset.
// Elapsed holds only the most recent timed call; it is overwritten, not
// accumulated.
type Tracker struct {
	algorithm   string
	comparisons int64
	accesses    int64
	allocations int64
	calls       int64
	elapsed     time.Duration

	start  time.Time
	timing bool
	now    func() time.Time
}

// NewTracker creates a tracker for the named algorithm. The name appears as
// the first CSV column.
func NewTracker(algorithm string) *Tracker {
	return &Tracker{algorithm: algorithm, now: time.Now}
}

// NewTrackerWithNow creates a tracker with an injected time source.
// Tests use this to make elapsed-time assertions deterministic.
func NewTrackerWithNow(algorithm string, now func() time.Time) *Tracker {
	return &Tracker{algorithm: algorithm, now: now}
}

// Algorithm returns the algorithm name this tracker was created with.
func (t *Tracker) Algorithm() string { return t.algorithm }

// AddComparisons adds n to the comparison counter.
func (t *Tracker) AddComparisons(n int64) { t.comparisons += n }

// AddAccesses adds n to the element-access counter.
func (t *Tracker) AddAccesses(n int64) { t.accesses += n }

// AddAllocations adds n to the allocation counter.
func (t *Tracker) AddAllocations(n int64) { t.allocations += n }

// IncrCalls records one engine invocation.
func (t *Tracker) IncrCalls() { t.calls++ }

// StartTiming marks the beginning of a timed call.
func (t *Tracker) StartTiming() {
	t.start = t.now()
	t.timing = true
}

// StopTiming records the elapsed time since StartTiming, overwriting any
// previous value. A StopTiming without a matching StartTiming is a no-op.
func (t *Tracker) StopTiming() {
	if !t.timing {
		return
	}
	t.elapsed = t.now().Sub(t.start)
	t.timing = false
}

// Comparisons returns the comparison count.
func (t *Tracker) Comparisons() int64 { return t.comparisons }

// Accesses returns the element-access count.
func (t *Tracker) Accesses() int64 { return t.accesses }

// Allocations returns the allocation count.
func (t *Tracker) Allocations() int64 { return t.allocations }

// Calls returns the invocation count.
func (t *Tracker) Calls() int64 { return t.calls }

// Elapsed returns the duration of the most recent timed call.
func (t *Tracker) Elapsed() time.Duration { return t.elapsed }

// Snapshot returns all counters keyed by their canonical names.
// The map is a copy; mutating it does not affect the tracker.
func (t *Tracker) Snapshot() map[string]int64 {
	return map[string]int64{
		KeyComparisons: t.comparisons,
		KeyAccesses:    t.accesses,
		KeyTimeNs:      t.elapsed.Nanoseconds(),
		KeyAllocations: t.allocations,
		KeyCalls:       t.calls,
	}
}

// Reset zeroes all counters and clears any in-progress timing.
func (t *Tracker) Reset() {
	t.comparisons = 0
	t.accesses = 0
	t.allocations = 0
	t.calls = 0
	t.elapsed = 0
	t.timing = false
}

// CSVHeader returns the fixed column header matching CSVRecord.
func CSVHeader() string {
	return "algorithm_name,comparisons,array_accesses,time_ns,memory_allocations,calls"
}

// CSVRecord serializes the tracker as one comma-separated line in the
// CSVHeader column order.
func (t *Tracker) CSVRecord() string {
	return fmt.Sprintf("%s,%d,%d,%d,%d,%d",
		t.algorithm,
		t.comparisons,
		t.accesses,
		t.elapsed.Nanoseconds(),
		t.allocations,
		t.calls,
	)
}
