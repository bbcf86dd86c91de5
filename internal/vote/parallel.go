package vote

import (
	"runtime"
	"sync"
)

// FindMajorityParallel returns the same verdict as FindMajority, running
// the verification pass concurrently.
//
// Phase 1 is inherently sequential (each step depends on the prior count)
// and always runs on the calling goroutine. Phase 2 partitions seq into
// contiguous chunks, counts candidate occurrences per chunk on a bounded
// set of workers, and sums the partial counts after the join. Each worker
// writes only its own slot of the partial-count slice, so the parallel
// region has no shared mutable state and needs no locking.
//
// workers <= 0 selects one worker per CPU. The worker count is capped at
// len(seq) so no goroutine is spawned with an empty chunk.
//
// Metric deltas are applied to the tracker only after the join; the tracker
// itself is never touched from a worker goroutine.
func (e *Engine[T]) FindMajorityParallel(seq []T, workers int) (T, bool, error) {
	var zero T
	if err := validate(seq); err != nil {
		return zero, false, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(seq) {
		workers = len(seq)
	}

	if e.tracker != nil {
		e.tracker.IncrCalls()
		e.tracker.StartTiming()
		defer e.tracker.StopTiming()
	}

	candidate := e.selectCandidate(seq)

	partial := make([]int, workers)
	chunk := (len(seq) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(seq) {
			break
		}
		hi := lo + chunk
		if hi > len(seq) {
			hi = len(seq)
		}

		wg.Add(1)
		go func(slot int, part []T) {
			defer wg.Done()
			count := 0
			for _, x := range part {
				if x == candidate {
					count++
				}
			}
			partial[slot] = count
		}(w, seq[lo:hi])
	}
	wg.Wait()

	total := 0
	for _, c := range partial {
		total += c
	}

	if e.tracker != nil {
		n := int64(len(seq))
		e.tracker.AddComparisons(n)
		e.tracker.AddAccesses(n)
		e.tracker.AddAllocations(1) // partial-count slice
	}

	if total > len(seq)/2 {
		return candidate, true, nil
	}
	return zero, false, nil
}
