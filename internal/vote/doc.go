// Package vote implements the Boyer-Moore majority-vote engine.
//
// The engine answers one question: does a sequence contain an element that
// occurs in strictly more than half of its positions, and if so, which one.
//
// ALGORITHM:
//
// Two linear passes, O(1) auxiliary space:
//
// Phase 1 (candidate selection): maintain a candidate and a vote count.
// When the count is zero the current element becomes the candidate with one
// vote; a matching element adds a vote; a mismatching element cancels one.
// Competing values cancel each other out, so a true majority element always
// survives as the final candidate.
//
// Phase 2 (verification): count exact occurrences of the candidate over the
// full sequence. Phase 1 alone can leave a false candidate standing (an
// alternating sequence leaves its last value as candidate), so verification
// is mandatory. The candidate is the answer only if its count is strictly
// greater than len/2.
//
// COST INVARIANT:
//
// The baseline performs exactly one equality comparison and one element
// access per position per phase: 2n comparisons and 2n accesses for every
// input of length n, regardless of distribution. Instrumented engines report
// these counts through an attached metrics.Tracker, which is how the
// invariant is verified rather than assumed.
//
// VARIANTS:
//
// All variants return identical verdicts to the baseline on every input:
//
//   - FindMajoritySafe: absorbs invalid input as an absent result.
//   - FindMajorityOptimized: phase 2 may stop as soon as the verdict is
//     decided; it only short-circuits, never changes the answer.
//   - FindMajorityEnhanced: explicit one- and two-element branches.
//   - FindMajorityParallel: phase 1 stays sequential (each step depends on
//     the previous count); phase 2 is a fork-join count over contiguous
//     chunks with per-worker partial sums.
//   - FindMajorityBatch: applies the safe variant per inner sequence and
//     unions the present results.
//
// An Engine and its Tracker are owned by a single caller. They are not safe
// for concurrent invocation on the same instance; concurrent benchmarking
// requires one engine per goroutine.
package vote
