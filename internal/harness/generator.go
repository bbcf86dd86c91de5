package harness

import (
	"fmt"
	"math/rand"
)

// Distribution names a synthetic input shape.
type Distribution string

const (
	// DistMajority plants a majority element and shuffles.
	DistMajority Distribution = "majority"

	// DistNoMajority spreads values so no element can exceed half.
	DistNoMajority Distribution = "nomajority"

	// DistAlternating is the phase-1 worst case: maximum vote cancellation.
	DistAlternating Distribution = "alternating"

	// DistSorted is strictly increasing values (all distinct).
	DistSorted Distribution = "sorted"

	// DistReversed is strictly decreasing values (all distinct).
	DistReversed Distribution = "reversed"

	// DistIdentical repeats a single value.
	DistIdentical Distribution = "identical"

	// DistRandom draws uniformly from a domain as wide as the sequence.
	DistRandom Distribution = "random"
)

// Distributions lists every generator in a stable order.
var Distributions = []Distribution{
	DistMajority,
	DistNoMajority,
	DistAlternating,
	DistSorted,
	DistReversed,
	DistIdentical,
	DistRandom,
}

// plantedMajority is the value planted by DistMajority and DistIdentical.
const plantedMajority = 42

// KnownDistribution reports whether d names a generator.
func KnownDistribution(d Distribution) bool {
	for _, known := range Distributions {
		if d == known {
			return true
		}
	}
	return false
}

// Generate builds a sequence of the given size and shape. All randomness
// comes from rng, so a fixed seed reproduces the exact sequence.
//
// DistNoMajority requires size >= 2: a single-element sequence is always
// its own majority.
func Generate(dist Distribution, size int, rng *rand.Rand) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("generate %s: size must be positive, got %d", dist, size)
	}

	switch dist {
	case DistMajority:
		return generateMajority(size, rng), nil
	case DistNoMajority:
		if size < 2 {
			return nil, fmt.Errorf("generate %s: no majority-free sequence of length %d exists", dist, size)
		}
		return generateNoMajority(size, rng), nil
	case DistAlternating:
		s := make([]int, size)
		for i := range s {
			s[i] = i % 2
		}
		return s, nil
	case DistSorted:
		s := make([]int, size)
		for i := range s {
			s[i] = i
		}
		return s, nil
	case DistReversed:
		s := make([]int, size)
		for i := range s {
			s[i] = size - 1 - i
		}
		return s, nil
	case DistIdentical:
		s := make([]int, size)
		for i := range s {
			s[i] = plantedMajority
		}
		return s, nil
	case DistRandom:
		s := make([]int, size)
		for i := range s {
			s[i] = rng.Intn(size)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("generate: unknown distribution %q", dist)
	}
}

// generateMajority fills just over half the positions with the planted
// value, the rest with values guaranteed to differ, then shuffles.
func generateMajority(size int, rng *rand.Rand) []int {
	s := make([]int, size)
	majorityCount := size/2 + 1

	for i := 0; i < majorityCount; i++ {
		s[i] = plantedMajority
	}
	for i := majorityCount; i < size; i++ {
		s[i] = plantedMajority + 1 + rng.Intn(100)
	}

	rng.Shuffle(size, func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return s
}

// generateNoMajority deals values round-robin from a three-value domain and
// shuffles. Each value occurs at most ceil(size/3) times, which never
// exceeds size/2 for size >= 2, so no majority can exist.
func generateNoMajority(size int, rng *rand.Rand) []int {
	s := make([]int, size)
	for i := range s {
		s[i] = i % 3
	}
	rng.Shuffle(size, func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return s
}

// HasPlantedMajority reports whether the distribution guarantees a majority
// element in every generated sequence.
func (d Distribution) HasPlantedMajority() bool {
	return d == DistMajority || d == DistIdentical
}
