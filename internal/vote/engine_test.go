package vote

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvbench/internal/metrics"
)

// majorityBruteForce is the reference oracle: exact occurrence counting.
func majorityBruteForce(seq []int) (int, bool) {
	counts := make(map[int]int, len(seq))
	for _, x := range seq {
		counts[x]++
	}
	for v, c := range counts {
		if c > len(seq)/2 {
			return v, true
		}
	}
	return 0, false
}

func TestFindMajority_Examples(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  int
		found bool
	}{
		{"majority exists", []int{1, 2, 3, 2, 2, 2, 1}, 2, true},
		{"no majority", []int{1, 2, 3, 4, 5}, 0, false},
		{"single element", []int{5}, 5, true},
		{"two equal", []int{2, 2}, 2, true},
		{"two unequal", []int{1, 2}, 0, false},
		{"exact half is not majority", []int{1, 1, 1, 2, 2, 2}, 0, false},
		{"majority at the end", []int{3, 3, 4, 2, 4, 4, 2, 4, 4}, 4, true},
		{"all identical", []int{7, 7, 7, 7}, 7, true},
		{"alternating leaves no majority", []int{0, 1, 0, 1, 0, 1}, 0, false},
		{"alternating odd length", []int{0, 1, 0, 1, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New[int]()
			got, found, err := e.FindMajority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFindMajority_NilInput(t *testing.T) {
	e := New[int]()
	_, found, err := e.FindMajority(nil)
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, IsInvalidInput(err))
	assert.True(t, IsNilInput(err))
	assert.False(t, IsEmptyInput(err))
}

func TestFindMajority_EmptyInput(t *testing.T) {
	e := New[int]()
	_, found, err := e.FindMajority([]int{})
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, IsInvalidInput(err))
	assert.True(t, IsEmptyInput(err))
	assert.False(t, IsNilInput(err))
}

func TestFindMajoritySafe_AbsorbsInvalidInput(t *testing.T) {
	e := New[int]()

	_, found := e.FindMajoritySafe(nil)
	assert.False(t, found)

	_, found = e.FindMajoritySafe([]int{})
	assert.False(t, found)

	v, found := e.FindMajoritySafe([]int{9, 9, 1})
	assert.True(t, found)
	assert.Equal(t, 9, v)
}

func TestFindMajority_GenericStrings(t *testing.T) {
	e := New[string]()
	v, found, err := e.FindMajority([]string{"apple", "banana", "apple", "apple", "cherry"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "apple", v)
}

func TestFindMajority_PackageLevel(t *testing.T) {
	v, found, err := FindMajority([]string{"a", "b", "a"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", v)

	_, _, err = FindMajority[int](nil)
	assert.True(t, IsInvalidInput(err))
}

// Soundness and completeness over a randomized corpus: the engine agrees
// with brute-force counting for every input.
func TestFindMajority_AgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(200)
		// Varied duplicate density: small value domains force majorities,
		// large ones make them rare.
		domain := 1 + rng.Intn(n)
		seq := make([]int, n)
		for j := range seq {
			seq[j] = rng.Intn(domain)
		}

		want, wantFound := majorityBruteForce(seq)
		got, found, err := New[int]().FindMajority(seq)
		require.NoError(t, err)
		require.Equal(t, wantFound, found, "input %v", seq)
		if wantFound {
			require.Equal(t, want, got, "input %v", seq)
		}
	}
}

// Variant agreement: optimized, enhanced and parallel return the same
// verdict as the baseline across a randomized corpus.
func TestVariants_AgreeWithBaseline(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		n := 1 + rng.Intn(1000)
		domain := 1 + rng.Intn(n)
		seq := make([]int, n)
		for j := range seq {
			seq[j] = rng.Intn(domain)
		}

		e := New[int]()
		base, baseFound, err := e.FindMajority(seq)
		require.NoError(t, err)

		opt, optFound, err := e.FindMajorityOptimized(seq)
		require.NoError(t, err)
		require.Equal(t, baseFound, optFound, "optimized verdict diverged on %v", seq)
		require.Equal(t, base, opt)

		enh, enhFound, err := e.FindMajorityEnhanced(seq)
		require.NoError(t, err)
		require.Equal(t, baseFound, enhFound, "enhanced verdict diverged on %v", seq)
		require.Equal(t, base, enh)

		par, parFound, err := e.FindMajorityParallel(seq, 4)
		require.NoError(t, err)
		require.Equal(t, baseFound, parFound, "parallel verdict diverged on %v", seq)
		require.Equal(t, base, par)
	}
}

func TestFindMajorityEnhanced_EdgeBranches(t *testing.T) {
	e := New[int]()

	v, found, err := e.FindMajorityEnhanced([]int{42})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 42, v)

	v, found, err = e.FindMajorityEnhanced([]int{3, 3})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, v)

	_, found, err = e.FindMajorityEnhanced([]int{3, 4})
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = e.FindMajorityEnhanced(nil)
	assert.True(t, IsInvalidInput(err))
}

func TestFindByVariant(t *testing.T) {
	e := New[int]()
	seq := []int{1, 1, 2}

	for _, v := range Variants {
		t.Run(string(v), func(t *testing.T) {
			got, found, err := e.FindByVariant(v, seq, 2)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 1, got)
		})
	}

	_, _, err := e.FindByVariant("no-such-variant", seq, 0)
	require.Error(t, err)
}

func TestFindMajorityBatch(t *testing.T) {
	e := New[int]()

	batch := [][]int{
		{1, 1, 1, 2},    // majority 1
		{2, 2, 3},       // majority 2
		{1, 2, 3},       // no majority
		{1, 1},          // majority 1 again (set dedupes)
		nil,             // invalid, contributes nothing
		{},              // invalid, contributes nothing
	}

	got := e.FindMajorityBatch(batch)
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, got)
}

func TestFindMajorityBatch_Empty(t *testing.T) {
	e := New[int]()
	got := e.FindMajorityBatch(nil)
	assert.Empty(t, got)
}

// Cost invariant: exactly 2n comparisons and 2n accesses per call,
// independent of input distribution.
func TestFindMajority_CostInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 500

	distributions := map[string][]int{
		"random":    randomSlice(rng, n, n),
		"sorted":    sortedSlice(n),
		"reversed":  reversedSlice(n),
		"alternate": alternatingSlice(n),
		"identical": identicalSlice(n),
	}

	for name, seq := range distributions {
		t.Run(name, func(t *testing.T) {
			tr := metrics.NewTracker("boyer_moore")
			e := NewInstrumented[int](tr)

			_, _, err := e.FindMajority(seq)
			require.NoError(t, err)

			assert.Equal(t, int64(2*n), tr.Comparisons())
			assert.Equal(t, int64(2*n), tr.Accesses())
			assert.Equal(t, int64(1), tr.Calls())
		})
	}
}

func TestFindMajority_CostAccumulatesAcrossCalls(t *testing.T) {
	tr := metrics.NewTracker("boyer_moore")
	e := NewInstrumented[int](tr)

	seq := []int{1, 2, 1}
	_, _, err := e.FindMajority(seq)
	require.NoError(t, err)
	_, _, err = e.FindMajority(seq)
	require.NoError(t, err)

	assert.Equal(t, int64(12), tr.Comparisons())
	assert.Equal(t, int64(12), tr.Accesses())
	assert.Equal(t, int64(2), tr.Calls())

	e.ResetMetrics()
	assert.Equal(t, int64(0), tr.Comparisons())
	assert.Equal(t, int64(0), tr.Calls())
}

func TestFindMajority_InvalidInputNotCounted(t *testing.T) {
	tr := metrics.NewTracker("boyer_moore")
	e := NewInstrumented[int](tr)

	_, _, err := e.FindMajority(nil)
	require.Error(t, err)

	assert.Equal(t, int64(0), tr.Calls())
	assert.Equal(t, int64(0), tr.Comparisons())
}

func TestFindMajorityOptimized_NeverExceedsBaselineCost(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(300)
		seq := randomSlice(rng, n, 1+rng.Intn(n))

		tr := metrics.NewTracker("boyer_moore_optimized")
		e := NewInstrumented[int](tr)
		_, _, err := e.FindMajorityOptimized(seq)
		require.NoError(t, err)

		require.LessOrEqual(t, tr.Comparisons(), int64(2*n))
		require.GreaterOrEqual(t, tr.Comparisons(), int64(n))
	}
}

func TestFindMajorityOptimized_EarlyExitOnIdentical(t *testing.T) {
	n := 1000
	tr := metrics.NewTracker("boyer_moore_optimized")
	e := NewInstrumented[int](tr)

	v, found, err := e.FindMajorityOptimized(identicalSlice(n))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, v)

	// Phase 2 stops right after count passes n/2.
	assert.Equal(t, int64(n+n/2+1), tr.Comparisons())
}

func randomSlice(rng *rand.Rand, n, domain int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = rng.Intn(domain)
	}
	return s
}

func sortedSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func reversedSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = n - i
	}
	return s
}

func alternatingSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i % 2
	}
	return s
}

func identicalSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
