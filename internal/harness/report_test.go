package harness

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvbench/internal/plan"
	"mvbench/internal/testutil"
	"mvbench/internal/vote"
)

func TestRenderText(t *testing.T) {
	clock := testutil.NewClock(time.Unix(0, 0), 75*time.Nanosecond)
	runner := &Runner{
		IDGen:  testutil.NewFixedIDGenerator("report-run"),
		Now:    clock.Now,
		Logger: quietLogger(),
	}
	p := &plan.Plan{
		Name:          "report",
		Sizes:         []int{1000},
		Distributions: []string{"majority"},
		Variants:      []vote.Variant{vote.VariantBaseline},
		Repetitions:   1,
		Seed:          1,
	}

	res, err := runner.Run(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "run report-run (plan report)")
	assert.Contains(t, out, "ALGORITHM")
	assert.Contains(t, out, "boyer_moore")
	// Counters are grouped by thousands: 2n = 2000 comparisons.
	assert.Contains(t, out, "2,000")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "42")
}

func TestRenderText_AbsentMajority(t *testing.T) {
	res := &RunResult{
		RunID:    "r",
		PlanName: "p",
		Rows: []Row{
			{Algorithm: "boyer_moore", Size: 4, Distribution: DistAlternating, Comparisons: 8, Accesses: 8, Calls: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, res))
	assert.Contains(t, buf.String(), "-")
}

func TestRenderScenarioResults(t *testing.T) {
	pass := NewResult("good")
	fail := NewResult("bad")
	fail.AddError("majority present = false, expected true")

	var buf bytes.Buffer
	require.NoError(t, RenderScenarioResults(&buf, []*Result{pass, fail}))

	out := buf.String()
	assert.Contains(t, out, "PASS good")
	assert.Contains(t, out, "FAIL bad")
	assert.Contains(t, out, "  majority present = false, expected true")
	assert.Contains(t, out, "1/2 scenarios passed")
}
