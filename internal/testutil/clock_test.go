package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_StepsPerCall(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewClock(start, time.Second)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Second), c.Now())
	assert.Equal(t, start.Add(2*time.Second), c.Now())
}

func TestClock_Advance(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewClock(start, time.Nanosecond)

	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())
}

func TestFixedIDGenerator(t *testing.T) {
	g := NewFixedIDGenerator("run-1")
	assert.Equal(t, "run-1", g.Generate())
	assert.Equal(t, "run-1", g.Generate())
}

func TestFixedIDGenerator_DefaultID(t *testing.T) {
	g := NewFixedIDGenerator("")
	assert.Equal(t, "test-run-default", g.Generate())
}
