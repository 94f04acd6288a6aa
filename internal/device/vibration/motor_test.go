package vibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/morse-beacon/internal/clock"
)

type change struct {
	at time.Duration
	on bool
}

func newTestMotor(t *testing.T) (*Motor, *clock.Fake, *[]change) {
	t.Helper()

	start := time.Unix(0, 0)
	c := clock.NewFake(start)
	changes := new([]change)

	m := NewMotor(c, func(on bool) {
		*changes = append(*changes, change{at: c.Now().Sub(start), on: on})
	})

	return m, c, changes
}

// TestMotor_StepsPattern verifies the motor follows the off/on pattern and stops at the end.
func TestMotor_StepsPattern(t *testing.T) {
	t.Parallel()

	m, c, changes := newTestMotor(t)

	require.NoError(t, m.Vibrate([]int{0, 100, 100, 300}))
	c.Advance(time.Second)

	require.Equal(t, []change{
		{at: 0, on: true},
		{at: 100 * time.Millisecond, on: false},
		{at: 200 * time.Millisecond, on: true},
		{at: 500 * time.Millisecond, on: false},
	}, *changes)
	require.False(t, m.IsOn())
	require.Zero(t, c.Pending())
}

// TestMotor_Cancel verifies cancellation is immediate and idempotent.
func TestMotor_Cancel(t *testing.T) {
	t.Parallel()

	m, c, changes := newTestMotor(t)

	m.Cancel()
	require.Empty(t, *changes)

	require.NoError(t, m.Vibrate([]int{0, 100, 100, 300}))
	c.Advance(50 * time.Millisecond)
	require.True(t, m.IsOn())

	m.Cancel()
	m.Cancel()
	require.False(t, m.IsOn())
	require.Zero(t, c.Pending())

	c.Advance(time.Second)
	require.Equal(t, []change{{0, true}, {50 * time.Millisecond, false}}, *changes)
}

// TestMotor_Replace verifies a new pattern replaces the running one.
func TestMotor_Replace(t *testing.T) {
	t.Parallel()

	m, c, changes := newTestMotor(t)

	require.NoError(t, m.Vibrate([]int{0, 1000}))
	c.Advance(10 * time.Millisecond)
	require.NoError(t, m.Vibrate([]int{20, 10}))
	c.Advance(time.Second)

	require.Equal(t, []change{
		{0, true},
		{10 * time.Millisecond, false},
		{30 * time.Millisecond, true},
		{40 * time.Millisecond, false},
	}, *changes)
}

// TestMotor_InvalidPattern verifies negative durations are rejected.
func TestMotor_InvalidPattern(t *testing.T) {
	t.Parallel()

	m, c, _ := newTestMotor(t)

	err := m.Vibrate([]int{0, -1})
	require.ErrorIs(t, err, ErrInvalidPattern)
	require.Zero(t, c.Pending())

	require.NoError(t, NewMotor(nil, nil).Vibrate(nil))
}
