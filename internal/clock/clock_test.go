package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFake_OrderAndStop verifies deadline ordering, tie-breaking and Stop.
func TestFake_OrderAndStop(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	c := NewFake(start)

	var fired []string

	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })
	stopped := c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "x") })

	require.Equal(t, 4, c.Pending())
	require.True(t, stopped.Stop())
	require.False(t, stopped.Stop())
	require.Equal(t, 3, c.Pending())

	c.Advance(15 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, fired)
	require.Equal(t, start.Add(15*time.Millisecond), c.Now())

	c.Advance(15 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Zero(t, c.Pending())
}

// TestFake_NestedRegistration verifies callbacks scheduled from callbacks.
func TestFake_NestedRegistration(t *testing.T) {
	t.Parallel()

	c := NewFake(time.Unix(0, 0))

	var at []time.Duration

	c.AfterFunc(10*time.Millisecond, func() {
		at = append(at, c.Now().Sub(time.Unix(0, 0)))
		c.AfterFunc(5*time.Millisecond, func() {
			at = append(at, c.Now().Sub(time.Unix(0, 0)))
		})
	})

	c.Advance(time.Second)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, at)
}

// TestReal_AfterFunc checks the real clock delegates to the time package.
func TestReal_AfterFunc(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}

	require.False(t, Real().Now().IsZero())
}
