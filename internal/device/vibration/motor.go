package vibration

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/morse-beacon/internal/clock"
)

// ErrInvalidPattern is returned for patterns containing negative durations.
var ErrInvalidPattern = errors.New("invalid vibration pattern")

// Sink receives motor state changes.
type Sink func(on bool)

// Motor is a vibration motor driven by alternating off/on millisecond patterns.
type Motor struct {
	clock clock.Clock
	sink  Sink

	mu sync.Mutex
	// gen invalidates steps of a replaced or cancelled pattern.
	gen   uint64
	timer clock.Timer
	on    bool
}

// NewMotor creates a motor stepping on c and reporting to sink. A nil sink discards changes.
func NewMotor(c clock.Clock, sink Sink) *Motor {
	if c == nil {
		c = clock.Real()
	}

	if sink == nil {
		sink = func(bool) {}
	}

	return &Motor{
		clock: c,
		sink:  sink,
	}
}

// Vibrate replaces any running pattern with pattern. Entry i is an off duration
// for even i and an on duration for odd i. The motor stops once the pattern is exhausted.
func (m *Motor) Vibrate(pattern []int) error {
	for i, ms := range pattern {
		if ms < 0 {
			return fmt.Errorf("entry %d is %dms: %w", i, ms, ErrInvalidPattern)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	steps := append([]int(nil), pattern...)
	m.stepLocked(m.gen, steps, 0)

	return nil
}

// Cancel stops the motor immediately. It is safe to call at any time.
func (m *Motor) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
}

// IsOn reports whether the motor is currently running.
func (m *Motor) IsOn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.on
}

// stepLocked enters step i of steps and arms the next one.
func (m *Motor) stepLocked(gen uint64, steps []int, i int) {
	if i >= len(steps) {
		m.setLocked(false)
		m.timer = nil

		return
	}

	m.setLocked(i%2 == 1)

	m.timer = m.clock.AfterFunc(time.Duration(steps[i])*time.Millisecond, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.gen != gen {
			return
		}

		m.stepLocked(gen, steps, i+1)
	})
}

func (m *Motor) stopLocked() {
	m.gen++

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	m.setLocked(false)
}

func (m *Motor) setLocked(on bool) {
	if m.on == on {
		return
	}

	m.on = on
	m.sink(on)
}
