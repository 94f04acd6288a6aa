package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback registration.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped it.
	Stop() bool
}

// Clock schedules deferred callbacks against a monotonic time source.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
//
//nolint:ireturn // Callers depend on the interface only.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

//nolint:ireturn // *time.Timer satisfies Timer.
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu sync.Mutex
	// now is the current fake time.
	now time.Time
	// seq orders timers registered for the same deadline.
	seq uint64
	// timers holds pending registrations.
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
}

// NewFake creates a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// AfterFunc registers fn to run once the clock is advanced past d.
//
//nolint:ireturn // Matches the Clock interface.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++

	t := &fakeTimer{
		clock:    f,
		deadline: f.now.Add(max(0, d)),
		seq:      f.seq,
		fn:       fn,
	}
	f.timers = append(f.timers, t)

	return t
}

// Advance moves the clock forward by d, running every due callback in deadline order.
// Callbacks registered while advancing run too if they fall due before the new time.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		t := f.popDue(target)
		if t == nil {
			break
		}

		t.fn()
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// Pending returns the number of registered callbacks that have neither run nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}

// popDue removes and returns the earliest timer due at or before target.
func (f *Fake) popDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.timers) == 0 {
		return nil
	}

	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].deadline.Equal(f.timers[j].deadline) {
			return f.timers[i].seq < f.timers[j].seq
		}

		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})

	next := f.timers[0]
	if next.deadline.After(target) {
		return nil
	}

	f.timers = f.timers[1:]
	f.now = next.deadline

	return next
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped {
		return false
	}

	t.stopped = true

	for i, pending := range t.clock.timers {
		if pending == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)

			return true
		}
	}

	// Already fired.
	return false
}
