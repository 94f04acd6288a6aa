package playback

import "time"

// DefaultUnitMs is the dit length used when none is configured.
const DefaultUnitMs = 200

// Config holds the resolved values one playback is started with.
type Config struct {
	// UnitMs is the dit length in milliseconds.
	UnitMs int
	// Vibration enables the vibration channel.
	Vibration bool
	// Light enables the light channel.
	Light bool
	// LightAvailable reports whether the light device can be driven.
	LightAvailable bool
}

// HasChannel reports whether at least one channel is enabled.
func (c Config) HasChannel() bool {
	return c.Vibration || c.Light
}

// LightBlocked reports whether the light is requested but cannot be used.
func (c Config) LightBlocked() bool {
	return c.Light && !c.LightAvailable
}

// State is the scheduler state.
type State uint8

const (
	// Idle means nothing is scheduled.
	Idle State = iota
	// Playing means a playback handle is live.
	Playing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	// State is the current state.
	State State
	// Text is the currently playing text, empty once cleared.
	Text string
	// PlaybackID identifies the live or last playback.
	PlaybackID string
	// Config is the configuration the live or last playback started with.
	Config Config
	// StartedAt is when the live or last playback started.
	StartedAt time.Time
	// Duration is the compiled length of the live or last playback.
	Duration time.Duration
}

// Clone returns a copy of the status.
func (s *Status) Clone() *Status {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// IsPlaying reports whether the status describes a live playback.
func (s *Status) IsPlaying() bool {
	return s != nil && s.State == Playing
}
