package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/morse-beacon/internal/clock"
	domain "github.com/oshokin/morse-beacon/internal/domain/playback"
	"github.com/oshokin/morse-beacon/internal/logger"
	"github.com/oshokin/morse-beacon/internal/morse"
)

// CompletionGrace is added to the timeline length before the playback is marked complete.
const CompletionGrace = 50 * time.Millisecond

// ErrLightUnavailable is returned by Start when the light channel is enabled but cannot be driven.
var ErrLightUnavailable = errors.New("light channel is enabled but unavailable")

// Vibrator is a vibration motor that steps through a pattern on its own.
// The pattern alternates off/on durations in milliseconds, starting with off.
type Vibrator interface {
	Vibrate(pattern []int) error
	Cancel()
}

// Light is a binary strobe.
type Light interface {
	SetOn(on bool) error
}

// Observer receives a snapshot after every state transition.
// It is called outside the scheduler lock.
type Observer func(status *domain.Status)

// transition is a light state change at an offset from the playback start.
type transition struct {
	at time.Duration
	on bool
}

// handle tracks the deferred work of one playback. Light transitions are
// armed one at a time so they fire in offset order.
type handle struct {
	id          string
	startedAt   time.Time
	transitions []transition
	next        int
	lightTimer  clock.Timer
	doneTimer   clock.Timer
	// cancelled is set before the timers are stopped.
	cancelled bool
}

// Scheduler plays Morse timelines. The zero value is not usable; use NewScheduler.
type Scheduler struct {
	// ctx carries the logger used by timer callbacks.
	ctx      context.Context //nolint:containedctx // Timer callbacks have no caller context.
	clock    clock.Clock
	vibrator Vibrator
	light    Light
	grace    time.Duration

	observers []Observer

	// mu serialises state changes and every device call.
	mu      sync.Mutex
	current *handle
	status  domain.Status
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithGrace overrides CompletionGrace.
func WithGrace(grace time.Duration) Option {
	return func(s *Scheduler) {
		if grace >= 0 {
			s.grace = grace
		}
	}
}

// WithObserver registers an observer of state transitions.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// NewScheduler creates an idle scheduler driving the given devices.
// ctx provides the logger for deferred callbacks.
func NewScheduler(ctx context.Context, vibrator Vibrator, light Light, opts ...Option) *Scheduler {
	s := &Scheduler{
		ctx:      logger.WithName(ctx, "scheduler"),
		clock:    clock.Real(),
		vibrator: vibrator,
		light:    light,
		grace:    CompletionGrace,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Status returns a snapshot of the scheduler.
func (s *Scheduler) Status() *domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status.Clone()
}

// Start plays text with cfg, replacing any live playback.
// Text without encodable characters and configs without enabled channels leave the scheduler idle.
// ErrLightUnavailable is returned when the light is enabled but not available.
func (s *Scheduler) Start(ctx context.Context, text string, cfg domain.Config) error {
	s.mu.Lock()
	err := s.startLocked(ctx, text, cfg)
	snapshot := s.status.Clone()
	s.mu.Unlock()

	s.notify(snapshot)

	return err
}

// Cancel stops the live playback, if any, and forces the channels off.
// clearText also clears the observed playing text. Safe to call when idle.
func (s *Scheduler) Cancel(ctx context.Context, clearText bool) {
	s.mu.Lock()
	changed := s.cancelLocked(ctx, clearText)
	snapshot := s.status.Clone()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// UpdateChannels handles a channel configuration change.
// While playing, losing every channel or the light availability cancels the playback with
// clearing, and any other change restarts the current text from zero under the new config.
func (s *Scheduler) UpdateChannels(ctx context.Context, cfg domain.Config) error {
	s.mu.Lock()

	var (
		changed bool
		err     error
	)

	switch {
	case s.status.State != domain.Playing:
	case !cfg.HasChannel() || cfg.LightBlocked():
		logger.InfoKV(ctx, "Channel configuration no longer playable, stopping",
			"vibration", cfg.Vibration, "light", cfg.Light, "light_available", cfg.LightAvailable)

		changed = s.cancelLocked(ctx, true)
	case cfg != s.status.Config:
		logger.InfoKV(ctx, "Channel configuration changed, restarting playback", "unit_ms", cfg.UnitMs)

		err = s.startLocked(ctx, s.status.Text, cfg)
		changed = true
	}

	snapshot := s.status.Clone()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}

	return err
}

// Close tears down the live playback without clearing the text.
// Used when the owner goes away rather than on a user stop.
func (s *Scheduler) Close(ctx context.Context) {
	s.Cancel(ctx, false)
}

func (s *Scheduler) startLocked(ctx context.Context, text string, cfg domain.Config) error {
	if s.status.State == domain.Playing {
		s.cancelLocked(ctx, true)
	}

	timeline := morse.Compile(text, cfg.UnitMs)
	if timeline.IsEmpty() {
		logger.DebugKV(ctx, "Nothing to play", "text", text)

		return nil
	}

	if !cfg.HasChannel() {
		logger.DebugKV(ctx, "No channel enabled, not playing")

		return nil
	}

	if cfg.LightBlocked() {
		s.forceOffLocked(ctx, false)

		return ErrLightUnavailable
	}

	s.forceOffLocked(ctx, cfg.LightAvailable)

	h := &handle{
		id:        newPlaybackID(),
		startedAt: s.clock.Now(),
	}
	s.current = h
	s.status = domain.Status{
		State:      domain.Playing,
		Text:       text,
		PlaybackID: h.id,
		Config:     cfg,
		StartedAt:  h.startedAt,
		Duration:   timeline.Duration(),
	}

	if cfg.Vibration {
		if err := s.vibrator.Vibrate(timeline.Durations()); err != nil {
			logger.ErrorKV(ctx, "Vibration device rejected pattern", "playback_id", h.id, "error", err)
		}
	}

	if cfg.Light {
		h.transitions = lightTransitions(timeline)
		s.armLocked(h)
	}

	h.doneTimer = s.clock.AfterFunc(timeline.Duration()+s.grace, func() {
		s.complete(h)
	})

	logger.InfoKV(ctx, "Playback started",
		"playback_id", h.id,
		"unit_ms", max(1, cfg.UnitMs),
		"vibration", cfg.Vibration,
		"light", cfg.Light,
		"duration", timeline.Duration(),
	)

	return nil
}

// lightTransitions returns an on transition at the start of every active phase
// and an off transition at its end. The last one marks the end of the final active phase.
func lightTransitions(timeline morse.Timeline) []transition {
	var transitions []transition

	for _, step := range timeline.Steps() {
		if step.Phase != morse.Active || step.Ms <= 0 {
			continue
		}

		transitions = append(transitions,
			transition{at: step.Offset(), on: true},
			transition{at: step.End(), on: false},
		)
	}

	return transitions
}

// armLocked registers the next pending light transition of h.
func (s *Scheduler) armLocked(h *handle) {
	if h.next >= len(h.transitions) {
		h.lightTimer = nil

		return
	}

	delay := h.transitions[h.next].at - s.clock.Now().Sub(h.startedAt)
	h.lightTimer = s.clock.AfterFunc(max(0, delay), func() {
		s.fireLight(h)
	})
}

// fireLight applies the next light transition unless its playback has been torn down.
func (s *Scheduler) fireLight(h *handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.cancelled || s.current != h || h.next >= len(h.transitions) {
		return
	}

	tr := h.transitions[h.next]
	h.next++

	if err := s.light.SetOn(tr.on); err != nil {
		logger.ErrorKV(s.ctx, "Light transition failed", "playback_id", h.id, "on", tr.on, "error", err)
	}

	s.armLocked(h)
}

// complete ends the playback once its deadline passes.
func (s *Scheduler) complete(h *handle) {
	s.mu.Lock()

	if h.cancelled || s.current != h {
		s.mu.Unlock()

		return
	}

	logger.InfoKV(s.ctx, "Playback completed", "playback_id", h.id)

	s.cancelLocked(s.ctx, true)
	snapshot := s.status.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// cancelLocked tears the live handle down. It reports whether observable state changed.
func (s *Scheduler) cancelLocked(ctx context.Context, clearText bool) bool {
	h := s.current
	wasPlaying := s.status.State == domain.Playing
	lightEnabled := s.status.Config.Light

	if h != nil {
		h.cancelled = true

		if h.lightTimer != nil {
			h.lightTimer.Stop()
		}

		if h.doneTimer != nil {
			h.doneTimer.Stop()
		}

		s.current = nil
	}

	s.forceOffLocked(ctx, wasPlaying && lightEnabled)

	s.status.State = domain.Idle

	hadText := s.status.Text != ""
	if clearText {
		s.status.Text = ""
	}

	if wasPlaying {
		logger.DebugKV(ctx, "Playback cancelled", "playback_id", s.status.PlaybackID, "clear_text", clearText)
	}

	return wasPlaying || (clearText && hadText)
}

// forceOffLocked stops the vibrator and, when asked, turns the light off.
func (s *Scheduler) forceOffLocked(ctx context.Context, light bool) {
	s.vibrator.Cancel()

	if !light {
		return
	}

	if err := s.light.SetOn(false); err != nil {
		logger.ErrorKV(ctx, "Failed to turn light off", "error", err)
	}
}

func (s *Scheduler) notify(status *domain.Status) {
	for _, o := range s.observers {
		o(status.Clone())
	}
}

func newPlaybackID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
