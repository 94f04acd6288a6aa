package torch

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrUnavailable is returned when the torch is driven without an output that can show it.
var ErrUnavailable = errors.New("torch is not available")

const (
	onLabel  = " ON  "
	offLabel = " off "
)

// Terminal is a light strobe drawn on a terminal line.
type Terminal struct {
	out       io.Writer
	available bool
	onStyle   lipgloss.Style
	offStyle  lipgloss.Style

	mu sync.Mutex
	on bool
	// drawn is false until the first frame is written.
	drawn bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithAvailable forces the availability flag instead of detecting a terminal.
func WithAvailable(available bool) Option {
	return func(t *Terminal) {
		t.available = available
	}
}

// WithColor sets the background colour of the lit cell.
func WithColor(color string) Option {
	return func(t *Terminal) {
		if color != "" {
			t.onStyle = t.onStyle.Background(lipgloss.Color(color))
		}
	}
}

// New creates a torch drawing to out.
func New(out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		out:       out,
		available: IsTerminal(out),
		onStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("226")),
		offStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Background(lipgloss.Color("235")),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit into int.
}

// Available reports whether the torch can be driven.
func (t *Terminal) Available() bool {
	return t.available
}

// IsOn reports the last state drawn.
func (t *Terminal) IsOn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.on
}

// SetOn lights or darkens the torch, redrawing the cell in place.
func (t *Terminal) SetOn(on bool) error {
	if !t.available {
		return ErrUnavailable
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.drawn && t.on == on {
		return nil
	}

	frame := t.offStyle.Render(offLabel)
	if on {
		frame = t.onStyle.Render(onLabel)
	}

	if _, err := fmt.Fprint(t.out, "\r"+frame); err != nil {
		return fmt.Errorf("draw torch: %w", err)
	}

	t.on = on
	t.drawn = true

	return nil
}

// Finish moves the cursor past the torch line once the torch has been drawn.
func (t *Terminal) Finish() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.drawn {
		return nil
	}

	t.drawn = false

	if _, err := fmt.Fprintln(t.out); err != nil {
		return fmt.Errorf("finish torch line: %w", err)
	}

	return nil
}
