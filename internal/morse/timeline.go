package morse

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Timing ratios in units (ITU).
const (
	DotUnits       = 1
	DashUnits      = 3
	IntraCharUnits = 1
	InterCharUnits = 3
	InterWordUnits = 7
)

// Phase tells whether a Timeline entry keeps the channel off or on.
type Phase uint8

const (
	// Pause keeps the channel off.
	Pause Phase = iota
	// Active drives the channel on.
	Active
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	if p == Active {
		return "active"
	}

	return "pause"
}

// Timeline is a compiled playback pattern: millisecond durations strictly
// alternating pause, active, pause, ... and always starting with a pause.
// The zero value is an empty timeline; Compile never returns one.
type Timeline struct {
	entries []int
}

// Step is a Timeline entry placed on the playback time axis.
type Step struct {
	Phase    Phase
	OffsetMs int
	Ms       int
}

// Offset returns the start of the step as a duration.
func (s Step) Offset() time.Duration {
	return time.Duration(s.OffsetMs) * time.Millisecond
}

// End returns the end of the step as a duration.
func (s Step) End() time.Duration {
	return time.Duration(s.OffsetMs+s.Ms) * time.Millisecond
}

// Durations returns a copy of the entries.
func (t Timeline) Durations() []int {
	return append([]int(nil), t.entries...)
}

// Len returns the number of entries.
func (t Timeline) Len() int {
	return len(t.entries)
}

// Total returns the sum of all entries in milliseconds.
func (t Timeline) Total() int {
	return lo.Sum(t.entries)
}

// Duration returns Total as a time.Duration.
func (t Timeline) Duration() time.Duration {
	return time.Duration(t.Total()) * time.Millisecond
}

// IsEmpty reports whether there is nothing to play.
func (t Timeline) IsEmpty() bool {
	return len(t.entries) <= 1 || t.Total() <= 0
}

// Phase returns the phase of entry i. Even entries are pauses.
func (t Timeline) Phase(i int) Phase {
	if i%2 == 1 {
		return Active
	}

	return Pause
}

// Steps returns every entry together with its start offset.
func (t Timeline) Steps() []Step {
	steps := make([]Step, 0, len(t.entries))
	offset := 0

	for i, ms := range t.entries {
		steps = append(steps, Step{
			Phase:    t.Phase(i),
			OffsetMs: offset,
			Ms:       ms,
		})
		offset += ms
	}

	return steps
}

// builder appends durations while keeping the pause/active alternation.
// Consecutive pauses are merged into the last pause entry.
type builder struct {
	entries []int
	// expectActive is true when the last entry is a pause.
	expectActive bool
}

func newBuilder() *builder {
	return &builder{
		entries:      []int{0},
		expectActive: true,
	}
}

func (b *builder) active(ms int) {
	if ms <= 0 {
		return
	}

	if !b.expectActive {
		b.entries = append(b.entries, 0)
	}

	b.entries = append(b.entries, ms)
	b.expectActive = false
}

func (b *builder) pause(ms int) {
	if ms <= 0 {
		return
	}

	if b.expectActive {
		b.entries[len(b.entries)-1] += ms

		return
	}

	b.entries = append(b.entries, ms)
	b.expectActive = true
}

func (b *builder) timeline() Timeline {
	return Timeline{entries: b.entries}
}

// Compile turns text into a Timeline using unitMs as the dit length.
// unitMs below 1 is raised to 1. Text without encodable characters
// compiles to the single leading pause [0].
func Compile(text string, unitMs int) Timeline {
	unit := max(1, unitMs)
	b := newBuilder()

	words := strings.Fields(strings.ToUpper(strings.TrimSpace(text)))
	for wordIndex, word := range words {
		codes := wordCodes(word)

		for letterIndex, code := range codes {
			for symbolIndex, symbol := range code.Symbols() {
				if symbolIndex > 0 {
					b.pause(unit * IntraCharUnits)
				}

				if symbol == Dot {
					b.active(unit * DotUnits)
				} else {
					b.active(unit * DashUnits)
				}
			}

			if letterIndex < len(codes)-1 {
				b.pause(unit * InterCharUnits)
			}
		}

		if wordIndex < len(words)-1 && len(codes) > 0 {
			b.pause(unit * InterWordUnits)
		}
	}

	return b.timeline()
}

// wordCodes returns the letter codes of the encodable characters in word.
func wordCodes(word string) []Code {
	codes := make([]Code, 0, len(word))

	for _, r := range word {
		if code, ok := Lookup(r); ok {
			codes = append(codes, code)
		}
	}

	return codes
}
