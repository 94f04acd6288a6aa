// Package playback drives compiled Morse timelines onto the vibration and
// light channels.
//
// Scheduler owns the Idle/Playing state machine. Each start creates one
// playback handle holding every deferred light transition and the completion
// deadline; starting again, cancelling or completing tears the handle down
// synchronously and leaves both channels off.
package playback
