// Package playback contains the core domain types of Morse playback.
//
// It defines the resolved channel Config supplied to every start, the State
// of the scheduler state machine and the Status snapshot observed by callers.
package playback
