// Package beacon runs a single Morse playback from the command line.
//
// Run resolves the text to play, drives the simulated vibration motor and the
// terminal torch through the playback scheduler and blocks until the playback
// completes or the context is cancelled. Settings edits made while playing are
// applied live.
package beacon
