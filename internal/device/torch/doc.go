// Package torch renders a binary light strobe on a terminal.
//
// Terminal redraws a single coloured cell in place on every state change.
// It is available only when its output is an interactive terminal unless
// availability is forced.
package torch
