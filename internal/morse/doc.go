// Package morse maps text to International Morse code.
//
// It holds the static symbol table, a display encoder that renders text as
// dots and dashes, and the timing compiler that turns text into a Timeline
// of alternating pause/active durations measured in whole milliseconds.
package morse
