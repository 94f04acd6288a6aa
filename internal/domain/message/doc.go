// Package message defines saved Morse messages kept in the local library.
package message
