// Package library manages the local saved-message library: adding, listing,
// favouriting and removing messages that can later be played by ID.
package library
