// Package messages implements persistence for the saved-message library.
//
// The FileRepository stores and loads messages as YAML on disk and exposes a
// Repository interface that the library service depends on.
package messages
