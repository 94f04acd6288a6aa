// Package version exposes build metadata of the morse-beacon binary.
//
// Version, Commit and BuildTime are set through -ldflags at build time and
// keep development defaults otherwise.
package version
