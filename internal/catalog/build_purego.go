//go:build !cgo_sqlite
// +build !cgo_sqlite

package catalog

// Compiled by default, without CGO. Uses a pure Go SQLite implementation:
// no C compiler required and cross-compilation stays trivial, at the cost
// of somewhat slower I/O. Fine for a catalog this size.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
