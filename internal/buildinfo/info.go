// Package buildinfo holds build-time version information injected via ldflags.
package buildinfo

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
