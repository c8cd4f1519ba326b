// Package buildinfo carries version metadata stamped in at build time via
// -ldflags "-X github.com/farthing-dev/farthing/internal/buildinfo.Version=...".
package buildinfo

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the short git hash of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
