// Package version holds build metadata injected at link time via
// -ldflags "-X".
package version

var (
	// Version is the semantic release version.
	Version = "dev"
	// Commit is the short git commit hash of the build.
	Commit = "unknown"
)
