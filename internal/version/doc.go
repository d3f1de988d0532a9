// Package version exposes build metadata for the tool.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// Short and Full render the version string for CLI output; Core produces
// the bare major.minor.patch used to pin the packaging targets dependency.
package version
