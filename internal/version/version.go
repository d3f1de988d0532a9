package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}

// Core returns the major.minor.patch part of Version with any prerelease
// or build metadata suffix stripped. The install command pins the
// packaging targets dependency to this value.
func Core() (string, error) {
	v, err := goversion.NewVersion(Version)
	if err != nil {
		return "", fmt.Errorf("parse tool version %q: %w", Version, err)
	}

	return v.Core().String(), nil
}
