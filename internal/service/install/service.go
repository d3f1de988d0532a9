package install

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/debtools/dotnet-deb/internal/logger"
	"github.com/debtools/dotnet-deb/internal/project"
	"github.com/debtools/dotnet-deb/internal/version"
)

// Options contains inputs for the install entry point.
type Options struct {
	// Dir is the directory whose shared build configuration is augmented.
	// Defaults to the current working directory.
	Dir string
}

// Run makes the packaging targets package resolvable by every project
// under the directory: it loads or creates Directory.Build.props there
// and ensures a PackageReference to the package pinned to this tool's
// major.minor.patch with a wildcard prerelease suffix. Re-running with
// the reference already present is a no-op.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "dotnet-deb")

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	pin, err := pinnedVersion()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, project.PropsFilename)

	added, err := project.EnsurePackageReference(path, project.PackageID, pin)
	if err != nil {
		return fmt.Errorf("install %s reference: %w", project.PackageID, err)
	}

	if added {
		logger.InfoKV(ctx, "Added package reference",
			"package", project.PackageID, "version", pin, "path", path)
	} else {
		logger.InfoKV(ctx, "Package reference already present",
			"package", project.PackageID, "path", path)
	}

	return nil
}

// pinnedVersion derives the dependency pin from the running tool's own
// version: major.minor.patch plus a wildcard prerelease suffix, so any
// matching prerelease of the targets package resolves.
func pinnedVersion() (string, error) {
	core, err := version.Core()
	if err != nil {
		return "", err
	}

	return core + "-*", nil
}
