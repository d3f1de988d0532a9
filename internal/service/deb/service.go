package deb

import (
	"context"
	"errors"
	"fmt"

	"github.com/debtools/dotnet-deb/internal/logger"
	"github.com/debtools/dotnet-deb/internal/msbuild"
	"github.com/debtools/dotnet-deb/internal/project"
)

const (
	// CreateDebTarget is the build target supplied by the packaging
	// targets package that produces the Debian package.
	CreateDebTarget = "CreateDeb"

	// Property names understood by the build engine.
	propertyRuntimeIdentifier = "RuntimeIdentifier"
	propertyTargetFramework   = "TargetFramework"
	propertyConfiguration     = "Configuration"
	propertyVersionSuffix     = "VersionSuffix"
	propertyPackageOutputPath = "PackageOutputPath"
	propertyProjectAssetsFile = "ProjectAssetsFile"
)

// Builder is the subset of the build tool runner the service needs.
type Builder interface {
	Restore(ctx context.Context, projectPath string, props ...msbuild.Property) error
	EvaluateProperty(ctx context.Context, projectPath, name string, props ...msbuild.Property) (string, error)
	RunTarget(ctx context.Context, projectPath, target string, props ...msbuild.Property) error
}

// Options contains inputs for the packaging entry point.
type Options struct {
	// Project is the resolved project file path.
	Project string
	// Runtime is the runtime identifier to publish for (e.g. linux-x64).
	Runtime string
	// Framework is the target framework override (e.g. net8.0).
	Framework string
	// Configuration is the build configuration (e.g. Release).
	Configuration string
	// Output is the directory the package is written to.
	Output string
	// VersionSuffix is appended to the package version.
	VersionSuffix string
	// NoRestore skips the restore and extension presence check.
	NoRestore bool
	// Builder invokes the build tool. When nil the default msbuild
	// runner is used; tests supply a fake.
	Builder Builder
}

// errProjectRequired is returned when Options carries no project path.
var errProjectRequired = errors.New("project file path must be provided")

// service drives one packaging run.
// It is unexported; callers use Run, which encapsulates setup and validation.
type service struct {
	// builder invokes the build tool.
	builder Builder
	// opts holds the immutable invocation request.
	opts *Options
}

// Run executes the packaging workflow: verify the packaging targets
// dependency is restored (unless skipped) and dispatch the CreateDeb target.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "dotnet-deb")

	if opts.Project == "" {
		return errProjectRequired
	}

	builder := opts.Builder
	if builder == nil {
		builder = msbuild.NewRunner()
	}

	svc := &service{
		builder: builder,
		opts:    opts,
	}

	if opts.NoRestore {
		logger.Debug(ctx, "Skipping restore and extension check")
	} else if err := svc.checkPackagingTargets(ctx); err != nil {
		return err
	}

	return svc.dispatch(ctx)
}

// checkPackagingTargets restores the project and confirms the packaging
// targets package ended up in the dependency lock file.
func (s *service) checkPackagingTargets(ctx context.Context) error {
	projectPath := s.opts.Project
	overrides := s.frameworkOverride()

	logger.InfoKV(ctx, "Restoring project", "project", projectPath)

	if err := s.builder.Restore(ctx, projectPath, overrides...); err != nil {
		return fmt.Errorf("failed to restore %s: %w", projectPath, flattenExitError(err))
	}

	framework, err := s.builder.EvaluateProperty(ctx, projectPath, propertyTargetFramework, overrides...)
	if err != nil {
		return fmt.Errorf("read target framework of %s: %w", projectPath, flattenExitError(err))
	}

	if framework == "" {
		return fmt.Errorf("%s does not set a default target framework, pass one with --framework", projectPath)
	}

	assetsPath, err := s.builder.EvaluateProperty(ctx, projectPath, propertyProjectAssetsFile, overrides...)
	if err != nil {
		return fmt.Errorf("read lock file path of %s: %w", projectPath, flattenExitError(err))
	}

	if assetsPath == "" {
		return fmt.Errorf("failed to determine the project.assets.json path for %s, try restoring again", projectPath)
	}

	snapshot, err := project.ReadLockSnapshot(assetsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s, try restoring again: %w", assetsPath, err)
	}

	if !snapshot.HasLibrary(project.PackageID) {
		return fmt.Errorf("%s doesn't have a PackageReference to %s, run 'dotnet-deb install' first",
			projectPath, project.PackageID)
	}

	logger.DebugKV(ctx, "Extension package found in lock file", "package", project.PackageID)

	return nil
}

// dispatch runs the CreateDeb target with the request's properties.
// A failing build surfaces unchanged as *msbuild.ExitError.
func (s *service) dispatch(ctx context.Context) error {
	props := s.packProperties()

	logger.InfoKV(ctx, "Creating Debian package", "project", s.opts.Project)

	if err := s.builder.RunTarget(ctx, s.opts.Project, CreateDebTarget, props...); err != nil {
		return err
	}

	logger.Info(ctx, "Package created successfully")

	return nil
}

// packProperties maps non-empty request fields to build properties in a
// stable order.
func (s *service) packProperties() []msbuild.Property {
	props := make([]msbuild.Property, 0, 5)

	if s.opts.Runtime != "" {
		props = append(props, msbuild.Property{Name: propertyRuntimeIdentifier, Value: s.opts.Runtime})
	}

	if s.opts.Framework != "" {
		props = append(props, msbuild.Property{Name: propertyTargetFramework, Value: s.opts.Framework})
	}

	if s.opts.Configuration != "" {
		props = append(props, msbuild.Property{Name: propertyConfiguration, Value: s.opts.Configuration})
	}

	if s.opts.VersionSuffix != "" {
		props = append(props, msbuild.Property{Name: propertyVersionSuffix, Value: s.opts.VersionSuffix})
	}

	if s.opts.Output != "" {
		props = append(props, msbuild.Property{Name: propertyPackageOutputPath, Value: s.opts.Output})
	}

	return props
}

// flattenExitError strips the runner's exit-code error from precondition
// failures. Only the CreateDeb dispatch passes the subprocess exit code
// through; a failing restore or property evaluation exits as a
// precondition failure.
func flattenExitError(err error) error {
	var exitErr *msbuild.ExitError
	if errors.As(err, &exitErr) {
		return errors.New(exitErr.Error())
	}

	return err
}

// frameworkOverride forwards an explicit framework to restore and
// property evaluation so both match the later dispatch.
func (s *service) frameworkOverride() []msbuild.Property {
	if s.opts.Framework == "" {
		return nil
	}

	return []msbuild.Property{{Name: propertyTargetFramework, Value: s.opts.Framework}}
}
