package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/debtools/dotnet-deb/internal/config"
	"github.com/debtools/dotnet-deb/internal/logger"
	"github.com/debtools/dotnet-deb/internal/msbuild"
	"github.com/debtools/dotnet-deb/internal/project"
	"github.com/debtools/dotnet-deb/internal/service/deb"
	"github.com/debtools/dotnet-deb/internal/service/install"
	"github.com/debtools/dotnet-deb/internal/version"
)

// failureExitCode is used for resolution and precondition failures.
// The OS masks it to 255; a failing build dispatch instead exits with the
// build tool's own code.
const failureExitCode = -1

var (
	// runtimeID is the runtime identifier to publish for.
	runtimeID string
	// framework is the target framework override.
	framework string
	// configuration is the build configuration.
	configuration string
	// output is the directory the package is written to.
	output string
	// versionSuffix is appended to the package version.
	versionSuffix string
	// noRestore skips the restore and extension presence check.
	noRestore bool
	// verbose raises log and msbuild verbosity.
	verbose bool
	// configPath points at an optional packaging defaults YAML file.
	configPath string

	// rootCmd represents the base command that creates a Debian package.
	rootCmd = &cobra.Command{
		Use:          "dotnet-deb [project]",
		Short:        "Create a Debian package from a .NET project",
		SilenceUsage: true,
		Long: `Create a Debian package from a .NET project's build output.

The project file is discovered in the current directory when not passed
explicitly; exactly one project file must be present. Unless --no-restore
is set, the project is restored first and the run fails when the
Packaging.Targets package is missing from the dependency lock file (run
'dotnet-deb install' once per repository to add it). The actual package
is produced by dispatching the CreateDeb msbuild target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if verbose {
				logger.SetLevel(zapcore.DebugLevel)
			}

			defaults, err := config.Load(configPath)
			if err != nil {
				return err
			}

			applyDefaults(defaults)

			var explicit string
			if len(args) > 0 {
				explicit = args[0]
			}

			workingDir, err := os.Getwd()
			if err != nil {
				return err
			}

			projectPath, err := project.Find(workingDir, explicit)
			if err != nil {
				return err
			}

			options := &deb.Options{
				Project:       projectPath,
				Runtime:       runtimeID,
				Framework:     framework,
				Configuration: configuration,
				Output:        output,
				VersionSuffix: versionSuffix,
				NoRestore:     noRestore,
				Builder:       msbuild.NewRunner(msbuild.WithVerbose(verbose)),
			}

			return deb.Run(ctx, options)
		},
	}

	// installCmd augments Directory.Build.props with the packaging targets dependency.
	installCmd = &cobra.Command{
		Use:          "install",
		Short:        "Add the Packaging.Targets dependency to Directory.Build.props",
		SilenceUsage: true,
		Long: `Add a PackageReference to the Packaging.Targets package to the shared
Directory.Build.props file in the current directory, creating the file
when absent. The reference is pinned to this tool's own version with a
wildcard prerelease suffix. Running install again is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return install.Run(ctx, &install.Options{})
		},
	}
)

// applyDefaults fills unset flags from the packaging defaults file.
// Flags always win over file defaults.
func applyDefaults(defaults *config.Config) {
	if runtimeID == "" {
		runtimeID = defaults.Runtime
	}

	if framework == "" {
		framework = defaults.Framework
	}

	if configuration == "" {
		configuration = defaults.Configuration
	}

	if output == "" {
		output = defaults.Output
	}
}

// Execute runs the dotnet-deb CLI and exits with a non-zero status on error.
// A failing build dispatch exits with the build tool's exit code.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(installCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *msbuild.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(failureExitCode)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&runtimeID, "runtime", "r", "", "runtime identifier to publish for (e.g. linux-x64)")
	rootCmd.Flags().StringVarP(&framework, "framework", "f", "", "target framework (e.g. net8.0)")
	rootCmd.Flags().StringVarP(&configuration, "configuration", "c", "", "build configuration (e.g. Release)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "directory to place the package in")
	rootCmd.Flags().StringVar(&versionSuffix, "version-suffix", "", "version suffix for the package")
	rootCmd.Flags().BoolVar(&noRestore, "no-restore", false, "skip restore and the extension presence check")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a packaging defaults file (default "+config.DefaultConfigFilename+")")
}
