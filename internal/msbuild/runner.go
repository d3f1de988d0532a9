package msbuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/debtools/dotnet-deb/internal/logger"
)

const (
	// DefaultTool is the CLI entry point for the build engine.
	DefaultTool = "dotnet"

	// RestoreTarget is the build target that resolves project dependencies.
	RestoreTarget = "Restore"
)

// Property is a named build property forwarded to msbuild via /p:.
type Property struct {
	// Name is the msbuild property name (e.g. RuntimeIdentifier).
	Name string
	// Value is the raw property value.
	Value string
}

// flag renders the property as an msbuild command line argument.
func (p Property) flag() string {
	return fmt.Sprintf("/p:%s=%s", p.Name, p.Value)
}

// ExitError reports a build tool subprocess that finished with a non-zero
// exit code. The code is propagated as the tool's own exit code.
type ExitError struct {
	// Code is the subprocess exit code.
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("build tool exited with code %d", e.Code)
}

// Runner invokes the build tool CLI as a subprocess.
type Runner struct {
	// tool is the build tool executable (dotnet by default).
	tool string
	// verbose raises msbuild verbosity and streams restore output.
	verbose bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithTool overrides the build tool executable.
func WithTool(tool string) Option {
	return func(r *Runner) {
		r.tool = tool
	}
}

// WithVerbose controls msbuild verbosity and restore output streaming.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

// NewRunner creates a Runner for the default build tool.
func NewRunner(opts ...Option) *Runner {
	runner := &Runner{
		tool: DefaultTool,
	}
	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Restore runs the Restore target for the project. Output is streamed in
// verbose mode, otherwise captured and logged at debug level on failure.
func (r *Runner) Restore(ctx context.Context, projectPath string, props ...Property) error {
	args := targetArgs(projectPath, RestoreTarget, r.verbose, props)

	logger.DebugKV(ctx, "Restoring project", "command", commandLine(r.tool, args))

	cmd := exec.CommandContext(ctx, r.tool, args...)

	var output bytes.Buffer

	if r.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	if err := cmd.Run(); err != nil {
		if output.Len() > 0 {
			logger.Debug(ctx, output.String())
		}

		return wrapRunError(err)
	}

	return nil
}

// EvaluateProperty asks msbuild for the resolved value of a single project
// property and returns it with surrounding whitespace trimmed.
func (r *Runner) EvaluateProperty(ctx context.Context, projectPath, name string, props ...Property) (string, error) {
	args := propertyArgs(projectPath, name, props)

	logger.DebugKV(ctx, "Evaluating property", "command", commandLine(r.tool, args))

	cmd := exec.CommandContext(ctx, r.tool, args...)

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			logger.Debug(ctx, stderr.String())
		}

		return "", wrapRunError(err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunTarget runs a named build target with the given properties, streaming
// the build tool's output to this process's stdout and stderr.
func (r *Runner) RunTarget(ctx context.Context, projectPath, target string, props ...Property) error {
	args := targetArgs(projectPath, target, r.verbose, props)

	logger.DebugKV(ctx, "Running build target", "command", commandLine(r.tool, args))

	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return wrapRunError(err)
	}

	return nil
}

// targetArgs builds the argument list for a /t: target invocation.
// The project path always comes last.
func targetArgs(projectPath, target string, verbose bool, props []Property) []string {
	args := make([]string, 0, len(props)+4)
	args = append(args, "msbuild", "/t:"+target, verbosityFlag(verbose))

	for _, prop := range props {
		args = append(args, prop.flag())
	}

	return append(args, projectPath)
}

// propertyArgs builds the argument list for a -getProperty evaluation.
func propertyArgs(projectPath, name string, props []Property) []string {
	args := make([]string, 0, len(props)+3)
	args = append(args, "msbuild", "-getProperty:"+name)

	for _, prop := range props {
		args = append(args, prop.flag())
	}

	return append(args, projectPath)
}

// verbosityFlag maps the verbose switch to an msbuild verbosity level.
func verbosityFlag(verbose bool) string {
	if verbose {
		return "-verbosity:detailed"
	}

	return "-verbosity:minimal"
}

// commandLine renders the full invocation for debug logging.
func commandLine(tool string, args []string) string {
	return tool + " " + strings.Join(args, " ")
}

// wrapRunError converts subprocess failures into ExitError where an exit
// code is available.
func wrapRunError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ProcessState != nil {
		return &ExitError{Code: exitErr.ProcessState.ExitCode()}
	}

	return fmt.Errorf("run build tool: %w", err)
}
