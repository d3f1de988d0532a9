package install

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/debtools/dotnet-deb/internal/project"
	"github.com/debtools/dotnet-deb/internal/version"
)

// TestRunCreatesProps verifies the props file is created with a pinned reference.
func TestRunCreatesProps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, Run(context.Background(), &Options{Dir: dir}))

	contents, err := os.ReadFile(filepath.Join(dir, project.PropsFilename))
	require.NoError(t, err)

	core, err := version.Core()
	require.NoError(t, err)

	text := string(contents)
	require.Contains(t, text, `Include="Packaging.Targets"`)
	require.Contains(t, text, `Version="`+core+`-*"`)
}

// TestRunIsIdempotent verifies a second run leaves exactly one declaration.
func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := &Options{Dir: dir}

	require.NoError(t, Run(context.Background(), opts))
	require.NoError(t, Run(context.Background(), opts))

	contents, err := os.ReadFile(filepath.Join(dir, project.PropsFilename))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(contents), `Include="Packaging.Targets"`))
}

// TestRunDefaultsToWorkingDirectory covers the empty Dir case.
func TestRunDefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, Run(context.Background(), &Options{}))

	_, err = os.Stat(filepath.Join(dir, project.PropsFilename))
	require.NoError(t, err)
}
