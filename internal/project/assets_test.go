package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReadLockSnapshot verifies the library key set extraction and prefix check.
func TestReadLockSnapshot(t *testing.T) {
	t.Parallel()

	contents := `{
  "version": 3,
  "libraries": {
    "Newtonsoft.Json/13.0.3": {"type": "package"},
    "Packaging.Targets/0.9.6": {"type": "package"}
  },
  "targets": {}
}`

	path := filepath.Join(t.TempDir(), "project.assets.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	snapshot, err := ReadLockSnapshot(path)
	require.NoError(t, err)
	require.True(t, snapshot.HasLibrary(PackageID))
	require.False(t, snapshot.HasLibrary("Some.Other.Package"))
}

// TestReadLockSnapshotMissingPackage checks the negative presence result.
func TestReadLockSnapshotMissingPackage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.assets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"libraries": {"Newtonsoft.Json/13.0.3": {}}}`), 0o600))

	snapshot, err := ReadLockSnapshot(path)
	require.NoError(t, err)
	require.False(t, snapshot.HasLibrary(PackageID))
}

// TestReadLockSnapshotErrors covers the missing file and malformed JSON cases.
func TestReadLockSnapshotErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := ReadLockSnapshot(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = ReadLockSnapshot(path)
	require.Error(t, err)
}
