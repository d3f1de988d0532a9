package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEnsurePackageReferenceCreatesFile checks creation from scratch.
func TestEnsurePackageReferenceCreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), PropsFilename)

	added, err := EnsurePackageReference(path, PackageID, "0.1.0-*")
	require.NoError(t, err)
	require.True(t, added)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `Include="Packaging.Targets"`)
	require.Contains(t, string(contents), `Version="0.1.0-*"`)
	require.Contains(t, string(contents), `PrivateAssets="All"`)
}

// TestEnsurePackageReferenceIdempotent checks that a second run changes nothing.
func TestEnsurePackageReferenceIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), PropsFilename)

	added, err := EnsurePackageReference(path, PackageID, "0.1.0-*")
	require.NoError(t, err)
	require.True(t, added)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	added, err = EnsurePackageReference(path, PackageID, "0.1.0-*")
	require.NoError(t, err)
	require.False(t, added)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	// Exactly one declaration.
	require.Equal(t, 1, strings.Count(string(after), `Include="Packaging.Targets"`))
}

// TestEnsurePackageReferencePreservesContent checks that unrelated XML survives.
func TestEnsurePackageReferencePreservesContent(t *testing.T) {
	t.Parallel()

	existing := `<Project>
  <!-- shared settings -->
  <PropertyGroup>
    <LangVersion>latest</LangVersion>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="StyleCop.Analyzers" Version="1.1.118" />
  </ItemGroup>
</Project>
`

	path := filepath.Join(t.TempDir(), PropsFilename)
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

	added, err := EnsurePackageReference(path, PackageID, "0.1.0-*")
	require.NoError(t, err)
	require.True(t, added)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(contents)
	require.Contains(t, text, "<!-- shared settings -->")
	require.Contains(t, text, "<LangVersion>latest</LangVersion>")
	require.Contains(t, text, `Include="StyleCop.Analyzers"`)
	require.Contains(t, text, `Include="Packaging.Targets"`)
}

// TestEnsurePackageReferenceMalformed rejects files without a Project element.
func TestEnsurePackageReferenceMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), PropsFilename)
	require.NoError(t, os.WriteFile(path, []byte("<Project>\n"), 0o600))

	_, err := EnsurePackageReference(path, PackageID, "0.1.0-*")
	require.Error(t, err)
}
