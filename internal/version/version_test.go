package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
}

// TestCore checks that prerelease suffixes are stripped from the pin version.
func TestCore(t *testing.T) {
	prev := Version

	t.Cleanup(func() {
		Version = prev
	})

	Version = "0.9.6-beta.3"

	core, err := Core()
	require.NoError(t, err)
	require.Equal(t, "0.9.6", core)

	Version = "not-a-version"

	_, err = Core()
	require.Error(t, err)
}
