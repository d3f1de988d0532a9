package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// projectFilePattern matches MSBuild project files (csproj, fsproj, vbproj, ...).
const projectFilePattern = "*.*proj"

// Find resolves the project file to operate on.
// When explicit is non-empty it must point at an existing file.
// Otherwise dir is scanned for project files and exactly one must match.
func Find(dir, explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("project file %s: %w", explicit, err)
		}

		if info.IsDir() {
			return "", fmt.Errorf("project file %s is a directory, pass the project file itself", explicit)
		}

		return explicit, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, projectFilePattern))
	if err != nil {
		return "", fmt.Errorf("scan %s for project files: %w", dir, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("failed to find a project file in %s", dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("found %d project files in %s, pass the project to use explicitly", len(matches), dir)
	}
}
