package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LockSnapshot is a read-only view of a project.assets.json file reduced
// to the set of resolved library keys. Keys have the form "<id>/<version>".
type LockSnapshot struct {
	// libraries holds the raw key set from the lock file's libraries object.
	libraries []string
}

// assetsFile mirrors the only part of project.assets.json this tool reads.
type assetsFile struct {
	Libraries map[string]json.RawMessage `json:"libraries"`
}

// ReadLockSnapshot reads the dependency lock file at path and extracts its
// library key set. The rest of the document is ignored.
func ReadLockSnapshot(path string) (*LockSnapshot, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read lock file: %w", err)
	}

	var assets assetsFile
	if err := json.Unmarshal(contents, &assets); err != nil {
		return nil, fmt.Errorf("decode lock file %s: %w", path, err)
	}

	keys := make([]string, 0, len(assets.Libraries))
	for key := range assets.Libraries {
		keys = append(keys, key)
	}

	return &LockSnapshot{libraries: keys}, nil
}

// HasLibrary reports whether any resolved library key starts with the
// given package identifier.
func (s *LockSnapshot) HasLibrary(packageID string) bool {
	for _, key := range s.libraries {
		if strings.HasPrefix(key, packageID) {
			return true
		}
	}

	return false
}
