package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional packaging defaults applied when the matching
// command line flag is not set.
type Config struct {
	// Runtime is the default runtime identifier (e.g. linux-x64).
	Runtime string `yaml:"runtime"`
	// Framework is the default target framework (e.g. net8.0).
	Framework string `yaml:"framework"`
	// Configuration is the default build configuration (e.g. Release).
	Configuration string `yaml:"configuration"`
	// Output is the default directory for produced packages.
	Output string `yaml:"output"`
}

const (
	// DefaultConfigFilename is the default filename for packaging defaults.
	DefaultConfigFilename = "dotnet-deb.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads packaging defaults from the provided path.
// A missing file at the default path is not an error: the tool works
// without a defaults file, so an empty Config is returned. An explicitly
// chosen path must exist.
func Load(path string) (*Config, error) {
	usingDefault := path == ""
	if usingDefault {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("read defaults: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}

	return &cfg, nil
}

// Save writes packaging defaults to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write defaults: %w", err)
	}

	return nil
}
