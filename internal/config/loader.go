package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file name searched for in
// the current directory and the user's home directory.
const ConfigFileName = ".datacheck.yml"

// FindConfigFile locates the configuration file to use.
// An explicit path wins unconditionally (even if the file is missing,
// so the caller can report it); otherwise the current directory and then
// the home directory are searched. Empty means no file was found.
func FindConfigFile(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}

// LoadConfigFile parses the YAML configuration file at path.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from flag or known locations
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	file := NewFile()
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if file.Datasets == nil {
		file.Datasets = make(map[string]DatasetConfig)
	}

	return file, nil
}
