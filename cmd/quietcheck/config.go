package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFilename = "quietcheck.toml"

// fileConfig supplies defaults for the wrapper flags. Explicit flags
// always win over config values.
type fileConfig struct {
	CppcheckPath string `toml:"cppcheck-path"`
	SavePath     string `toml:"save-path"`
}

// findConfig walks up from startDir looking for quietcheck.toml, the
// same way a project manifest is discovered.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(startDir string) (fileConfig, bool, error) {
	path, ok, err := findConfig(startDir)
	if err != nil || !ok {
		return fileConfig{}, ok, err
	}
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, true, nil
}
