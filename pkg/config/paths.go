package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath returns <user config dir>/vanishing/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed locating config dir: %w", err)
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// ResolvePath picks the config file location: explicit wins, then the
// VANISHING_CONFIG environment variable, then DefaultPath.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	return DefaultPath()
}
