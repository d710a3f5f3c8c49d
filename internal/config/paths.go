package config

import (
	"os"
	"path/filepath"
)

const (
	projectConfigFile = ".blurb.yml"
	legacyConfigFile  = ".blurb.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/blurb/config.yml
// - macOS: ~/Library/Application Support/blurb/config.yml
// - Windows: %APPDATA%\blurb\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "blurb"), nil
}

// ProjectConfigPath returns the path to the project-level config file in the checkout root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, projectConfigFile)
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath(root string) string {
	return filepath.Join(root, legacyConfigFile)
}
