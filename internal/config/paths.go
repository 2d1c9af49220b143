package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/flightlog/config.yml
// - macOS: ~/Library/Application Support/flightlog/config.yml
// - Windows: %APPDATA%\flightlog\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "flightlog", "config.yml"), nil
}

// ProjectConfigDir is the directory under the project root holding the project config.
const ProjectConfigDir = ".flightlog"

// ProjectConfigPath returns the project-level config file under projectDir.
// An empty projectDir yields a path relative to the current directory.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigDir, "config.yml")
}

// ProjectJSONConfigPath returns the JSON alternative to ProjectConfigPath.
func ProjectJSONConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigDir, "config.json")
}
