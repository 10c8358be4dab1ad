// Package utils provides utility functions for the storefront.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome expands ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath expands ~ and normalizes the path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded := expandHome(path)
	return filepath.Clean(expanded)
}

// ConfigDir returns the configuration directory for app, honoring
// XDG_CONFIG_HOME and falling back to ~/.config.
func ConfigDir(app string) (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, app), nil
}

// ShortenHome replaces the home directory prefix of path with ~.
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
