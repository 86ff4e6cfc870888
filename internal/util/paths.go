// Package util holds small path helpers shared across packages.
package util

import (
	"os"
	"path/filepath"
)

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the agentsync configuration directory.
func ConfigDir() string {
	return filepath.Join(HomeDir(), ".config", "agentsync")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}
