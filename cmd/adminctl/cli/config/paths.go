// Package config provides configuration paths for the adminctl CLI.
package config

import (
	"os"
	"path/filepath"
)

// Dir returns the adminctl config directory.
// Uses XDG_CONFIG_HOME/adminctl, defaulting to ~/.config/adminctl.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "adminctl"), nil
}
