// Package config loads autoreader settings from files, the environment and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "autoreader"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir is where config.yaml is looked up: $XDG_CONFIG_HOME/autoreader
// or ~/.config/autoreader.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return ExpandPath(filepath.Join("~", ".config", appName))
}

// DataDir holds the run database: $XDG_DATA_HOME/autoreader or
// ~/.local/share/autoreader.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return ExpandPath(filepath.Join("~", ".local", "share", appName))
}
