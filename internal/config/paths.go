package config

import (
	"os"
	"path/filepath"
)

const appName = "hackatime-wrapped"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// AppConfigDir returns the directory holding the config file and log.
func AppConfigDir() string {
	return filepath.Join(XDGConfigHome(), appName)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(AppConfigDir(), "config.toml")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(AppConfigDir(), "wrapped.log")
}
