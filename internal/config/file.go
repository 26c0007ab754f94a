package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil so
// they fall through to defaults.
type FileConfig struct {
	API    APIConfig    `toml:"api"`
	Export ExportConfig `toml:"export"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`
}

// APIConfig maps the [api] table.
type APIConfig struct {
	BaseURL   *string `toml:"base-url"`
	UserID    *string `toml:"user-id"`
	BatchSize *int    `toml:"batch-size"`
	Timeout   *string `toml:"timeout"`
}

// ExportConfig maps the [export] table.
type ExportConfig struct {
	Dir       *string `toml:"dir"`
	CoverSeed *uint64 `toml:"cover-seed"`
}

// StoreConfig maps the [store] table.
type StoreConfig struct {
	Path *string `toml:"path"`
}

// LogConfig maps the [log] table.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// UIConfig maps the [ui] table.
type UIConfig struct {
	Notify         *bool `toml:"notify"`
	SwipeThreshold *int  `toml:"swipe-threshold"`
	SwipeCellWidth *int  `toml:"swipe-cell-width"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func fileString(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}

func fileInt(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func fileUint(v *uint64, fallback uint64) uint64 {
	if v != nil {
		return *v
	}
	return fallback
}

func fileBool(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func fileDuration(v *string, fallback time.Duration) time.Duration {
	if v != nil && *v != "" {
		return parseDuration(*v, fallback)
	}
	return fallback
}
