// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string
	UserID         string
	BatchSize      int
	HTTPTimeout    time.Duration
	ExportDir      string
	RecordsDBPath  string
	LogFile        string
	LogLevel       string
	Notify         bool
	CoverSeed      uint64
	SwipeThreshold int
	SwipeCellWidth int
	// ConfigPath is the TOML file that was consulted, if any.
	ConfigPath string
}

// Default values
const (
	DefaultAPIBaseURL     = "https://hackatime.hackclub.com/api/v1/users"
	DefaultBatchSize      = 10
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRecordsDBPath  = ":memory:"
	DefaultLogLevel       = "info"
	DefaultSwipeThreshold = 50
	DefaultSwipeCellWidth = 10
)

// Load reads configuration from .env files, the optional TOML file and
// environment variables. Environment values win over the file, which wins
// over defaults.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	configPath := getEnvString("WRAPPED_CONFIG", DefaultConfigPath())
	file, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:     getEnvString("HACKATIME_API_URL", fileString(file.API.BaseURL, DefaultAPIBaseURL)),
		UserID:         getEnvString("HACKATIME_USER_ID", fileString(file.API.UserID, "")),
		BatchSize:      getEnvInt("FETCH_BATCH_SIZE", fileInt(file.API.BatchSize, DefaultBatchSize)),
		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", fileDuration(file.API.Timeout, DefaultHTTPTimeout)),
		ExportDir:      getEnvString("EXPORT_DIR", fileString(file.Export.Dir, defaultExportDir())),
		RecordsDBPath:  getEnvString("RECORDS_DB_PATH", fileString(file.Store.Path, DefaultRecordsDBPath)),
		LogFile:        getEnvString("LOG_FILE", fileString(file.Log.File, DefaultLogPath())),
		LogLevel:       strings.ToLower(getEnvString("LOG_LEVEL", fileString(file.Log.Level, DefaultLogLevel))),
		Notify:         getEnvBool("NOTIFY", fileBool(file.UI.Notify, true)),
		CoverSeed:      getEnvUint("COVER_SEED", fileUint(file.Export.CoverSeed, 0)),
		SwipeThreshold: getEnvInt("SWIPE_THRESHOLD", fileInt(file.UI.SwipeThreshold, DefaultSwipeThreshold)),
		SwipeCellWidth: getEnvInt("SWIPE_CELL_WIDTH", fileInt(file.UI.SwipeCellWidth, DefaultSwipeCellWidth)),
		ConfigPath:     configPath,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("FETCH_BATCH_SIZE must be at least 1, got %d", c.BatchSize)
	}
	if c.SwipeThreshold < 1 {
		return fmt.Errorf("SWIPE_THRESHOLD must be at least 1, got %d", c.SwipeThreshold)
	}
	if c.SwipeCellWidth < 1 {
		return fmt.Errorf("SWIPE_CELL_WIDTH must be at least 1, got %d", c.SwipeCellWidth)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	paths = append(paths, filepath.Join(AppConfigDir(), ".env"))

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

func defaultExportDir() string {
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvUint retrieves an unsigned integer environment variable or returns the default.
func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		return parseDuration(value, defaultValue)
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	// Try parsing as seconds if no unit specified
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
