package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvScalars(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "7")
	t.Setenv("TEST_ENV_BAD_INT", "seven")
	t.Setenv("TEST_ENV_BOOL", "false")
	t.Setenv("TEST_ENV_UINT", "18446744073709551615")

	if got := getEnvInt("TEST_ENV_INT", 1); got != 7 {
		t.Errorf("getEnvInt() = %d, want 7", got)
	}
	if got := getEnvInt("TEST_ENV_BAD_INT", 1); got != 1 {
		t.Errorf("getEnvInt(bad) = %d, want 1", got)
	}
	if got := getEnvBool("TEST_ENV_BOOL", true); got {
		t.Error("getEnvBool() = true, want false")
	}
	if got := getEnvUint("TEST_ENV_UINT", 0); got != 18446744073709551615 {
		t.Errorf("getEnvUint() = %d", got)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

// isolate points config lookups at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"WRAPPED_CONFIG", "HACKATIME_API_URL", "HACKATIME_USER_ID", "FETCH_BATCH_SIZE",
		"HTTP_TIMEOUT", "EXPORT_DIR", "RECORDS_DB_PATH", "LOG_FILE", "LOG_LEVEL",
		"NOTIFY", "COVER_SEED", "SWIPE_THRESHOLD", "SWIPE_CELL_WIDTH",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.BatchSize != DefaultBatchSize || cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("BatchSize/HTTPTimeout = %d/%s", cfg.BatchSize, cfg.HTTPTimeout)
	}
	if cfg.RecordsDBPath != DefaultRecordsDBPath {
		t.Errorf("RecordsDBPath = %q", cfg.RecordsDBPath)
	}
	if !cfg.Notify || cfg.CoverSeed != 0 {
		t.Errorf("Notify/CoverSeed = %v/%d", cfg.Notify, cfg.CoverSeed)
	}
	if cfg.SwipeThreshold != DefaultSwipeThreshold || cfg.SwipeCellWidth != DefaultSwipeCellWidth {
		t.Errorf("swipe = %d/%d", cfg.SwipeThreshold, cfg.SwipeCellWidth)
	}
	if !strings.HasPrefix(cfg.LogFile, dir) {
		t.Errorf("LogFile = %q, want under %q", cfg.LogFile, dir)
	}
	if _, err := os.Stat(filepath.Dir(cfg.LogFile)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[api]
base-url = "https://file.example/api"
user-id = "from-file"
batch-size = 4
timeout = "5s"

[export]
cover-seed = 99

[ui]
notify = false
swipe-threshold = 80
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WRAPPED_CONFIG", path)
	t.Setenv("HACKATIME_USER_ID", "from-env")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.APIBaseURL != "https://file.example/api" {
		t.Errorf("APIBaseURL = %q, want file value", cfg.APIBaseURL)
	}
	if cfg.UserID != "from-env" {
		t.Errorf("UserID = %q, want env to win", cfg.UserID)
	}
	if cfg.BatchSize != 4 || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("BatchSize/HTTPTimeout = %d/%s", cfg.BatchSize, cfg.HTTPTimeout)
	}
	if cfg.CoverSeed != 99 || cfg.Notify || cfg.SwipeThreshold != 80 {
		t.Errorf("CoverSeed/Notify/SwipeThreshold = %d/%v/%d", cfg.CoverSeed, cfg.Notify, cfg.SwipeThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want lower-cased", cfg.LogLevel)
	}
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	isolate(t)
	t.Setenv("FETCH_BATCH_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a zero batch size")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error = %v", err)
	}
	if cfg.API.BatchSize != nil {
		t.Error("missing file should leave fields unset")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[api\nbatch-size = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("LoadFile(bad) should fail")
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "hackatime-wrapped", "config.toml") {
		t.Errorf("DefaultConfigPath() = %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/xdg", "hackatime-wrapped", "wrapped.log") {
		t.Errorf("DefaultLogPath() = %q", got)
	}
}
