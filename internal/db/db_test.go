package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/models"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, db.Path())
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("Nested directories were not created")
	}
}

func TestNew_InMemoryDefault(t *testing.T) {
	db, err := New("")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	defer db.Close()

	if db.Path() != MemoryPath {
		t.Errorf("Path() = %q, want %q", db.Path(), MemoryPath)
	}
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for _, table := range []string{"day_records", "day_categories"} {
		var name string
		err := db.QueryRowContext(context.Background(), "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestInsertDay_RoundTrip(t *testing.T) {
	db := newMemoryDB(t)
	ctx := context.Background()

	day := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local)
	rec := models.DailyRecord{
		Date: day,
		Stats: models.DayStats{
			TotalSeconds:     5400,
			Languages:        []models.CategoryStat{{Name: "Go", Seconds: 3600}, {Name: "SQL", Seconds: 1800}},
			Editors:          []models.CategoryStat{{Name: "Neovim", Seconds: 5400}},
			OperatingSystems: []models.CategoryStat{{Name: "Linux", Seconds: 5400}},
		},
		Fetched: true,
	}
	if err := db.InsertDay(ctx, rec); err != nil {
		t.Fatalf("InsertDay() error = %v", err)
	}
	if err := db.InsertDay(ctx, models.ZeroRecord(day.AddDate(0, 0, -1))); err != nil {
		t.Fatalf("InsertDay(zero) error = %v", err)
	}

	days, err := db.Days(ctx, time.Local)
	if err != nil {
		t.Fatalf("Days() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("Days() len = %d, want 2", len(days))
	}
	if days[0].Fetched || days[0].Stats.TotalSeconds != 0 {
		t.Errorf("first day = %+v, want unfetched zero day", days[0])
	}

	got := days[1]
	if !got.Date.Equal(day) || !got.Fetched || got.Stats.TotalSeconds != 5400 {
		t.Errorf("second day = %+v", got)
	}
	if len(got.Stats.Languages) != 2 || got.Stats.Languages[0].Name != "Go" || got.Stats.Languages[1].Seconds != 1800 {
		t.Errorf("Languages = %+v", got.Stats.Languages)
	}
	if len(got.Stats.Editors) != 1 || len(got.Stats.OperatingSystems) != 1 {
		t.Errorf("Editors/OS = %+v / %+v", got.Stats.Editors, got.Stats.OperatingSystems)
	}
}

func TestInsertDay_Duplicate(t *testing.T) {
	db := newMemoryDB(t)
	ctx := context.Background()
	rec := models.ZeroRecord(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local))

	if err := db.InsertDay(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertDay(ctx, rec); !errors.Is(err, ErrDayExists) {
		t.Errorf("second InsertDay() error = %v, want ErrDayExists", err)
	}
}

func TestInsertDay_Concurrent(t *testing.T) {
	db := newMemoryDB(t)
	ctx := context.Background()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := models.DailyRecord{Date: start.AddDate(0, 0, i), Stats: models.DayStats{TotalSeconds: int64(i)}}
			if err := db.InsertDay(ctx, rec); err != nil {
				t.Errorf("InsertDay(%d) error = %v", i, err)
			}
		}()
	}
	wg.Wait()

	n, err := db.CountDays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 20 {
		t.Errorf("CountDays() = %d, want 20", n)
	}
}

func TestResetDays(t *testing.T) {
	db := newMemoryDB(t)
	ctx := context.Background()
	rec := models.DailyRecord{
		Date:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		Stats: models.DayStats{Languages: []models.CategoryStat{{Name: "Go", Seconds: 1}}},
	}
	if err := db.InsertDay(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if err := db.ResetDays(ctx); err != nil {
		t.Fatalf("ResetDays() error = %v", err)
	}
	n, err := db.CountDays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("CountDays() after reset = %d", n)
	}
	if err := db.InsertDay(ctx, rec); err != nil {
		t.Errorf("InsertDay() after reset error = %v", err)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_, err := db.QueryContext(context.Background(), "SELECT 1")
	if err == nil {
		t.Error("Expected error querying closed database")
	}
}

// Helper to create a file-backed test database
func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}

func newMemoryDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
