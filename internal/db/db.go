// Package db holds the session-scoped record store used while days are collected.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	if path == "" {
		path = MemoryPath
	}
	inMemory := path == MemoryPath

	if !inMemory {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// Each connection to :memory: is its own database.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(inMemory); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas.
func (db *DB) configure(inMemory bool) error {
	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	if !inMemory {
		pragmas = append([]string{"PRAGMA journal_mode=WAL"}, pragmas...)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createDayRecordsTable(); err != nil {
		return err
	}
	return db.createDayCategoriesTable()
}

func (db *DB) createDayRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS day_records (
		day TEXT PRIMARY KEY,
		total_seconds INTEGER NOT NULL DEFAULT 0,
		fetched INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createDayCategoriesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS day_categories (
		day TEXT NOT NULL REFERENCES day_records(day) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		seconds INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (day, kind, position)
	);
	CREATE INDEX IF NOT EXISTS idx_day_categories_kind ON day_categories(kind, name);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	if db.path != MemoryPath {
		_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	}
	return db.DB.Close()
}
