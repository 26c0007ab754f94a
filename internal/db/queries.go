package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/models"
)

// Category kinds stored in day_categories.kind.
const (
	kindLanguage = "language"
	kindEditor   = "editor"
	kindOS       = "os"
)

// ErrDayExists is returned when a day is inserted twice.
var ErrDayExists = errors.New("day already recorded")

// InsertDay stores one daily record with its categories.
func (db *DB) InsertDay(ctx context.Context, rec models.DailyRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	day := rec.Date.Format(time.DateOnly)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO day_records (day, total_seconds, fetched) VALUES (?, ?, ?) ON CONFLICT(day) DO NOTHING`,
		day, rec.Stats.TotalSeconds, boolToInt(rec.Fetched),
	)
	if err != nil {
		return fmt.Errorf("failed to insert day %s: %w", day, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrDayExists, day)
	}

	for kind, cats := range map[string][]models.CategoryStat{
		kindLanguage: rec.Stats.Languages,
		kindEditor:   rec.Stats.Editors,
		kindOS:       rec.Stats.OperatingSystems,
	} {
		for i, c := range cats {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO day_categories (day, kind, position, name, seconds) VALUES (?, ?, ?, ?, ?)`,
				day, kind, i, c.Name, c.Seconds,
			); err != nil {
				return fmt.Errorf("failed to insert %s category for %s: %w", kind, day, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit day %s: %w", day, err)
	}
	return nil
}

// Days returns every stored record in date order. Dates are local midnight
// in loc.
func (db *DB) Days(ctx context.Context, loc *time.Location) ([]models.DailyRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT day, total_seconds, fetched FROM day_records ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.DailyRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			day     string
			total   int64
			fetched int
		)
		if err := rows.Scan(&day, &total, &fetched); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		date, err := time.ParseInLocation(time.DateOnly, day, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day %q: %w", day, err)
		}
		index[day] = len(records)
		records = append(records, models.DailyRecord{
			Date:    date,
			Stats:   models.DayStats{TotalSeconds: total},
			Fetched: fetched != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}
	// Release the connection before the second query; in-memory stores
	// have only one.
	_ = rows.Close()

	if err := db.loadCategories(ctx, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

func (db *DB) loadCategories(ctx context.Context, records []models.DailyRecord, index map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT day, kind, name, seconds FROM day_categories ORDER BY day, kind, position`)
	if err != nil {
		return fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			day, kind, name string
			seconds         int64
		)
		if err := rows.Scan(&day, &kind, &name, &seconds); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		i, ok := index[day]
		if !ok {
			continue
		}
		stats := &records[i].Stats
		c := models.CategoryStat{Name: name, Seconds: seconds}
		switch kind {
		case kindLanguage:
			stats.Languages = append(stats.Languages, c)
		case kindEditor:
			stats.Editors = append(stats.Editors, c)
		case kindOS:
			stats.OperatingSystems = append(stats.OperatingSystems, c)
		}
	}
	return rows.Err()
}

// CountDays returns the number of stored days.
func (db *DB) CountDays(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM day_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count days: %w", err)
	}
	return n, nil
}

// ResetDays removes every stored day.
func (db *DB) ResetDays(ctx context.Context) error {
	for _, table := range []string{"day_categories", "day_records"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
