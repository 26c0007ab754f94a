// Package models defines data structures and domain types.
package models

import (
	"slices"
	"time"
)

// CategoryStat is the tracked time for one named category (a language,
// an editor or an operating system) on a single day.
type CategoryStat struct {
	Name    string `json:"name" yaml:"name"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// DayStats holds one calendar day of activity. The zero value stands for a
// day without data.
type DayStats struct {
	TotalSeconds     int64
	Languages        []CategoryStat
	Editors          []CategoryStat
	OperatingSystems []CategoryStat
}

// IsZero reports whether the day carries no activity at all.
func (d DayStats) IsZero() bool {
	return d.TotalSeconds == 0 && len(d.Languages) == 0 && len(d.Editors) == 0 && len(d.OperatingSystems) == 0
}

// Clone returns a deep copy of the stats.
func (d DayStats) Clone() DayStats {
	return DayStats{
		TotalSeconds:     d.TotalSeconds,
		Languages:        slices.Clone(d.Languages),
		Editors:          slices.Clone(d.Editors),
		OperatingSystems: slices.Clone(d.OperatingSystems),
	}
}

// DailyRecord pairs a local calendar date with its stats.
type DailyRecord struct {
	Date  time.Time
	Stats DayStats
	// Fetched is false when the day's fetch failed or returned no payload.
	// Aggregation treats both cases as a zero day.
	Fetched bool
}

// ZeroRecord returns the record used in place of a day that could not be fetched.
func ZeroRecord(date time.Time) DailyRecord {
	return DailyRecord{Date: date}
}
