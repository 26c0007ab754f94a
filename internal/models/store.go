package models

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
)

// Errors returned by NewRecordStore for malformed input.
var (
	ErrDuplicateDay = errors.New("duplicate day in record store")
	ErrMissingDay   = errors.New("missing day in record store")
)

// RecordStore is an immutable, date-ascending sequence of daily records with
// exactly one record per calendar day.
type RecordStore struct {
	records []DailyRecord
}

// NewRecordStore sorts records by date and verifies there are no gaps or
// duplicates. The input slice is not modified.
func NewRecordStore(records []DailyRecord) (RecordStore, error) {
	sorted := make([]DailyRecord, len(records))
	for i, r := range records {
		sorted[i] = DailyRecord{
			Date:    calendar.DateOf(r.Date),
			Stats:   r.Stats.Clone(),
			Fetched: r.Fetched,
		}
	}
	slices.SortStableFunc(sorted, func(a, b DailyRecord) int {
		return a.Date.Compare(b.Date)
	})

	for i := 1; i < len(sorted); i++ {
		switch gap := calendar.DaysBetween(sorted[i-1].Date, sorted[i].Date); {
		case gap == 0:
			return RecordStore{}, fmt.Errorf("%w: %s", ErrDuplicateDay, sorted[i].Date.Format(time.DateOnly))
		case gap > 1:
			missing := calendar.AddDays(sorted[i-1].Date, 1)
			return RecordStore{}, fmt.Errorf("%w: %s", ErrMissingDay, missing.Format(time.DateOnly))
		}
	}

	return RecordStore{records: sorted}, nil
}

// Len returns the number of records.
func (s RecordStore) Len() int { return len(s.records) }

// At returns the i-th record in date order.
func (s RecordStore) At(i int) DailyRecord { return s.records[i] }

// Records returns a copy of all records in date order.
func (s RecordStore) Records() []DailyRecord {
	return slices.Clone(s.records)
}

// All iterates the records in date order.
func (s RecordStore) All() iter.Seq2[int, DailyRecord] {
	return func(yield func(int, DailyRecord) bool) {
		for i, r := range s.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// First returns the earliest record and false when the store is empty.
func (s RecordStore) First() (DailyRecord, bool) {
	if len(s.records) == 0 {
		return DailyRecord{}, false
	}
	return s.records[0], true
}

// Year returns the calendar year of the first record, or 0 for an empty store.
func (s RecordStore) Year() int {
	if first, ok := s.First(); ok {
		return first.Date.Year()
	}
	return 0
}

// MissingDays counts records whose fetch did not produce data.
func (s RecordStore) MissingDays() int {
	n := 0
	for _, r := range s.records {
		if !r.Fetched {
			n++
		}
	}
	return n
}

// YearToDate lists every local calendar date from January 1 of now's year
// through now inclusive.
func YearToDate(now time.Time) []time.Time {
	return calendar.YearToDate(calendar.DateOf(now))
}
