// Package calendar provides locale-free date keys used for grouping daily records.
//
// All arithmetic goes through time.Date normalisation rather than adding
// 24h durations, so daylight saving transitions never move a record into a
// neighbouring day.
package calendar

import "time"

// DateOf returns local midnight of the calendar day containing t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns midnight of the day n calendar days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// WeekStart returns the Monday that begins the week containing t.
// Sundays belong to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return AddDays(t, -offset)
}

// WeekKey identifies a Monday-anchored week by its anchor date.
type WeekKey struct {
	Year  int
	Month time.Month
	Day   int
}

// WeekOf returns the key of the week containing t.
func WeekOf(t time.Time) WeekKey {
	y, m, d := WeekStart(t).Date()
	return WeekKey{Year: y, Month: m, Day: d}
}

// Start returns the Monday of the week.
func (k WeekKey) Start() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// End returns the Sunday closing the week.
func (k WeekKey) End() time.Time {
	return AddDays(k.Start(), 6)
}

// ISOWeek returns the ISO 8601 year and week number of the week.
func (k WeekKey) ISOWeek() (year, week int) {
	return k.Start().ISOWeek()
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the key of the month containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// YearToDate lists every calendar day from January 1 of today's year
// through today inclusive, each at local midnight.
func YearToDate(today time.Time) []time.Time {
	start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	n := DaysBetween(start, today) + 1
	days := make([]time.Time, 0, n)
	for i := range n {
		days = append(days, AddDays(start, i))
	}
	return days
}
