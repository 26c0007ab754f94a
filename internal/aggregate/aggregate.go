// Package aggregate derives the year summary from a daily record store.
//
// Compute is pure: it reads only the store and has no locale dependency.
// Weeks and months are keyed with calendar keys, and turning them into
// display strings is left to package format.
package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
)

// TopN is the length of every ranked list.
const TopN = 3

// NoneLabel is reported as the favourite language when no category exists.
const NoneLabel = "None"

// Entry is a named category total.
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// DayEntry is one day's total.
type DayEntry struct {
	Date    time.Time
	Seconds int64
}

// WeekEntry is the total of one Monday-anchored week.
type WeekEntry struct {
	Key     calendar.WeekKey
	Seconds int64
}

// MonthEntry is the total of one calendar month.
type MonthEntry struct {
	Key     calendar.MonthKey
	Seconds int64
}

// Result is the immutable summary of a record store.
type Result struct {
	Year      int
	FirstDate time.Time
	Days      int
	// MissingDays counts records that were substituted by a zero day.
	MissingDays int

	TotalSeconds int64

	// Category totals in first-seen order.
	Languages        []Entry
	Editors          []Entry
	OperatingSystems []Entry

	TopLanguages     []Entry
	FavoriteLanguage Entry

	FavoriteDay        time.Weekday
	FavoriteDayAverage float64
	// WeekdayAverages is indexed by time.Weekday; weekdays never seen are 0.
	WeekdayAverages [7]float64

	LongestActiveStreak   int
	LongestInactiveStreak int

	TopDays []DayEntry

	// Weeks and Months are in accumulation order.
	Weeks        []WeekEntry
	TopWeeks     []WeekEntry
	WorstWeek    WeekEntry
	HasWorstWeek bool

	Months    []MonthEntry
	TopMonths []MonthEntry

	// Daily holds per-day seconds in date order.
	Daily []int64
}

// BestMonth returns the top month, or false when there are no months.
func (r Result) BestMonth() (MonthEntry, bool) {
	if len(r.TopMonths) == 0 {
		return MonthEntry{}, false
	}
	return r.TopMonths[0], true
}

// Compute aggregates the store.
func Compute(store models.RecordStore) Result {
	res := Result{
		Year:             store.Year(),
		Days:             store.Len(),
		MissingDays:      store.MissingDays(),
		FavoriteLanguage: Entry{Name: NoneLabel},
		FavoriteDay:      time.Sunday,
		Daily:            make([]int64, 0, store.Len()),
	}
	if first, ok := store.First(); ok {
		res.FirstDate = first.Date
	}

	languages := newTally[string]()
	editors := newTally[string]()
	systems := newTally[string]()
	weeks := newTally[calendar.WeekKey]()
	months := newTally[calendar.MonthKey]()

	var (
		daySums   [7]int64
		dayCounts [7]int64
		days      = make([]DayEntry, 0, store.Len())
	)

	for _, rec := range store.All() {
		secs := rec.Stats.TotalSeconds
		res.TotalSeconds += secs
		res.Daily = append(res.Daily, secs)
		days = append(days, DayEntry{Date: rec.Date, Seconds: secs})

		for _, c := range rec.Stats.Languages {
			languages.add(c.Name, c.Seconds)
		}
		for _, c := range rec.Stats.Editors {
			editors.add(c.Name, c.Seconds)
		}
		for _, c := range rec.Stats.OperatingSystems {
			systems.add(c.Name, c.Seconds)
		}

		wd := rec.Date.Weekday()
		daySums[wd] += secs
		dayCounts[wd]++

		weeks.add(calendar.WeekOf(rec.Date), secs)
		months.add(calendar.MonthOf(rec.Date), secs)
	}

	res.Languages = toEntries(languages)
	res.Editors = toEntries(editors)
	res.OperatingSystems = toEntries(systems)

	res.TopLanguages = topN(res.Languages, TopN, func(e Entry) int64 { return e.Seconds })
	if len(res.TopLanguages) > 0 {
		res.FavoriteLanguage = res.TopLanguages[0]
	}

	res.FavoriteDay, res.FavoriteDayAverage = favoriteDay(daySums, dayCounts)
	res.WeekdayAverages = weekdayAverages(daySums, dayCounts)
	res.LongestActiveStreak = longestRun(res.Daily, func(s int64) bool { return s > 0 })
	res.LongestInactiveStreak = longestRun(res.Daily, func(s int64) bool { return s == 0 })

	res.TopDays = topN(days, TopN, func(d DayEntry) int64 { return d.Seconds })

	for k, s := range weeks.all() {
		res.Weeks = append(res.Weeks, WeekEntry{Key: k, Seconds: s})
	}
	weekOrder := rankDesc(res.Weeks, func(w WeekEntry) int64 { return w.Seconds })
	res.TopWeeks = head(weekOrder, TopN)
	if n := len(weekOrder); n > 0 {
		res.WorstWeek = weekOrder[n-1]
		res.HasWorstWeek = true
	}

	for k, s := range months.all() {
		res.Months = append(res.Months, MonthEntry{Key: k, Seconds: s})
	}
	res.TopMonths = topN(res.Months, TopN, func(m MonthEntry) int64 { return m.Seconds })

	return res
}

// favoriteDay picks the weekday with the strictly greatest average. Starting
// from zero means an all-zero year resolves to Sunday.
func favoriteDay(sums, counts [7]int64) (time.Weekday, float64) {
	best := time.Sunday
	var maxAvg float64
	for i := range 7 {
		if counts[i] == 0 {
			continue
		}
		avg := float64(sums[i]) / float64(counts[i])
		if avg > maxAvg {
			maxAvg = avg
			best = time.Weekday(i)
		}
	}
	return best, maxAvg
}

func weekdayAverages(sums, counts [7]int64) [7]float64 {
	var avgs [7]float64
	for i := range 7 {
		if counts[i] > 0 {
			avgs[i] = float64(sums[i]) / float64(counts[i])
		}
	}
	return avgs
}

// longestRun returns the length of the longest consecutive run of values
// matching pred, including a run still open at the end.
func longestRun(values []int64, pred func(int64) bool) int {
	longest, current := 0, 0
	for _, v := range values {
		if pred(v) {
			current++
			longest = max(longest, current)
			continue
		}
		current = 0
	}
	return longest
}

// rankDesc returns a copy sorted by descending score, keeping the input
// order of equal scores.
func rankDesc[T any](items []T, score func(T) int64) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(score(b), score(a))
	})
	return sorted
}

func topN[T any](items []T, n int, score func(T) int64) []T {
	return head(rankDesc(items, score), n)
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return slices.Clip(items)
}

func toEntries(t *tally[string]) []Entry {
	entries := make([]Entry, 0, len(t.order))
	for name, s := range t.all() {
		entries = append(entries, Entry{Name: name, Seconds: s})
	}
	return entries
}
