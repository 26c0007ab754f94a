package services

import (
	"math"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/format"
)

// Summary is the machine-readable form of a session's statistics.
type Summary struct {
	UserID                string        `json:"user_id" yaml:"user_id"`
	Year                  int           `json:"year" yaml:"year"`
	Days                  int           `json:"days" yaml:"days"`
	MissingDays           int           `json:"missing_days" yaml:"missing_days"`
	TotalHours            float64       `json:"total_hours" yaml:"total_hours"`
	FavoriteLanguage      string        `json:"favorite_language" yaml:"favorite_language"`
	FavoriteDay           string        `json:"favorite_day" yaml:"favorite_day"`
	FavoriteDayAvgHours   float64       `json:"favorite_day_average_hours" yaml:"favorite_day_average_hours"`
	LongestActiveStreak   int           `json:"longest_active_streak" yaml:"longest_active_streak"`
	LongestInactiveStreak int           `json:"longest_inactive_streak" yaml:"longest_inactive_streak"`
	TopLanguages          []SummaryItem `json:"top_languages" yaml:"top_languages"`
	TopDays               []SummaryDay  `json:"top_days" yaml:"top_days"`
	TopWeeks              []SummaryItem `json:"top_weeks" yaml:"top_weeks"`
	TopMonths             []SummaryItem `json:"top_months" yaml:"top_months"`
	WorstWeek             *SummaryItem  `json:"worst_week,omitempty" yaml:"worst_week,omitempty"`
	Editors               []SummaryItem `json:"editors" yaml:"editors"`
	OperatingSystems      []SummaryItem `json:"operating_systems" yaml:"operating_systems"`
}

// SummaryItem is a labelled number of hours.
type SummaryItem struct {
	Label string  `json:"label" yaml:"label"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// SummaryDay is one day's hours.
type SummaryDay struct {
	Date  string  `json:"date" yaml:"date"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// NewSummary flattens a session into a Summary.
func NewSummary(session *Session) Summary {
	res := session.Result
	s := Summary{
		UserID:                session.UserID,
		Year:                  session.Year,
		Days:                  res.Days,
		MissingDays:           res.MissingDays,
		TotalHours:            hours(res.TotalSeconds),
		FavoriteLanguage:      res.FavoriteLanguage.Name,
		FavoriteDay:           format.WeekdayName(res.FavoriteDay),
		FavoriteDayAvgHours:   hours(int64(math.Round(res.FavoriteDayAverage))),
		LongestActiveStreak:   res.LongestActiveStreak,
		LongestInactiveStreak: res.LongestInactiveStreak,
		TopLanguages:          entryItems(res.TopLanguages),
		Editors:               entryItems(res.Editors),
		OperatingSystems:      entryItems(res.OperatingSystems),
	}

	for _, d := range res.TopDays {
		s.TopDays = append(s.TopDays, SummaryDay{Date: d.Date.Format(time.DateOnly), Hours: hours(d.Seconds)})
	}
	for _, w := range res.TopWeeks {
		s.TopWeeks = append(s.TopWeeks, SummaryItem{Label: format.WeekLabel(w.Key), Hours: hours(w.Seconds)})
	}
	for _, m := range res.TopMonths {
		s.TopMonths = append(s.TopMonths, SummaryItem{Label: format.MonthName(m.Key), Hours: hours(m.Seconds)})
	}
	if res.HasWorstWeek {
		s.WorstWeek = &SummaryItem{Label: format.WeekLabel(res.WorstWeek.Key), Hours: hours(res.WorstWeek.Seconds)}
	}
	return s
}

func entryItems(entries []aggregate.Entry) []SummaryItem {
	items := make([]SummaryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, SummaryItem{Label: e.Name, Hours: hours(e.Seconds)})
	}
	return items
}

// hours rounds to one decimal place.
func hours(secs int64) float64 {
	return math.Round(float64(secs)/360) / 10
}
