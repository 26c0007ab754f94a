package format

import (
	"testing"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
)

func TestHours(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0.0"},
		{3600, "1.0"},
		{5400, "1.5"},
		{10800, "3.0"},
		{359, "0.1"},
		{900, "0.3"},
		{4500, "1.3"},
		{8100, "2.3"},
		{1260, "0.3"},
	}
	for _, tt := range tests {
		if got := Hours(tt.seconds); got != tt.want {
			t.Errorf("Hours(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHoursRounded(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0"},
		{1799, "0"},
		{1800, "1"},
		{5400, "2"},
		{9000, "3"},
		{3600 * 12, "12"},
	}
	for _, tt := range tests {
		if got := HoursRounded(tt.seconds); got != tt.want {
			t.Errorf("HoursRounded(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHoursFloat(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{2700, "0.8"},
		{1350.5, "0.4"},
		{-900, "-0.3"},
	}
	for _, tt := range tests {
		if got := HoursFloat(tt.seconds); got != tt.want {
			t.Errorf("HoursFloat(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWholeHours(t *testing.T) {
	if got := WholeHours(5400); got != 2 {
		t.Errorf("WholeHours(5400) = %d, want 2", got)
	}
	if got := WholeHours(5399); got != 1 {
		t.Errorf("WholeHours(5399) = %d, want 1", got)
	}
	if got := WholeHoursGrouped(3600 * 1204); got != "1,204" {
		t.Errorf("WholeHoursGrouped = %q, want 1,204", got)
	}
	if got := Upper("Top Days"); got != "TOP DAYS" {
		t.Errorf("Upper = %q", got)
	}
}

func TestWeekLabel(t *testing.T) {
	sunday := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.Local)
	got := WeekLabel(calendar.WeekOf(sunday))
	if got != "Dec 30 – Jan 5" {
		t.Errorf("WeekLabel = %q, want %q", got, "Dec 30 – Jan 5")
	}
}

func TestDateLabels(t *testing.T) {
	d := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
	if got := DayLabel(d); got != "Fri, Jan 3" {
		t.Errorf("DayLabel = %q", got)
	}
	if got := ShortDate(d); got != "Jan 3" {
		t.Errorf("ShortDate = %q", got)
	}
	if got := MonthName(calendar.MonthOf(d)); got != "January" {
		t.Errorf("MonthName = %q", got)
	}
	if got := WeekdayName(time.Monday); got != "Monday" {
		t.Errorf("WeekdayName = %q", got)
	}
}
