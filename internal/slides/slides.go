// Package slides maps an aggregate result to the ordered slide deck.
package slides

import (
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/format"
)

// Kind identifies a slide type.
type Kind int

// Slide kinds in deck order.
const (
	KindIntro Kind = iota
	KindHeatmap
	KindTotalHours
	KindTopDays
	KindTopWeeks
	KindTopMonths
	KindFavoriteLanguage
	KindFavoriteDay
	KindWorstWeek
	KindActiveStreak
	KindInactiveStreak
	KindOutro
)

var kindNames = [...]string{
	KindIntro:            "intro",
	KindHeatmap:          "heatmap",
	KindTotalHours:       "total-hours",
	KindTopDays:          "top-days",
	KindTopWeeks:         "top-weeks",
	KindTopMonths:        "top-months",
	KindFavoriteLanguage: "favorite-language",
	KindFavoriteDay:      "favorite-day",
	KindWorstWeek:        "worst-week",
	KindActiveStreak:     "active-streak",
	KindInactiveStreak:   "inactive-streak",
	KindOutro:            "outro",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Slide is one typed deck entry. Each kind has its own payload struct.
type Slide interface {
	Kind() Kind
}

// RankedItem is one row of a ranked list slide.
type RankedItem struct {
	Rank    int
	Label   string
	Seconds int64
}

// Hours returns the item's duration formatted with one decimal.
func (r RankedItem) Hours() string { return format.Hours(r.Seconds) }

// Intro opens the deck.
type Intro struct{ Year int }

// Heatmap is the year-in-code grid.
type Heatmap struct {
	Year int
	// FirstWeekday is the weekday of Cells[0] and sets the row of the first cell.
	FirstWeekday time.Weekday
	Cells        []Tier
}

// TotalHours shows the year total and a per-day activity line.
type TotalHours struct {
	Seconds int64
	// DailyHours holds hours per day in date order.
	DailyHours []float64
}

// Hours returns the total rounded to whole hours.
func (t TotalHours) Hours() int64 { return format.WholeHours(t.Seconds) }

// TopDays lists the most productive days.
type TopDays struct{ Items []RankedItem }

// TopWeeks lists the most productive weeks.
type TopWeeks struct{ Items []RankedItem }

// TopMonths lists the most productive months, plus hours for every month
// seen, in calendar order, for the chart.
type TopMonths struct {
	Items        []RankedItem
	MonthlyHours []float64
}

// FavoriteLanguage names the language with the most time.
type FavoriteLanguage struct {
	Name    string
	Seconds int64
}

// FavoriteDay names the weekday with the highest average.
type FavoriteDay struct {
	Day            time.Weekday
	AverageSeconds float64
	// AverageHours is indexed by time.Weekday.
	AverageHours [7]float64
}

// WorstWeek is the least productive week.
type WorstWeek struct {
	Label   string
	Seconds int64
}

// ActiveStreak is the longest run of days with activity.
type ActiveStreak struct{ Days int }

// InactiveStreak is the longest run of days without activity.
type InactiveStreak struct{ Days int }

// Outro closes the deck and offers the export action.
type Outro struct {
	Year        int
	MissingDays int
}

func (Intro) Kind() Kind            { return KindIntro }
func (Heatmap) Kind() Kind          { return KindHeatmap }
func (TotalHours) Kind() Kind       { return KindTotalHours }
func (TopDays) Kind() Kind          { return KindTopDays }
func (TopWeeks) Kind() Kind         { return KindTopWeeks }
func (TopMonths) Kind() Kind        { return KindTopMonths }
func (FavoriteLanguage) Kind() Kind { return KindFavoriteLanguage }
func (FavoriteDay) Kind() Kind      { return KindFavoriteDay }
func (WorstWeek) Kind() Kind        { return KindWorstWeek }
func (ActiveStreak) Kind() Kind     { return KindActiveStreak }
func (InactiveStreak) Kind() Kind   { return KindInactiveStreak }
func (Outro) Kind() Kind            { return KindOutro }

// Deck is the immutable ordered slide sequence of a session.
type Deck struct {
	slides []Slide
}

// Len returns the number of slides.
func (d Deck) Len() int { return len(d.slides) }

// At returns the i-th slide.
func (d Deck) At(i int) Slide { return d.slides[i] }

// Kinds lists the slide kinds in order.
func (d Deck) Kinds() []Kind {
	kinds := make([]Kind, len(d.slides))
	for i, s := range d.slides {
		kinds[i] = s.Kind()
	}
	return kinds
}

// Index returns the position of the first slide of kind k, or -1.
func (d Deck) Index(k Kind) int {
	for i, s := range d.slides {
		if s.Kind() == k {
			return i
		}
	}
	return -1
}

// Build produces the deck for res. Only the worst-week slide is optional;
// it is left out when no week exists.
func Build(res aggregate.Result) Deck {
	deck := []Slide{
		Intro{Year: res.Year},
		BuildHeatmap(res),
		TotalHours{Seconds: res.TotalSeconds, DailyHours: dailyHours(res.Daily)},
		TopDays{Items: topDays(res.TopDays)},
		TopWeeks{Items: topWeeks(res.TopWeeks)},
		TopMonths{Items: topMonths(res.TopMonths), MonthlyHours: monthlyHours(res.Months)},
		FavoriteLanguage{Name: res.FavoriteLanguage.Name, Seconds: res.FavoriteLanguage.Seconds},
		FavoriteDay{Day: res.FavoriteDay, AverageSeconds: res.FavoriteDayAverage, AverageHours: weekdayHours(res.WeekdayAverages)},
	}
	if res.HasWorstWeek {
		deck = append(deck, WorstWeek{
			Label:   format.WeekLabel(res.WorstWeek.Key),
			Seconds: res.WorstWeek.Seconds,
		})
	}
	deck = append(deck,
		ActiveStreak{Days: res.LongestActiveStreak},
		InactiveStreak{Days: res.LongestInactiveStreak},
		Outro{Year: res.Year, MissingDays: res.MissingDays},
	)
	return Deck{slides: deck}
}

// BuildHeatmap lays out HeatmapDays tiers starting at the first record.
// Days past the end of the store are zero.
func BuildHeatmap(res aggregate.Result) Heatmap {
	h := Heatmap{
		Year:  res.Year,
		Cells: make([]Tier, HeatmapDays),
	}
	if res.Days > 0 {
		h.FirstWeekday = res.FirstDate.Weekday()
	}
	for i := range h.Cells {
		var secs int64
		if i < len(res.Daily) {
			secs = res.Daily[i]
		}
		h.Cells[i] = TierFor(secs)
	}
	return h
}

func topDays(days []aggregate.DayEntry) []RankedItem {
	items := make([]RankedItem, len(days))
	for i, d := range days {
		items[i] = RankedItem{Rank: i + 1, Label: format.DayLabel(d.Date), Seconds: d.Seconds}
	}
	return items
}

func topWeeks(weeks []aggregate.WeekEntry) []RankedItem {
	items := make([]RankedItem, len(weeks))
	for i, w := range weeks {
		items[i] = RankedItem{Rank: i + 1, Label: format.WeekLabel(w.Key), Seconds: w.Seconds}
	}
	return items
}

func topMonths(months []aggregate.MonthEntry) []RankedItem {
	items := make([]RankedItem, len(months))
	for i, m := range months {
		items[i] = RankedItem{Rank: i + 1, Label: format.MonthName(m.Key), Seconds: m.Seconds}
	}
	return items
}

func dailyHours(daily []int64) []float64 {
	hours := make([]float64, len(daily))
	for i, secs := range daily {
		hours[i] = float64(secs) / 3600
	}
	return hours
}

func monthlyHours(months []aggregate.MonthEntry) []float64 {
	hours := make([]float64, len(months))
	for i, m := range months {
		hours[i] = float64(m.Seconds) / 3600
	}
	return hours
}

func weekdayHours(avgs [7]float64) [7]float64 {
	var hours [7]float64
	for i, a := range avgs {
		hours[i] = a / 3600
	}
	return hours
}
