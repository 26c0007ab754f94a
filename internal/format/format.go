// Package format converts locale-free keys and second counts into display strings.
package format

import (
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
)

const secondsPerHour = 3600

// Hours formats seconds as hours with one decimal, e.g. "2.5".
func Hours(seconds int64) string {
	return HoursFloat(float64(seconds))
}

// HoursFloat is Hours for fractional second counts such as averages.
func HoursFloat(seconds float64) string {
	return fixed(seconds/secondsPerHour, 1)
}

// HoursRounded formats seconds as whole hours without grouping, e.g. "12".
func HoursRounded(seconds int64) string {
	return fixed(float64(seconds)/secondsPerHour, 0)
}

// fixed formats x with the given number of decimals. Exact halves round
// away from zero (2.5 -> "3", 0.25 -> "0.3"); everything else rounds to
// the nearest digit of the exact binary value, so 0.35 stays "0.3".
func fixed(x float64, decimals int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0"
	}
	neg := x < 0
	f := new(big.Float).SetPrec(256).SetFloat64(math.Abs(x))
	f.Mul(f, new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)))
	f.Add(f, big.NewFloat(0.5))
	n, _ := f.Int(nil)

	digits := n.String()
	if decimals > 0 {
		if pad := decimals + 1 - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		digits = digits[:len(digits)-decimals] + "." + digits[len(digits)-decimals:]
	}
	if neg && n.Sign() != 0 {
		return "-" + digits
	}
	return digits
}

// WholeHours returns seconds rounded to the nearest hour.
func WholeHours(seconds int64) int64 {
	return int64(math.Round(float64(seconds) / secondsPerHour))
}

// WholeHoursGrouped returns WholeHours with thousands separators, e.g. "1,204".
func WholeHoursGrouped(seconds int64) string {
	return humanize.Comma(WholeHours(seconds))
}

// DayLabel renders a date like "Mon, Jan 2".
func DayLabel(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// ShortDate renders a date like "Jan 2".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// WeekLabel renders a week like "Dec 30 – Jan 5".
func WeekLabel(k calendar.WeekKey) string {
	return ShortDate(k.Start()) + " – " + ShortDate(k.End())
}

// MonthName returns the long month name, e.g. "January".
func MonthName(k calendar.MonthKey) string {
	return k.Month.String()
}

// WeekdayName returns the long weekday name, e.g. "Monday".
func WeekdayName(d time.Weekday) string {
	return d.String()
}

// Upper returns s upper-cased, used for box titles.
func Upper(s string) string {
	return strings.ToUpper(s)
}
