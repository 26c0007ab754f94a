package compositor

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/format"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

const (
	footerText = "Get yours at "
	footerURL  = "hackatime-wrapped.netlify.app"
)

func (r *renderer) yearLabel(year int) {
	if year <= 0 {
		return
	}
	r.ts.drawRotated(r.cv.img, strconv.Itoa(year), 75, 200, bold, 150, Palette[6])
}

// cover draws the cover square. A nil rng leaves it without texture.
func (r *renderer) cover(rng *rand.Rand) {
	x, y := r.layout.coverX, coverTop
	r.cv.fillRect(x, y, coverSize, coverSize, panel)

	if rng != nil {
		for i := range coverBars {
			w := rng.Float64()*150 + 25
			const h = 12.0
			bx := x + rng.Float64()*(coverSize-w)
			by := y + rng.Float64()*(coverSize-h)
			r.cv.fillRect(bx, by, w, h, withAlpha(Palette[i%len(Palette)], 0.8))
		}
	}

	cx := x + coverSize/2
	for _, line := range []struct {
		text string
		y    float64
	}{
		{"HACKATIME", y + coverSize/2 - 30},
		{"WRAPPED", y + coverSize/2 + 10},
	} {
		r.ts.drawShadow(r.cv.img, line.text, cx, line.y, bold, 30, alignCenter, 5, shadowInk)
		r.ts.draw(r.cv.img, line.text, cx, line.y, bold, 30, alignCenter, white)
	}
}

func (r *renderer) heatmap(res aggregate.Result) {
	l := r.layout
	r.cv.fillRoundRect(l.heatX, l.heatY, l.heatW, l.heatH, boxRadius, panel)
	r.ts.draw(r.cv.img, "YEAR IN CODE", l.heatX+12, l.heatY+25, bold, 18, alignLeft, titleInk)

	if res.Days == 0 {
		return
	}
	hm := slides.BuildHeatmap(res)
	first := int(hm.FirstWeekday)
	for i, tier := range hm.Cells {
		idx := i + first
		col, row := idx/heatRows, idx%heatRows
		if col >= heatCols {
			continue
		}
		x, y := l.cellOrigin(col, row)
		r.cv.fillRoundRect(x, y, l.cellSize, l.cellSize, cellRadius, TierColors[tier])
	}
}

// box draws the chrome of a grid box and returns its geometry.
func (r *renderer) box(col, row int, paletteIndex int, title string) (x, y, w, h float64) {
	x, y = r.layout.boxOrigin(col, row)
	w, h = r.layout.boxWidth, boxHeight
	r.cv.fillRoundRect(x, y, w, h, boxRadius, Palette[paletteIndex])
	title = r.ts.fit(format.Upper(title), bold, 18, w-24)
	r.ts.draw(r.cv.img, title, x+12, y+25, bold, 18, alignLeft, titleInk)
	return x, y, w, h
}

func (r *renderer) rankedList(x, y, w float64, labels []string) {
	for i, label := range labels {
		rowY := y + 60 + float64(i)*40
		r.ts.draw(r.cv.img, fmt.Sprintf("#%d", i+1), x+12, rowY, bold, 25, alignLeft, rankInk)
		label = r.ts.fit(label, bold, 25, w-55-12)
		r.ts.draw(r.cv.img, label, x+55, rowY, bold, 25, alignLeft, white)
	}
}

// bigNumber draws a value with a caption underneath, centred in the box.
func (r *renderer) bigNumber(x, y, w, h float64, value, caption string) {
	cx := x + w/2
	r.ts.draw(r.cv.img, r.ts.fit(value, bold, 70, w-24), cx, y+h/2+10, bold, 70, alignCenter, white)
	r.ts.draw(r.cv.img, caption, cx, y+h/2+45, bold, 20, alignCenter, white)
}

func (r *renderer) boxes(res aggregate.Result) {
	x, y, w, _ := r.box(0, 0, 0, "Top Languages")
	langs := make([]string, len(res.TopLanguages))
	for i, e := range res.TopLanguages {
		langs[i] = e.Name
	}
	r.rankedList(x, y, w, langs)

	x, y, w, h := r.box(0, 1, 5, "Least Productive")
	worstLabel, worstSecs := aggregate.NoneLabel, int64(0)
	if res.HasWorstWeek {
		worstLabel, worstSecs = format.WeekLabel(res.WorstWeek.Key), res.WorstWeek.Seconds
	}
	cx := x + w/2
	r.ts.draw(r.cv.img, format.Hours(worstSecs), cx, y+h/2, bold, 50, alignCenter, white)
	r.ts.draw(r.cv.img, "HOURS", cx, y+h/2+25, bold, 18, alignCenter, white)
	r.ts.draw(r.cv.img, worstLabel, cx, y+h/2+50, bold, 14, alignCenter, white)

	x, y, w, h = r.box(1, 1, 2, "Total Hours")
	r.bigNumber(x, y, w, h, strconv.FormatInt(format.WholeHours(res.TotalSeconds), 10), "HOURS")

	x, y, w, _ = r.box(2, 1, 3, "Top Days")
	days := make([]string, len(res.TopDays))
	for i, d := range res.TopDays {
		days[i] = format.ShortDate(d.Date)
	}
	r.rankedList(x, y, w, days)

	x, y, w, h = r.box(0, 2, 4, "Longest Streak")
	r.bigNumber(x, y, w, h, strconv.Itoa(res.LongestActiveStreak), "DAYS")

	x, y, w, h = r.box(1, 2, 6, "Best Month")
	monthName, monthSecs := aggregate.NoneLabel, int64(0)
	if best, ok := res.BestMonth(); ok {
		monthName, monthSecs = format.MonthName(best.Key), best.Seconds
	}
	cx = x + w/2
	r.ts.draw(r.cv.img, r.ts.fit(monthName, bold, 40, w-24), cx, y+h/2+5, bold, 40, alignCenter, white)
	r.ts.draw(r.cv.img, format.HoursRounded(monthSecs)+" HOURS", cx, y+h/2+40, bold, 20, alignCenter, white)

	x, y, w, h = r.box(2, 2, 7, "Longest Inactive Streak")
	r.bigNumber(x, y, w, h, strconv.Itoa(res.LongestInactiveStreak), "DAYS")
}

func (r *renderer) footer() {
	footerY := float64(Height) - 25
	w1 := r.ts.measure(regular, 15, footerText)
	w2 := r.ts.measure(regular, 15, footerURL)
	startX := (Width - (w1 + w2 + 20)) / 2

	clockX, clockY := startX+7.5, footerY-5
	r.cv.strokeCircle(clockX, clockY, 7.5, 1.5, white)
	r.cv.strokePolyline([][2]float64{
		{clockX, clockY - 4},
		{clockX, clockY},
		{clockX + 3.5, clockY + 2.5},
	}, 1.5, white)

	r.ts.draw(r.cv.img, footerText, startX+20, footerY, regular, 15, alignLeft, white)
	r.ts.draw(r.cv.img, footerURL, startX+20+w1, footerY, regular, 15, alignLeft, Palette[4])
}
