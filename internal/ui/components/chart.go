// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-runewidth"

	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// RenderMonthlyChart plots hours per month as an ASCII line chart.
func RenderMonthlyChart(hours []float64, width, height int) string {
	if len(hours) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	width = max(width, 20)
	height = max(height, 3)

	// asciigraph needs two points to draw a line
	data := hours
	if len(data) == 1 {
		data = []float64{hours[0], hours[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Red),
		asciigraph.Caption("hours per month"),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, runewidth.StringWidth(l))
	}

	barWidth := max(width-maxLabelLen-10, 10) // Leave room for label and value

	bar := lipgloss.NewStyle().Foreground(styles.Primary)

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		line := runewidth.FillLeft(label, maxLabelLen) + " │" +
			bar.Render(strings.Repeat("█", barLen)) + fmt.Sprintf(" %.1f", v)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// RenderWeekdayBars shows average hours per weekday, Monday first, with
// the favourite day highlighted.
func RenderWeekdayBars(averages [7]float64, favorite time.Weekday, width int) string {
	values := make([]float64, 0, 7)
	labels := make([]string, 0, 7)
	for i := range 7 {
		d := time.Weekday((i + 1) % 7)
		values = append(values, averages[d])
		label := d.String()[:3]
		if d == favorite {
			label = "★ " + label
		}
		labels = append(labels, label)
	}
	return RenderBarChart(values, labels, width)
}

// SparkChars are the sparkline glyphs from low to high.
var SparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline draws values as one row of at most width glyphs. When
// there are more values than columns, each column shows the peak of its
// bucket so single busy days stay visible.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	cols := min(width, len(values))
	peaks := make([]float64, cols)
	maxVal := 0.0
	for i := range cols {
		lo, hi := i*len(values)/cols, (i+1)*len(values)/cols
		for _, v := range values[lo:hi] {
			peaks[i] = max(peaks[i], v)
		}
		maxVal = max(maxVal, peaks[i])
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	for _, v := range peaks {
		level := int((v / maxVal) * float64(len(SparkChars)-1))
		result.WriteRune(SparkChars[min(max(level, 0), len(SparkChars)-1)])
	}
	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
