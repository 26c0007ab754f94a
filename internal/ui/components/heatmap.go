package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hackatime-wrapped/internal/slides"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// HeatmapCell is the glyph drawn for one day.
const HeatmapCell = "■"

var heatmapRowLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

// HeatmapPosition returns the column and row of cell i in a calendar grid
// whose rows run Monday to Sunday.
func HeatmapPosition(h slides.Heatmap, i int) (col, row int) {
	offset := (int(h.FirstWeekday) + 6) % 7
	p := i + offset
	return p / 7, p % 7
}

// RenderYearHeatmap draws the year grid, one column per week. Columns that
// do not fit in width are dropped from the right.
func RenderYearHeatmap(h slides.Heatmap, width int) string {
	if len(h.Cells) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	tierStyles := make([]lipgloss.Style, len(styles.TierColors))
	for i, c := range styles.TierColors {
		tierStyles[i] = lipgloss.NewStyle().Foreground(c)
	}

	lastCol, _ := HeatmapPosition(h, len(h.Cells)-1)
	cols := lastCol + 1
	labelWidth := 4
	if width > 0 {
		cols = min(cols, max(width-labelWidth, 1))
	}

	grid := make([][]string, 7)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for i, tier := range h.Cells {
		col, row := HeatmapPosition(h, i)
		if col >= cols {
			break
		}
		t := min(max(int(tier), 0), len(tierStyles)-1)
		grid[row][col] = tierStyles[t].Render(HeatmapCell)
	}

	label := lipgloss.NewStyle().Foreground(styles.TextMuted).Width(labelWidth)
	lines := make([]string, 0, 7)
	for r, cells := range grid {
		lines = append(lines, label.Render(heatmapRowLabels[r])+strings.Join(cells, ""))
	}
	return strings.Join(lines, "\n")
}

// RenderHeatmapLegend shows the tier colours with their hour ranges.
func RenderHeatmapLegend() string {
	labels := []string{"0h", "<1h", "<3h", "<6h", "6h+"}
	items := make([]LegendItem, len(labels))
	for i, l := range labels {
		items[i] = LegendItem{Label: l, Color: styles.TierColors[i]}
	}
	return RenderLegend(items)
}
