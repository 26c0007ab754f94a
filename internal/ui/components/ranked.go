package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/j-veylop/hackatime-wrapped/internal/slides"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// RenderRankedList renders "#n label hours" rows fitted to width. Labels
// that do not fit are truncated with an ellipsis.
func RenderRankedList(items []slides.RankedItem, width int, accent lipgloss.Color) string {
	if len(items) == 0 {
		return styles.HelpStyle.Render("Nothing here yet")
	}

	hoursWidth := 0
	for _, it := range items {
		hoursWidth = max(hoursWidth, runewidth.StringWidth(it.Hours()+" h"))
	}

	const rankWidth = 4
	labelWidth := max(width-rankWidth-hoursWidth-2, 8)

	hours := lipgloss.NewStyle().Foreground(accent).Bold(true)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		label := runewidth.Truncate(it.Label, labelWidth, "…")
		label = runewidth.FillRight(label, labelWidth)
		rank := styles.RankStyle.Render(runewidth.FillRight(fmt.Sprintf("#%d", it.Rank), rankWidth))
		value := hours.Render(fmt.Sprintf("%*s", hoursWidth, it.Hours()+" h"))
		lines = append(lines, rank+label+"  "+value)
	}
	return strings.Join(lines, "\n")
}
