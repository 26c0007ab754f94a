package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// ProgressBar renders a static collection progress bar with a label.
type ProgressBar struct {
	progress progress.Model
	label    string
	width    int
}

// NewProgressBar creates a progress bar of the given width.
func NewProgressBar(label string, width int) ProgressBar {
	p := progress.New(
		progress.WithScaledGradient("#ff8c37", "#ec3750"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return ProgressBar{progress: p, label: label, width: width}
}

// SetWidth sets the bar width.
func (b *ProgressBar) SetWidth(width int) {
	b.width = max(width, 10)
	b.progress.Width = b.width
}

// SetLabel updates the label shown above the bar.
func (b *ProgressBar) SetLabel(label string) {
	b.label = label
}

// View renders the bar at fraction (0..1).
func (b ProgressBar) View(fraction float64) string {
	fraction = min(max(fraction, 0), 1)
	bar := b.progress.ViewAs(fraction)
	percent := styles.ProgressPercentStyle.Render(fmt.Sprintf("%.0f%%", fraction*100))
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.ProgressLabelStyle.Render(b.label),
		bar+" "+percent,
	)
}
