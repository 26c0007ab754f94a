package loading

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// View renders the loading screen.
func (m *Model) View() string {
	p := m.Progress()
	// Nothing reported yet; Fraction would call an empty run complete.
	fraction := 0.0
	if p.Total > 0 {
		fraction = p.Fraction()
	}

	sections := []string{
		m.bar.View(fraction),
		"",
		m.spinner.ViewWithLabel(),
	}
	if p.Total > 0 {
		sections = append(sections, styles.HelpStyle.Render(fmt.Sprintf("%d of %d days", p.Done, p.Total)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return styles.CenterBoth(content, m.width, m.height)
}
