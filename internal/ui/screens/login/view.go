package login

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// View renders the login screen.
func (m *Model) View() string {
	title := styles.TitleStyle.Render("Hackatime Wrapped")
	subtitle := styles.CaptionStyle.Render("Your year in code, one slide at a time.")

	input := styles.FocusedBorderStyle.Render(m.input.View())

	sections := []string{title, subtitle, "", "Enter your User ID", input}
	if m.prompt != "" {
		sections = append(sections, styles.ErrorTextStyle.Render(m.prompt))
	}
	sections = append(sections, "", styles.ButtonActiveStyle.Render("Start"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return styles.CenterBoth(content, m.width, m.height)
}
