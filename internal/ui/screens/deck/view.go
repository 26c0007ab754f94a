package deck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hackatime-wrapped/internal/format"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/components"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// View renders the deck screen.
func (m *Model) View() string {
	slide, ok := m.Current()
	if !ok {
		return styles.CenterBoth(styles.HelpStyle.Render("No slides yet"), max(m.width, 1), max(m.height, 1))
	}

	inner := max(m.width-10, 20)
	body := m.renderSlide(slide, m.nav.Index, inner)
	frame := styles.SlideStyle.BorderForeground(styles.Accent(m.nav.Index)).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Center, frame, "", m.renderDots())
	if m.width == 0 || m.height == 0 {
		return content
	}
	return styles.CenterBoth(content, m.width, m.height)
}

// renderDots draws the position indicator under the slide.
func (m *Model) renderDots() string {
	active := lipgloss.NewStyle().Foreground(styles.Accent(m.nav.Index))
	idle := lipgloss.NewStyle().Foreground(styles.Subtle)

	dots := make([]string, m.nav.Len)
	for i := range m.nav.Len {
		if i == m.nav.Index {
			dots[i] = active.Render("●")
		} else {
			dots[i] = idle.Render("○")
		}
	}
	count := styles.HelpStyle.Render(fmt.Sprintf("  %d/%d", m.nav.Index+1, m.nav.Len))
	return strings.Join(dots, " ") + count
}

func (m *Model) renderSlide(s slides.Slide, index, width int) string {
	accent := styles.Accent(index)
	heading := lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	switch s := s.(type) {
	case slides.Intro:
		title := "Your Wrapped"
		if s.Year > 0 {
			title = fmt.Sprintf("Your %d Wrapped", s.Year)
		}
		return block(
			heading.Render(title),
			styles.CaptionStyle.Render("A look back at a year of code."),
			"",
			styles.HelpStyle.Render("Press → to begin"),
		)

	case slides.Heatmap:
		title := "Your year in code"
		if s.Year > 0 {
			title = fmt.Sprintf("Your %d in code", s.Year)
		}
		return block(
			heading.Render(title),
			components.RenderYearHeatmap(s, width),
			"",
			components.RenderHeatmapLegend(),
		)

	case slides.TotalHours:
		total := bigNumber(heading, "You coded for",
			format.WholeHoursGrouped(s.Seconds), "hours this year")
		if len(s.DailyHours) == 0 {
			return total
		}
		spark := lipgloss.NewStyle().Foreground(accent).
			Render(components.RenderSparkline(s.DailyHours, width-4))
		return block(total, "", spark, styles.HelpStyle.Render("hours per day"))

	case slides.TopDays:
		return block(heading.Render("Your top days"),
			components.RenderRankedList(s.Items, width, accent))

	case slides.TopWeeks:
		return block(heading.Render("Your top weeks"),
			components.RenderRankedList(s.Items, width, accent))

	case slides.TopMonths:
		parts := []string{
			heading.Render("Your top months"),
			components.RenderRankedList(s.Items, width, accent),
		}
		if len(s.MonthlyHours) > 0 {
			parts = append(parts, "", components.RenderMonthlyChart(s.MonthlyHours, width-8, 6))
		}
		return block(parts...)

	case slides.FavoriteLanguage:
		if s.Seconds == 0 {
			return bigNumber(heading, "Your favorite language", s.Name, "no languages recorded")
		}
		return bigNumber(heading, "Your favorite language",
			s.Name, format.Hours(s.Seconds)+" hours")

	case slides.FavoriteDay:
		return block(
			bigNumber(heading, "Your favorite day",
				format.WeekdayName(s.Day), format.HoursFloat(s.AverageSeconds)+" hours on average"),
			"",
			components.RenderWeekdayBars(s.AverageHours, s.Day, width),
		)

	case slides.WorstWeek:
		return bigNumber(heading, "Your quietest week",
			s.Label, format.Hours(s.Seconds)+" hours")

	case slides.ActiveStreak:
		return bigNumber(heading, "Longest coding streak",
			days(s.Days), "in a row with code")

	case slides.InactiveStreak:
		return bigNumber(heading, "Longest break",
			days(s.Days), "in a row without code")

	case slides.Outro:
		parts := []string{
			heading.Render("That's a wrap!"),
			styles.CaptionStyle.Render("Thanks for coding with Hackatime."),
		}
		if s.MissingDays > 0 {
			parts = append(parts, styles.WarningTextStyle.Render(
				fmt.Sprintf("%d %s could not be fetched and count as zero.",
					s.MissingDays, plural(s.MissingDays, "day", "days"))))
		}
		parts = append(parts, "",
			styles.ButtonActiveStyle.Render("e  Export image")+styles.ButtonStyle.Render("r  Start over"))
		return block(parts...)
	}

	return styles.HelpStyle.Render(s.Kind().String())
}

func block(parts ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func bigNumber(heading lipgloss.Style, title, value, caption string) string {
	return block(
		heading.Render(title),
		styles.BigNumberStyle.Render(value),
		styles.CaptionStyle.Render(caption),
	)
}

func days(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "day", "days"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
