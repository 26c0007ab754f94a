// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the Hackatime theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("#ec3750") // Red
	Secondary = lipgloss.Color("#338eda") // Blue
	Subtle    = lipgloss.Color("240")     // Gray

	// Status colors
	Success = lipgloss.Color("#33d6a6") // Green
	Error   = lipgloss.Color("#ec3750") // Red
	Warning = lipgloss.Color("#f1c40f") // Yellow
	Info    = lipgloss.Color("#5bc0de") // Cyan

	// Background colors
	BgDark  = lipgloss.Color("#121212")
	BgPanel = lipgloss.Color("#1a1a1a")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Palette holds the accent colours used for slide headings, in the same
// order as the exported image.
var Palette = []lipgloss.Color{
	"#ec3750", "#ff8c37", "#f1c40f", "#33d6a6",
	"#5bc0de", "#338eda", "#a633d6", "#8492a6",
}

// TierColors are the heatmap colours from no activity to the busiest days.
var TierColors = []lipgloss.Color{
	"#252525", "#5c1520", "#8a1c2e", "#b8233c", "#ec3750",
}

// Accent returns the palette colour for slide i, cycling.
func Accent(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// BigNumberStyle renders the headline figure of a slide.
var BigNumberStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// CaptionStyle renders the line under a headline figure.
var CaptionStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Italic(true)

// SlideStyle frames a slide.
var SlideStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 3)

// FocusedBorderStyle creates a focused border.
var FocusedBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)

// BlurredBorderStyle creates an unfocused border.
var BlurredBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ProgressPercentStyle styles the percentage display.
var ProgressPercentStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Width(5).
	Align(lipgloss.Right)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpSeparatorStyle styles separators in help text.
var HelpSeparatorStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// RankStyle styles the "#n" column of ranked lists.
var RankStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Bold(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// ButtonStyle is the base button style.
var ButtonStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1)

// ButtonActiveStyle styles active/focused buttons.
var ButtonActiveStyle = ButtonStyle.
	Background(Primary).
	Foreground(lipgloss.Color("231")).
	Bold(true)

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
