// Package loading provides the progress screen shown while a year is collected.
package loading

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hackatime-wrapped/internal/app"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/components"
)

const defaultBarWidth = 40

// Model represents the loading screen state.
type Model struct {
	state   *app.State
	bar     components.ProgressBar
	spinner components.LoadingSpinner
	width   int
	height  int
}

// New creates a new loading model.
func New(state *app.State) *Model {
	return &Model{
		state:   state,
		bar:     components.NewProgressBar("Fetching your year", defaultBarWidth),
		spinner: components.NewSpinner("Crunching the numbers..."),
	}
}

// Init initializes the loading screen.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the loading screen.
func (m *Model) Update(msg tea.Msg) (app.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case app.StartSessionMsg:
		m.bar.SetLabel(fmt.Sprintf("Fetching %s's year", msg.UserID))
		// Ticks stop while another screen is active, so restart them.
		return m, m.spinner.Tick()

	case app.ProgressMsg:
		if msg.Done >= msg.Total && msg.Total > 0 {
			m.spinner.SetLabel("Building your slides...")
		} else {
			m.spinner.SetLabel("Crunching the numbers...")
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Progress returns the progress currently displayed.
func (m *Model) Progress() app.Progress {
	if m.state == nil {
		return app.Progress{}
	}
	return m.state.Progress()
}

// SetSize sets the available size for the loading screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.SetWidth(min(max(width-20, 10), 60))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return nil
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return nil
}
