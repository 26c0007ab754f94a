// Package login provides the start screen where the Hackatime user id is entered.
package login

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hackatime-wrapped/internal/app"
	"github.com/j-veylop/hackatime-wrapped/internal/services"
)

// keyMap defines the key bindings specific to the login screen.
type keyMap struct {
	Submit key.Binding
	Clear  key.Binding
}

// defaultKeyMap returns the default key bindings for the login screen.
func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
	}
}

// Model represents the login screen state.
type Model struct {
	state  *app.State
	input  textinput.Model
	prompt string
	width  int
	height int
	keys   keyMap
}

// New creates a new login model, prefilled with the last used user id.
func New(state *app.State) *Model {
	ti := textinput.New()
	ti.Placeholder = "your Hackatime user id"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 32
	if state != nil {
		ti.SetValue(state.UserID())
	}
	ti.Focus()

	return &Model{
		state: state,
		input: ti,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the login screen.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login screen.
func (m *Model) Update(msg tea.Msg) (app.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			m.prompt = ""
			return m, nil
		}

	case app.SessionFailedMsg:
		if errors.Is(msg.Error, services.ErrEmptyUserID) {
			m.prompt = services.ErrEmptyUserID.Error()
		}
		return m, m.input.Focus()

	case app.RestartMsg:
		m.prompt = ""
		if m.state != nil {
			m.input.SetValue(m.state.UserID())
		}
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the input and asks the root model to start a session.
func (m *Model) submit() tea.Cmd {
	userID := strings.TrimSpace(m.input.Value())
	if userID == "" {
		m.prompt = services.ErrEmptyUserID.Error()
		return nil
	}
	m.prompt = ""
	return app.Send(app.StartSessionMsg{UserID: userID})
}

// Value returns the current input text.
func (m *Model) Value() string {
	return m.input.Value()
}

// Prompt returns the validation message shown under the input, if any.
func (m *Model) Prompt() string {
	return m.prompt
}

// SetSize sets the available size for the login screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = min(max(width-12, 10), 48)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Submit, m.keys.Clear}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Submit, m.keys.Clear},
	}
}
