// Package deck provides the slide screen that shows a session one slide at a time.
package deck

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hackatime-wrapped/internal/app"
	"github.com/j-veylop/hackatime-wrapped/internal/config"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

// keyMap defines the key bindings specific to the deck screen.
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Jump    key.Binding
	Export  key.Binding
	Restart key.Binding
}

// defaultKeyMap returns the default key bindings for the deck screen.
func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to slide"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export image"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start over"),
		),
	}
}

// Model represents the deck screen state.
type Model struct {
	state     *app.State
	nav       app.Navigator
	threshold int
	cellWidth int

	// Mouse drag in progress, in terminal cells.
	dragging bool
	dragX    int

	width  int
	height int
	keys   keyMap
}

// New creates a new deck model. cfg may be nil.
func New(state *app.State, cfg *config.Config) *Model {
	threshold := config.DefaultSwipeThreshold
	cellWidth := config.DefaultSwipeCellWidth
	if cfg != nil {
		threshold = cfg.SwipeThreshold
		cellWidth = max(cfg.SwipeCellWidth, 1)
	}

	m := &Model{
		state:     state,
		threshold: threshold,
		cellWidth: cellWidth,
		keys:      defaultKeyMap(),
	}
	m.reset()
	return m
}

// reset points the navigator at the first slide of the current session.
func (m *Model) reset() {
	n := 0
	if d, ok := m.deck(); ok {
		n = d.Len()
	}
	m.nav = app.NewNavigator(n, m.threshold)
	m.dragging = false
}

// deck returns the deck of the current session.
func (m *Model) deck() (slides.Deck, bool) {
	if m.state == nil {
		return slides.Deck{}, false
	}
	session := m.state.Session()
	if session == nil {
		return slides.Deck{}, false
	}
	return session.Deck, true
}

// Init initializes the deck screen.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the deck screen.
func (m *Model) Update(msg tea.Msg) (app.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case app.SessionReadyMsg:
		m.nav = app.NewNavigator(msg.Session.Deck.Len(), m.threshold)
		m.dragging = false

	case app.RestartMsg:
		m.reset()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.nav.Next()
	case key.Matches(msg, m.keys.Prev):
		m.nav.Prev()
	case key.Matches(msg, m.keys.Jump):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.nav.Goto(n - 1)
		}
	case key.Matches(msg, m.keys.Export):
		if m.onOutro() {
			return app.Send(app.ExportMsg{})
		}
	case key.Matches(msg, m.keys.Restart):
		return app.Send(app.RestartMsg{})
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.nav.Next()
	case msg.Button == tea.MouseButtonWheelUp:
		m.nav.Prev()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX = msg.X
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.nav.Swipe(m.dragX*m.cellWidth, msg.X*m.cellWidth)
	}
}

// onOutro reports whether the outro slide is shown.
func (m *Model) onOutro() bool {
	s, ok := m.Current()
	return ok && s.Kind() == slides.KindOutro
}

// Current returns the slide being shown.
func (m *Model) Current() (slides.Slide, bool) {
	d, ok := m.deck()
	if !ok || m.nav.Index >= d.Len() {
		return nil, false
	}
	return d.At(m.nav.Index), true
}

// Index returns the current slide index.
func (m *Model) Index() int {
	return m.nav.Index
}

// SetSize sets the available size for the deck screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	bindings := []key.Binding{m.keys.Prev, m.keys.Next}
	if m.onOutro() {
		bindings = append(bindings, m.keys.Export)
	}
	return append(bindings, m.keys.Restart)
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Prev, m.keys.Next, m.keys.Jump},
		{m.keys.Export, m.keys.Restart},
	}
}
