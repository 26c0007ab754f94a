// Package app implements the main Bubble Tea application with screen-based navigation.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/hackatime-wrapped/internal/logger"
	"github.com/j-veylop/hackatime-wrapped/internal/services"
	"github.com/j-veylop/hackatime-wrapped/internal/ui/styles"
)

// ScreenID represents the identifier for a screen in the application.
type ScreenID int

const (
	// ScreenLogin asks for the Hackatime user id.
	ScreenLogin ScreenID = iota
	// ScreenLoading shows collection progress.
	ScreenLoading
	// ScreenDeck shows the slides one at a time.
	ScreenDeck
)

// String returns the string representation of the ScreenID.
func (s ScreenID) String() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenLoading:
		return "Loading"
	case ScreenDeck:
		return "Deck"
	default:
		return "Unknown"
	}
}

// Screen defines the interface that all screens must implement.
type Screen interface {
	// Init initializes the screen and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and any commands.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content.
	View() string

	// SetSize sets the available size for the screen.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the global keybindings. Plain keys are ignored on the
// login screen so they reach the text input.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.Escape},
		{k.Quit, k.ForceQuit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Header styles
	Header     lipgloss.Style
	HeaderName lipgloss.Style
	HeaderInfo lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	s := Styles{}
	s.Header = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(styles.Subtle)
	s.HeaderName = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	s.HeaderInfo = lipgloss.NewStyle().Foreground(styles.TextSecondary)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(styles.Success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(styles.Error).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(styles.Warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(styles.Info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(styles.TextMuted).Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = styles.TitleStyle
	s.Subtle = lipgloss.NewStyle().Foreground(styles.Subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(styles.Secondary)

	return s
}

// Model is the main application model.
type Model struct {
	// Screen management
	active  ScreenID
	screens map[ScreenID]Screen

	// Shared state
	ctx      context.Context
	state    *State
	services SessionService
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp  bool
	ready     bool
	autoStart string

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. svc may be nil, in which
// case sessions never start.
func NewModel(ctx context.Context, svc SessionService, state *State) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if state == nil {
		state = NewState("")
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Model{
		active:   ScreenLogin,
		screens:  make(map[ScreenID]Screen),
		ctx:      ctx,
		state:    state,
		services: svc,
		keymap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
		spinner:  s,
	}
}

// SetScreen installs the screen for id.
func (m *Model) SetScreen(id ScreenID, screen Screen) {
	m.screens[id] = screen
	if m.width > 0 && m.height > 0 {
		m.updateScreenSizes()
	}
}

// AutoStart makes Init start a session for userID right away.
func (m *Model) AutoStart(userID string) {
	m.autoStart = strings.TrimSpace(userID)
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetStyles returns the application styles.
func (m *Model) GetStyles() Styles {
	return m.styles
}

// ActiveScreen returns the currently shown screen ID.
func (m *Model) ActiveScreen() ScreenID {
	return m.active
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	for _, screen := range m.screens {
		cmds = append(cmds, screen.Init())
	}

	if m.autoStart != "" {
		cmds = append(cmds, Send(StartSessionMsg{UserID: m.autoStart}))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveScreen(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case StartSessionMsg:
		cmds = append(cmds, m.handleStartSession(msg)...)
	case SessionReadyMsg:
		m.state.SetSession(msg.Session)
		m.state.ClearLoadingNotification()
		m.switchTo(ScreenDeck)
	case SessionFailedMsg:
		cmds = append(cmds, m.handleSessionFailed(msg)...)
	case ExportMsg:
		cmds = append(cmds, m.handleExport()...)
	case ExportResultMsg:
		m.state.ClearLoadingNotification()
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error)))
		} else {
			cmds = append(cmds, notifySuccessCmd(fmt.Sprintf("Saved %s", msg.Path)))
		}
	case RestartMsg:
		m.state.ClearSession()
		m.state.ClearLoadingNotification()
		m.switchTo(ScreenLogin)
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(msg.Error.Error()))
	case ScreenSwitchMsg:
		m.switchTo(msg.Screen)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleStartSession(msg StartSessionMsg) []tea.Cmd {
	userID := strings.TrimSpace(msg.UserID)
	if userID == "" {
		return []tea.Cmd{Send(SessionFailedMsg{Error: services.ErrEmptyUserID})}
	}

	m.state.SetUserID(userID)
	m.state.ClearSession()
	m.switchTo(ScreenLoading)

	if m.services == nil {
		return nil
	}
	logger.Debug("starting session from tui", "user", userID)
	return []tea.Cmd{startSessionCmd(m.ctx, m.services, userID)}
}

func (m *Model) handleSessionFailed(msg SessionFailedMsg) []tea.Cmd {
	m.state.ClearLoadingNotification()
	m.switchTo(ScreenLogin)
	if errors.Is(msg.Error, services.ErrEmptyUserID) {
		return nil
	}
	if errors.Is(msg.Error, context.Canceled) {
		return nil
	}
	return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Could not build your Wrapped: %v", msg.Error))}
}

func (m *Model) handleExport() []tea.Cmd {
	session := m.state.Session()
	if session == nil {
		return []tea.Cmd{notifyInfoCmd("Nothing to export yet")}
	}
	if m.services == nil {
		return nil
	}
	m.state.SetLoadingNotification("Exporting...")
	return []tea.Cmd{exportCmd(m.services, session)}
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.ProgressEvent:
		m.state.SetProgress(Progress{Done: e.Done, Total: e.Total})
		return Send(ProgressMsg{Done: e.Done, Total: e.Total})

	case services.ErrorEvent:
		// Session and export failures arrive as command results too.
		logger.Debug("service error event", "service", e.Service, "error", e.Error)
	}

	return nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateScreenSizes()
}

func (m *Model) switchTo(id ScreenID) {
	m.active = id
	m.showHelp = false
	m.updateScreenSizes()
}

func (m *Model) updateActiveScreen(msg tea.Msg) tea.Cmd {
	screen, ok := m.screens[m.active]
	if !ok || screen == nil {
		return nil
	}
	var cmd tea.Cmd
	m.screens[m.active], cmd = screen.Update(msg)
	return cmd
}

func (m *Model) updateScreenSizes() {
	contentHeight := max(0, m.height-4)

	for _, screen := range m.screens {
		if screen != nil {
			screen.SetSize(m.width, contentHeight)
		}
	}
}

// handleKeyMsg handles global keys. It reports whether the key was
// consumed and must not reach the active screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return tea.Quit, true
	}

	if m.active == ScreenLogin {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
	}

	if m.showHelp {
		return nil, true
	}
	return nil, false
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if screen, ok := m.screens[m.active]; ok && screen != nil {
		b.WriteString(screen.View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) renderHeader() string {
	title := m.styles.HeaderName.Render("Hackatime Wrapped")

	var info string
	if session := m.state.Session(); session != nil && m.active == ScreenDeck {
		info = fmt.Sprintf("%s · %d", session.UserID, session.Year)
	} else if id := m.state.UserID(); id != "" && m.active == ScreenLoading {
		info = id
	}

	bar := title
	if info != "" {
		gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(info)-4)
		bar = title + strings.Repeat(" ", gap) + m.styles.HeaderInfo.Render(info)
	}

	return m.styles.Header.Width(m.width).Render(bar)
}

func (m *Model) renderFooter() string {
	var bindings []key.Binding
	if screen, ok := m.screens[m.active]; ok && screen != nil {
		bindings = append(bindings, screen.ShortHelp()...)
	}
	if m.active == ScreenLogin {
		bindings = append(bindings, m.keymap.ForceQuit)
	} else {
		bindings = append(bindings, m.keymap.ShortHelp()...)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, styles.HelpSeparatorStyle.Render(" • "))
	return m.styles.Help.Render(ansi.Truncate(line, max(m.width-2, 0), "…"))
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-overlayHeight)/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		// Keep what is left and right of the overlay
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))

	if screen, ok := m.screens[m.active]; ok && screen != nil {
		for _, group := range screen.FullHelp() {
			lines = append(lines, "")
			for _, binding := range group {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "", m.styles.Highlight.Render("General"))
	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"%s\n\n%s",
		m.active,
		m.styles.Subtle.Render("This screen is not available."),
	)
	return m.styles.Content.Render(content)
}
