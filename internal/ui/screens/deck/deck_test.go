package deck

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/app"
	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
	"github.com/j-veylop/hackatime-wrapped/internal/config"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
	"github.com/j-veylop/hackatime-wrapped/internal/services"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

func testSession(t *testing.T) *services.Session {
	t.Helper()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	seconds := []int64{7200, 0, 3600, 0, 0, 1800}
	records := make([]models.DailyRecord, len(seconds))
	for i, s := range seconds {
		date := calendar.AddDays(start, i)
		if i == 3 {
			records[i] = models.ZeroRecord(date)
			continue
		}
		records[i] = models.DailyRecord{
			Date: date,
			Stats: models.DayStats{
				TotalSeconds: s,
				Languages:    []models.CategoryStat{{Name: "Go", Seconds: s}},
			},
			Fetched: true,
		}
	}
	store, err := models.NewRecordStore(records)
	if err != nil {
		t.Fatal(err)
	}
	result := aggregate.Compute(store)
	return &services.Session{
		UserID: "U1",
		Year:   2025,
		Store:  store,
		Result: result,
		Deck:   slides.Build(result),
	}
}

func newReadyModel(t *testing.T) (*Model, *services.Session) {
	t.Helper()
	state := app.NewState("U1")
	session := testSession(t)
	state.SetSession(session)

	m := New(state, &config.Config{SwipeThreshold: 50, SwipeCellWidth: 10})
	m.SetSize(100, 30)
	m.Update(app.SessionReadyMsg{Session: session})
	return m, session
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_NoSession(t *testing.T) {
	m := New(app.NewState(""), nil)
	if _, ok := m.Current(); ok {
		t.Error("Current() should be empty without a session")
	}
	if !strings.Contains(m.View(), "No slides yet") {
		t.Errorf("View() = %q", m.View())
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_KeyNavigation(t *testing.T) {
	m, session := newReadyModel(t)

	m.Update(keyPress("left"))
	if m.Index() != 0 {
		t.Errorf("Index() = %d, want clamp at 0", m.Index())
	}

	m.Update(keyPress("right"))
	m.Update(keyPress("l"))
	if m.Index() != 2 {
		t.Errorf("Index() = %d, want 2", m.Index())
	}

	m.Update(keyPress("h"))
	if m.Index() != 1 {
		t.Errorf("Index() = %d, want 1", m.Index())
	}

	for range session.Deck.Len() + 3 {
		m.Update(keyPress("right"))
	}
	if m.Index() != session.Deck.Len()-1 {
		t.Errorf("Index() = %d, want clamp at last", m.Index())
	}
}

func TestModel_Jump(t *testing.T) {
	m, _ := newReadyModel(t)

	m.Update(keyPress("3"))
	if m.Index() != 2 {
		t.Errorf("Index() = %d, want 2", m.Index())
	}
	s, _ := m.Current()
	if s.Kind() != slides.KindTotalHours {
		t.Errorf("Kind() = %v, want total-hours", s.Kind())
	}
}

func TestModel_TotalHoursSparkline(t *testing.T) {
	m, session := newReadyModel(t)
	m.nav.Goto(session.Deck.Index(slides.KindTotalHours))

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "hours per day") {
		t.Errorf("View() missing sparkline caption:\n%s", view)
	}
	// The busiest day always reaches the top glyph.
	if !strings.Contains(view, "█") {
		t.Errorf("View() missing sparkline peak:\n%s", view)
	}
}

func TestModel_Swipe(t *testing.T) {
	m, _ := newReadyModel(t)

	drag := func(from, to int) {
		m.Update(tea.MouseMsg{X: from, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{X: to, Action: tea.MouseActionRelease})
	}

	// 6 cells * 10 = 60 units, past the threshold.
	drag(40, 34)
	if m.Index() != 1 {
		t.Fatalf("Index() = %d after left swipe, want 1", m.Index())
	}

	// 5 cells * 10 = 50 units is not past the threshold.
	drag(40, 35)
	if m.Index() != 1 {
		t.Errorf("Index() = %d after short swipe, want 1", m.Index())
	}

	drag(30, 40)
	if m.Index() != 0 {
		t.Errorf("Index() = %d after right swipe, want 0", m.Index())
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, X: 0})
	if m.Index() != 0 {
		t.Error("release without press should not navigate")
	}
}

func TestModel_Wheel(t *testing.T) {
	m, _ := newReadyModel(t)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.Index() != 1 {
		t.Errorf("Index() = %d, want 1", m.Index())
	}
	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.Index() != 0 {
		t.Errorf("Index() = %d, want 0", m.Index())
	}
}

func TestModel_ExportOnlyOnOutro(t *testing.T) {
	m, session := newReadyModel(t)

	if _, cmd := m.Update(keyPress("e")); cmd != nil {
		t.Error("export should be ignored before the outro")
	}

	for range session.Deck.Len() {
		m.Update(keyPress("right"))
	}
	_, cmd := m.Update(keyPress("e"))
	if cmd == nil {
		t.Fatal("export on the outro should emit a command")
	}
	if _, ok := cmd().(app.ExportMsg); !ok {
		t.Errorf("cmd() = %T, want ExportMsg", cmd())
	}
}

func TestModel_Restart(t *testing.T) {
	m, _ := newReadyModel(t)
	m.Update(keyPress("right"))

	_, cmd := m.Update(keyPress("r"))
	if cmd == nil {
		t.Fatal("restart should emit a command")
	}
	if _, ok := cmd().(app.RestartMsg); !ok {
		t.Errorf("cmd() = %T, want RestartMsg", cmd())
	}

	m.state.ClearSession()
	m.Update(app.RestartMsg{})
	if m.Index() != 0 {
		t.Errorf("Index() = %d after restart, want 0", m.Index())
	}
}

func TestModel_ViewEverySlide(t *testing.T) {
	m, session := newReadyModel(t)

	wants := map[slides.Kind]string{
		slides.KindIntro:            "Your 2025 Wrapped",
		slides.KindHeatmap:          "Your 2025 in code",
		slides.KindTotalHours:       "hours this year",
		slides.KindTopDays:          "#1",
		slides.KindTopWeeks:         "Your top weeks",
		slides.KindTopMonths:        "hours per month",
		slides.KindFavoriteLanguage: "Go",
		slides.KindFavoriteDay:      "Your favorite day",
		slides.KindWorstWeek:        "Your quietest week",
		slides.KindActiveStreak:     "Longest coding streak",
		slides.KindInactiveStreak:   "Longest break",
		slides.KindOutro:            "1 day could not be fetched",
	}

	for i := range session.Deck.Len() {
		m.nav.Goto(i)
		s, _ := m.Current()
		view := ansi.Strip(m.View())
		if want := wants[s.Kind()]; !strings.Contains(view, want) {
			t.Errorf("slide %d (%v) missing %q:\n%s", i, s.Kind(), want, view)
		}
		if !strings.Contains(view, "/12") {
			t.Errorf("slide %d missing position indicator", i)
		}
	}
}

func TestModel_Help(t *testing.T) {
	m, session := newReadyModel(t)
	short := len(m.ShortHelp())

	m.nav.Goto(session.Deck.Len() - 1)
	if len(m.ShortHelp()) != short+1 {
		t.Error("outro should add the export binding to the short help")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
