package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/compositor"
	"github.com/j-veylop/hackatime-wrapped/internal/config"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

// fixedNow is a Friday, three days into the year.
var fixedNow = time.Date(2025, time.January, 3, 15, 0, 0, 0, time.UTC)

type recordedNotice struct {
	title, message string
}

func newTestManager(t *testing.T, handler http.HandlerFunc, notices *[]recordedNotice) *Manager {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIBaseURL:    srv.URL + "/api/v1/users",
		BatchSize:     2,
		HTTPTimeout:   5 * time.Second,
		ExportDir:     t.TempDir(),
		RecordsDBPath: filepath.Join(t.TempDir(), "records.db"),
		Notify:        notices != nil,
		CoverSeed:     7,
	}

	var mu sync.Mutex
	mgr, err := NewManager(cfg,
		WithClock(func() time.Time { return fixedNow }),
		WithNotifier(func(title, message string) error {
			mu.Lock()
			defer mu.Unlock()
			if notices != nil {
				*notices = append(*notices, recordedNotice{title, message})
			}
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

// statsHandler serves two hours on Jan 1, fails Jan 2 and has no data on Jan 3.
func statsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/octocat/stats") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		switch r.URL.Query().Get("start_date") {
		case "2025-01-01T00:00:00.000Z":
			fmt.Fprint(w, `{"data":{"total_seconds":7200,"languages":[{"name":"Go","total_seconds":7200}],"editors":[],"operating_systems":[]}}`)
		case "2025-01-02T00:00:00.000Z":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `{"data":null}`)
		}
	}
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if mgr.Compositor() == nil {
		t.Error("Compositor should be initialized")
	}
}

func TestStartSession_EmptyUserID(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	for _, id := range []string{"", "   ", "\t\n"} {
		if _, err := mgr.StartSession(context.Background(), id); !errors.Is(err, ErrEmptyUserID) {
			t.Errorf("StartSession(%q) error = %v, want ErrEmptyUserID", id, err)
		}
	}
}

func TestStartSession(t *testing.T) {
	var notices []recordedNotice
	mgr := newTestManager(t, statsHandler(t), &notices)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	session, err := mgr.StartSession(context.Background(), "  octocat ")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	if session.UserID != "octocat" {
		t.Errorf("UserID = %q, want trimmed", session.UserID)
	}
	if session.Year != 2025 {
		t.Errorf("Year = %d", session.Year)
	}
	if session.Store.Len() != 3 {
		t.Fatalf("Store.Len() = %d, want 3", session.Store.Len())
	}
	if session.Result.TotalSeconds != 7200 {
		t.Errorf("TotalSeconds = %d, want 7200", session.Result.TotalSeconds)
	}
	if session.Result.MissingDays != 2 {
		t.Errorf("MissingDays = %d, want 2", session.Result.MissingDays)
	}
	if session.Result.FavoriteLanguage.Name != "Go" {
		t.Errorf("FavoriteLanguage = %+v", session.Result.FavoriteLanguage)
	}
	if session.Deck.Index(slides.KindIntro) != 0 || session.Deck.Index(slides.KindOutro) != session.Deck.Len()-1 {
		t.Errorf("deck kinds = %v", session.Deck.Kinds())
	}

	var progress []ProgressEvent
	var ready bool
	for len(ch) > 0 {
		switch e := (<-ch).(type) {
		case ProgressEvent:
			progress = append(progress, e)
		case SessionReadyEvent:
			ready = e.Session == session
		}
	}
	if len(progress) != 3 || progress[2].Done != 3 || progress[2].Fraction() != 1 {
		t.Errorf("progress events = %+v", progress)
	}
	if !ready {
		t.Error("expected SessionReadyEvent for the session")
	}
	if len(notices) != 1 || !strings.Contains(notices[0].title, "2025") {
		t.Errorf("notices = %+v", notices)
	}
}

func TestExportSummary(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	session, err := mgr.StartSession(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}

	path, err := mgr.ExportSummary(session)
	if err != nil {
		t.Fatalf("ExportSummary() error = %v", err)
	}
	if filepath.Base(path) != compositor.FileName(2025) {
		t.Errorf("path = %q", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("exported file missing or empty: %v", err)
	}

	if _, err := mgr.ExportSummary(nil); err == nil {
		t.Error("ExportSummary(nil) should fail")
	}
}

func TestStartSession_Repeat(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	first, err := mgr.StartSession(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.StartSession(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("sessions should get distinct ids")
	}
	if second.Store.Len() != 3 {
		t.Errorf("second Store.Len() = %d, want 3", second.Store.Len())
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Unsubscribe should close the channel")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := ProgressEvent{Done: 1, Total: 2}
	mgr.broadcast(event)

	select {
	case e := <-ch:
		if e != event {
			t.Errorf("Got event %v, want %v", e, event)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for broadcast")
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{Service: "test"}

	if msg := WaitForEvent(ch)(); msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}

	close(ch)
	if msg := WaitForEvent(ch)(); msg != nil {
		t.Errorf("closed channel msg = %v, want nil", msg)
	}
}

func TestProgressEvent_Fraction(t *testing.T) {
	tests := []struct {
		e    ProgressEvent
		want float64
	}{
		{ProgressEvent{Done: 0, Total: 4}, 0},
		{ProgressEvent{Done: 1, Total: 4}, 0.25},
		{ProgressEvent{Done: 4, Total: 4}, 1},
		{ProgressEvent{Done: 0, Total: 0}, 1},
	}
	for _, tt := range tests {
		if got := tt.e.Fraction(); got != tt.want {
			t.Errorf("%+v.Fraction() = %v, want %v", tt.e, got, tt.want)
		}
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = ProgressEvent{}
	var _ ServiceEvent = SessionReadyEvent{}
	var _ ServiceEvent = ExportedEvent{}
	var _ ServiceEvent = ErrorEvent{}

	ProgressEvent{}.isServiceEvent()
	SessionReadyEvent{}.isServiceEvent()
	ExportedEvent{}.isServiceEvent()
	ErrorEvent{}.isServiceEvent()
}

func TestNewSummary(t *testing.T) {
	mgr := newTestManager(t, statsHandler(t), nil)
	session, err := mgr.StartSession(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSummary(session)
	if s.Year != 2025 || s.UserID != "octocat" {
		t.Errorf("summary header = %+v", s)
	}
	if s.TotalHours != 2 {
		t.Errorf("TotalHours = %v, want 2", s.TotalHours)
	}
	if s.FavoriteLanguage != "Go" || s.MissingDays != 2 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.TopDays) != 3 || s.TopDays[0].Date != "2025-01-01" {
		t.Errorf("TopDays = %+v", s.TopDays)
	}
}
