// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/compositor"
	"github.com/j-veylop/hackatime-wrapped/internal/config"
	"github.com/j-veylop/hackatime-wrapped/internal/db"
	"github.com/j-veylop/hackatime-wrapped/internal/format"
	"github.com/j-veylop/hackatime-wrapped/internal/logger"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
	"github.com/j-veylop/hackatime-wrapped/internal/services/hackatime"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

type (
	// ProgressEvent is emitted each time a day finishes fetching.
	ProgressEvent struct {
		SessionID uuid.UUID
		Done      int
		Total     int
	}

	// SessionReadyEvent is emitted when a session's deck is built.
	SessionReadyEvent struct {
		Session *Session
	}

	// ExportedEvent is emitted after a summary image is written.
	ExportedEvent struct {
		SessionID uuid.UUID
		Path      string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ProgressEvent) isServiceEvent()     {}
func (SessionReadyEvent) isServiceEvent() {}
func (ExportedEvent) isServiceEvent()     {}
func (ErrorEvent) isServiceEvent()        {}

// Fraction returns Done/Total in [0, 1].
func (e ProgressEvent) Fraction() float64 {
	if e.Total <= 0 {
		return 1
	}
	return min(float64(e.Done)/float64(e.Total), 1)
}

// Manager orchestrates collection, aggregation and export, and routes
// events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	sessionMu   sync.Mutex
	cfg         *config.Config
	fetcher     hackatime.DayFetcher
	database    *db.DB
	collector   *Collector
	compositor  *compositor.Compositor
	subscribers []chan<- ServiceEvent
	now         func() time.Time
	notify      func(title, message string) error
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFetcher replaces the Hackatime client.
func WithFetcher(f hackatime.DayFetcher) ManagerOption {
	return func(m *Manager) { m.fetcher = f }
}

// WithClock sets the clock used to pick the year.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(fn func(title, message string) error) ManagerOption {
	return func(m *Manager) { m.notify = fn }
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		now: time.Now,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.fetcher == nil {
		m.fetcher = hackatime.NewClient(cfg.APIBaseURL, nil, cfg.HTTPTimeout)
	}

	var err error
	m.database, err = db.New(cfg.RecordsDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.collector = NewCollector(m.fetcher, m.database, cfg.BatchSize)

	var copts []compositor.Option
	if cfg.CoverSeed != 0 {
		copts = append(copts, compositor.WithCoverSeed(cfg.CoverSeed))
	}
	m.compositor = compositor.New(copts...)

	return m, nil
}

// StartSession collects the current year to date for userID and builds
// the slide deck. Fetch failures never fail a session; the affected days
// count as zero activity. Only one session runs at a time.
func (m *Manager) StartSession(ctx context.Context, userID string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	now := m.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Year:      now.Year(),
		StartedAt: now,
	}
	log := logger.With("session", session.ID.String(), "user", userID)

	days := models.YearToDate(now)
	log.Info("starting collection", "days", len(days), "batch", m.collector.batchSize)

	store, err := m.collector.Collect(ctx, userID, days, func(done, total int) {
		m.broadcast(ProgressEvent{SessionID: session.ID, Done: done, Total: total})
	})
	if err != nil {
		log.Error("collection failed", "error", err)
		m.broadcast(ErrorEvent{Service: "collector", Error: err})
		return nil, err
	}

	session.Store = store
	session.Result = aggregate.Compute(store)
	session.Deck = slides.Build(session.Result)

	log.Info("session ready",
		"missing_days", session.Result.MissingDays,
		"total_seconds", session.Result.TotalSeconds,
		"slides", session.Deck.Len())

	m.broadcast(SessionReadyEvent{Session: session})
	m.sendNotification(
		fmt.Sprintf("Your %d Wrapped is ready", session.Year),
		fmt.Sprintf("%s hours of code and counting.", format.HoursRounded(session.Result.TotalSeconds)),
	)

	return session, nil
}

// ExportSummary writes the summary image for session into the configured
// export directory and returns its path.
func (m *Manager) ExportSummary(session *Session) (string, error) {
	if session == nil {
		return "", errors.New("no session to export")
	}

	path, err := m.compositor.Export(m.cfg.ExportDir, session.Result)
	if err != nil {
		logger.Error("export failed", "session", session.ID.String(), "error", err)
		m.broadcast(ErrorEvent{Service: "compositor", Error: err})
		return "", err
	}

	logger.Info("exported summary", "session", session.ID.String(), "path", path)
	m.broadcast(ExportedEvent{SessionID: session.ID, Path: path})
	m.sendNotification("Wrapped image saved", path)

	return path, nil
}

// Compositor returns the image compositor.
func (m *Manager) Compositor() *compositor.Compositor {
	return m.compositor
}

func (m *Manager) sendNotification(title, message string) {
	if !m.cfg.Notify || m.notify == nil {
		return
	}
	if err := m.notify(title, message); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and its store.
func (m *Manager) Close() error {
	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	if m.database != nil {
		return m.database.Close()
	}
	return nil
}
