package app

import (
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartSessionMsg requests collection for a user id.
type StartSessionMsg struct {
	UserID string
}

// SessionReadyMsg carries a finished session.
type SessionReadyMsg struct {
	Session *services.Session
}

// SessionFailedMsg reports a session that could not be built.
type SessionFailedMsg struct {
	UserID string
	Error  error
}

// ProgressMsg reports collection progress to the active screen.
type ProgressMsg struct {
	Done  int
	Total int
}

// Fraction returns Done/Total in [0, 1].
func (p ProgressMsg) Fraction() float64 {
	return Progress(p).Fraction()
}

// ExportMsg requests the summary image of the current session.
type ExportMsg struct{}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path  string
	Error error
}

// RestartMsg returns to the login screen for a new session.
type RestartMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// ScreenSwitchMsg requests switching to a specific screen.
type ScreenSwitchMsg struct {
	Screen ScreenID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
