package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
	"github.com/j-veylop/hackatime-wrapped/internal/slides"
)

// ErrEmptyUserID is returned when a session is started without a user id.
var ErrEmptyUserID = errors.New("please enter a User ID")

// Session carries everything one run produces, from the user id through
// the finished deck. It is built once by StartSession and not modified
// afterwards.
type Session struct {
	ID        uuid.UUID
	UserID    string
	Year      int
	StartedAt time.Time
	Store     models.RecordStore
	Result    aggregate.Result
	Deck      slides.Deck
}
