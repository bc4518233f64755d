package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Study session duration bounds, in minutes. Sessions outside this range are
// rejected as malformed input rather than clamped.
const (
	MinSessionMinutes = 1
	MaxSessionMinutes = 480
)

// StudySession-specific validation errors.
var (
	ErrSessionIDEmpty       = fmt.Errorf("%w: session ID cannot be empty", ErrValidation)
	ErrSessionUserIDEmpty   = fmt.Errorf("%w: session user ID cannot be empty", ErrValidation)
	ErrSessionSubjectEmpty  = fmt.Errorf("%w: session subject cannot be empty", ErrValidation)
	ErrSessionDurationRange = fmt.Errorf(
		"%w: session duration must be between 1 and 480 minutes",
		ErrValidation,
	)
	ErrSessionDateZero = fmt.Errorf("%w: session date cannot be zero", ErrValidation)
)

// StudySession is an immutable record of time spent studying a subject.
// It is never updated or deleted once written; aggregates are derived from
// the full set of records on demand.
type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Subject         string     `json:"subject"`
	DurationMinutes int        `json:"duration_minutes"`
	GoalID          *uuid.UUID `json:"goal_id,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	SessionDate     time.Time  `json:"session_date"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewStudySession creates a new StudySession for the given user.
// The session date is normalized to UTC midnight so that streak and window
// computations only ever compare calendar dates.
// Returns an error if validation fails.
func NewStudySession(
	userID uuid.UUID,
	subject string,
	durationMinutes int,
	goalID *uuid.UUID,
	notes string,
	sessionDate time.Time,
) (*StudySession, error) {
	session := &StudySession{
		ID:              uuid.New(),
		UserID:          userID,
		Subject:         subject,
		DurationMinutes: durationMinutes,
		GoalID:          goalID,
		Notes:           notes,
		SessionDate:     DateOf(sessionDate),
		CreatedAt:       time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	if s.Subject == "" {
		return ErrSessionSubjectEmpty
	}

	if s.DurationMinutes < MinSessionMinutes || s.DurationMinutes > MaxSessionMinutes {
		return ErrSessionDurationRange
	}

	if s.SessionDate.IsZero() {
		return ErrSessionDateZero
	}

	return nil
}

// DateOf truncates an instant to its UTC calendar date (midnight).
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
