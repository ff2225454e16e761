package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a study session ID is empty or nil.
	ErrSessionIDEmpty = errors.New("study session ID cannot be empty")

	// ErrSessionUserIDEmpty is returned when a study session's user ID is empty or nil.
	ErrSessionUserIDEmpty = errors.New("study session user ID cannot be empty")

	// ErrSessionStartEmpty is returned when a study session has no start timestamp.
	ErrSessionStartEmpty = errors.New("study session start time cannot be zero")

	// ErrSessionEndBeforeStart is returned when a study session's end
	// timestamp precedes its start timestamp.
	ErrSessionEndBeforeStart = errors.New("study session cannot end before it started")
)

// StudySession represents one timed study session owned by a user.
// A session with a nil EndedAt is active; a user has at most one active
// session at any time. Sessions are never deleted.
type StudySession struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewStudySession creates a new active StudySession for the given user,
// started at the given time. It generates a new UUID for the session ID.
// Returns an error if validation fails.
func NewStudySession(userID uuid.UUID, startedAt time.Time) (*StudySession, error) {
	session := &StudySession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: startedAt.UTC(),
		CreatedAt: time.Now().UTC(),
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

	if s.StartedAt.IsZero() {
		return ErrSessionStartEmpty
	}

	if s.EndedAt != nil && s.EndedAt.Before(s.StartedAt) {
		return ErrSessionEndBeforeStart
	}

	return nil
}

// End closes the session at the given time. A session can be ended exactly
// once; ending an already-ended session returns ErrSessionAlreadyEnded.
// Ending before the session started returns ErrSessionEndBeforeStart.
func (s *StudySession) End(at time.Time) error {
	if s.EndedAt != nil {
		return ErrSessionAlreadyEnded
	}

	if at.Before(s.StartedAt) {
		return ErrSessionEndBeforeStart
	}

	t := at.UTC()
	s.EndedAt = &t
	return nil
}

// IsActive reports whether the session has not yet ended.
func (s *StudySession) IsActive() bool {
	return s.EndedAt == nil
}

// Duration returns the elapsed time between start and end. The boolean is
// false for active sessions, which have no duration yet.
func (s *StudySession) Duration() (time.Duration, bool) {
	if s.EndedAt == nil {
		return 0, false
	}
	return s.EndedAt.Sub(s.StartedAt), true
}
