package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
)

// StudySessionStore defines the interface for study session data persistence.
type StudySessionStore interface {
	// Create saves a new study session. Implementations must enforce the
	// single-active-session invariant atomically: if the user already has a
	// session with no end timestamp, Create fails with
	// ErrActiveSessionExists and the existing session is left untouched.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a study session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// FindActiveByUser retrieves the user's active session, the single
	// session with no end timestamp.
	// Returns ErrSessionNotFound if the user has no active session.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.StudySession, error)

	// Update persists changes to an existing session. Sessions are mutated
	// exactly once, to set the end timestamp.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.StudySession) error

	// ListEndedByUser retrieves all ended sessions owned by the user, used
	// for duration-derived metrics. Active sessions are excluded.
	ListEndedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudySession, error)

	// WithTx returns a new StudySessionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StudySessionStore
}
