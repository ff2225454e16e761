package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
)

// PracticeResultStore defines the interface for practice result persistence.
// Practice results are immutable facts: the store offers append and read
// operations only.
type PracticeResultStore interface {
	// Append saves a new practice result.
	// Returns validation errors from the domain PracticeResult if data is invalid.
	Append(ctx context.Context, result *domain.PracticeResult) error

	// ListByUser retrieves all practice results owned by the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeResult, error)

	// ListBySession retrieves all practice results recorded against the given
	// session, oldest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error)

	// WithTx returns a new PracticeResultStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PracticeResultStore
}
