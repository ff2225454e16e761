package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// Create saves a new flashcard to the store.
	// Returns validation errors from the domain Flashcard if data is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID, including soft-deleted
	// cards. Callers that must exclude deleted cards check IsDeleted.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// GetAllByUser retrieves all non-deleted flashcards owned by the user,
	// newest first.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// Update persists changes to an existing flashcard (status, review
	// timestamp, soft-delete marker).
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Purge permanently removes a flashcard. This is irreversible; dependent
	// practice results are removed by storage-level cascade.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Purge(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) FlashcardStore
}
