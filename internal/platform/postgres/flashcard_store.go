package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardColumns = `id, user_id, question, answer, status, last_reviewed_at,
       created_at, updated_at, deleted_at`

// Create implements store.FlashcardStore.Create.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards (id, user_id, question, answer, status,
		                        last_reviewed_at, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.UserID, card.Question, card.Answer, card.Status.String(),
		card.LastReviewedAt, card.CreatedAt, card.UpdatedAt, card.DeletedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
// Soft-deleted cards are returned as well; callers check IsDeleted.
func (s *PostgresFlashcardStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = $1`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}

	return card, nil
}

// GetAllByUser implements store.FlashcardStore.GetAllByUser.
func (s *PostgresFlashcardStore) GetAllByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// Update implements store.FlashcardStore.Update.
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE flashcards
		SET question = $2, answer = $3, status = $4, last_reviewed_at = $5,
		    updated_at = $6, deleted_at = $7
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		card.ID, card.Question, card.Answer, card.Status.String(),
		card.LastReviewedAt, card.UpdatedAt, card.DeletedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrFlashcardNotFound
	}

	return nil
}

// Purge implements store.FlashcardStore.Purge. Dependent practice results
// are removed by ON DELETE CASCADE in the schema.
func (s *PostgresFlashcardStore) Purge(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrFlashcardNotFound
	}

	return nil
}

// WithTx implements store.FlashcardStore.WithTx.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var status string
	err := row.Scan(
		&card.ID, &card.UserID, &card.Question, &card.Answer, &status,
		&card.LastReviewedAt, &card.CreatedAt, &card.UpdatedAt, &card.DeletedAt)
	if err != nil {
		return nil, err
	}
	card.Status = domain.CardStatus(status)
	return &card, nil
}
