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

// PostgresPracticeResultStore implements the store.PracticeResultStore
// interface using a PostgreSQL database as the storage backend. Practice
// results are append-only; there is no update or delete path.
type PostgresPracticeResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPracticeResultStore creates a new PostgreSQL implementation of
// the PracticeResultStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPracticeResultStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresPracticeResultStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPracticeResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "practice_result_store")),
	}
}

// Ensure PostgresPracticeResultStore implements store.PracticeResultStore interface
var _ store.PracticeResultStore = (*PostgresPracticeResultStore)(nil)

const practiceResultColumns = `id, user_id, flashcard_id, session_id, is_correct, created_at`

// Append implements store.PracticeResultStore.Append.
func (s *PostgresPracticeResultStore) Append(
	ctx context.Context,
	result *domain.PracticeResult,
) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO practice_results (id, user_id, flashcard_id, session_id,
		                              is_correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.FlashcardID, result.SessionID,
		result.IsCorrect, result.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.PracticeResultStore.ListByUser.
func (s *PostgresPracticeResultStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PracticeResult, error) {
	query := `
		SELECT ` + practiceResultColumns + `
		FROM practice_results
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return s.list(ctx, query, userID)
}

// ListBySession implements store.PracticeResultStore.ListBySession.
func (s *PostgresPracticeResultStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.PracticeResult, error) {
	query := `
		SELECT ` + practiceResultColumns + `
		FROM practice_results
		WHERE session_id = $1
		ORDER BY created_at ASC`

	return s.list(ctx, query, sessionID)
}

// WithTx implements store.PracticeResultStore.WithTx.
func (s *PostgresPracticeResultStore) WithTx(tx *sql.Tx) store.PracticeResultStore {
	return &PostgresPracticeResultStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresPracticeResultStore) list(
	ctx context.Context,
	query string,
	arg any,
) ([]*domain.PracticeResult, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var results []*domain.PracticeResult
	for rows.Next() {
		var r domain.PracticeResult
		err := rows.Scan(
			&r.ID, &r.UserID, &r.FlashcardID, &r.SessionID,
			&r.IsCorrect, &r.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return results, nil
}
