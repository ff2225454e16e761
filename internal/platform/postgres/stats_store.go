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

// PostgresStatisticStore implements the store.StatisticStore interface
// using a PostgreSQL database as the storage backend.
//
// Counter mutations run as in-place SQL increments so concurrent writers
// for the same user serialize on the row without application-level
// read-modify-write. The GREATEST(..., 0) floor keeps the flashcard counter
// non-negative even if a decrement arrives without a matching increment.
type PostgresStatisticStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatisticStore creates a new PostgreSQL implementation of the
// StatisticStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStatisticStore(db store.DBTX, logger *slog.Logger) *PostgresStatisticStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatisticStore{
		db:     db,
		logger: logger.With(slog.String("component", "statistic_store")),
	}
}

// Ensure PostgresStatisticStore implements store.StatisticStore interface
var _ store.StatisticStore = (*PostgresStatisticStore)(nil)

// GetOrCreate implements store.StatisticStore.GetOrCreate.
func (s *PostgresStatisticStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Statistic, error) {
	if err := s.ensureRow(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, total_flashcards, total_study_sessions,
		       total_correct_answers, total_incorrect_answers,
		       created_at, updated_at
		FROM statistics
		WHERE user_id = $1`

	var stats domain.Statistic
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID, &stats.TotalFlashcards, &stats.TotalStudySessions,
		&stats.TotalCorrectAnswers, &stats.TotalIncorrectAnswers,
		&stats.CreatedAt, &stats.UpdatedAt)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrStatisticNotFound
		}
		return nil, MapError(err)
	}

	return &stats, nil
}

// ApplyDelta implements store.StatisticStore.ApplyDelta.
func (s *PostgresStatisticStore) ApplyDelta(
	ctx context.Context,
	userID uuid.UUID,
	field store.StatField,
	delta int64,
) error {
	if !field.Valid() {
		return fmt.Errorf("%w: unknown statistic field %q", store.ErrInvalidEntity, field)
	}

	if err := s.ensureRow(ctx, userID); err != nil {
		return err
	}

	// field is validated against the closed StatField set above, so
	// interpolating it as a column name is safe.
	query := fmt.Sprintf(`
		UPDATE statistics
		SET %[1]s = GREATEST(%[1]s + $2, 0), updated_at = now()
		WHERE user_id = $1`, string(field))

	result, err := s.db.ExecContext(ctx, query, userID, delta)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrStatisticNotFound
	}

	return nil
}

// Reset implements store.StatisticStore.Reset. All four counters are zeroed
// in a single statement, so the reset is atomic.
func (s *PostgresStatisticStore) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureRow(ctx, userID); err != nil {
		return err
	}

	query := `
		UPDATE statistics
		SET total_flashcards = 0, total_study_sessions = 0,
		    total_correct_answers = 0, total_incorrect_answers = 0,
		    updated_at = now()
		WHERE user_id = $1`

	_, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// WithTx implements store.StatisticStore.WithTx.
func (s *PostgresStatisticStore) WithTx(tx *sql.Tx) store.StatisticStore {
	return &PostgresStatisticStore{
		db:     tx,
		logger: s.logger,
	}
}

// ensureRow creates the user's zeroed statistic row if it does not exist.
// ON CONFLICT DO NOTHING keeps concurrent first-touch writers safe.
func (s *PostgresStatisticStore) ensureRow(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO statistics (user_id, total_flashcards, total_study_sessions,
		                        total_correct_answers, total_incorrect_answers,
		                        created_at, updated_at)
		VALUES ($1, 0, 0, 0, 0, now(), now())
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return MapError(err)
	}
	return nil
}
