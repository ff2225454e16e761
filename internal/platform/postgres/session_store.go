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

// PostgresStudySessionStore implements the store.StudySessionStore interface
// using a PostgreSQL database as the storage backend.
//
// The single-active-session invariant is enforced by the partial unique
// index uq_study_sessions_one_active on (user_id) WHERE ended_at IS NULL:
// the insert in Create and the index update commit as one indivisible step,
// so two concurrent starts for the same user cannot both succeed.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of
// the StudySessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore interface
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

const sessionColumns = `id, user_id, started_at, ended_at, created_at`

// Create implements store.StudySessionStore.Create.
// Returns store.ErrActiveSessionExists if the user already has an active
// session; the error comes from the partial unique index, making the
// check-and-set atomic.
func (s *PostgresStudySessionStore) Create(
	ctx context.Context,
	session *domain.StudySession,
) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions (id, user_id, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.StartedAt, session.EndedAt, session.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.StudySessionStore.GetByID.
func (s *PostgresStudySessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(err)
	}

	return session, nil
}

// FindActiveByUser implements store.StudySessionStore.FindActiveByUser.
func (s *PostgresStudySessionStore) FindActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1 AND ended_at IS NULL`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(err)
	}

	return session, nil
}

// Update implements store.StudySessionStore.Update. The ended_at guard keeps
// the end transition one-shot at the storage layer: a session that has
// already been ended matches no row.
func (s *PostgresStudySessionStore) Update(
	ctx context.Context,
	session *domain.StudySession,
) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE study_sessions
		SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, session.ID, session.EndedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// ListEndedByUser implements store.StudySessionStore.ListEndedByUser.
func (s *PostgresStudySessionStore) ListEndedByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1 AND ended_at IS NOT NULL
		ORDER BY started_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, MapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sessions, nil
}

// WithTx implements store.StudySessionStore.WithTx.
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanSession(row rowScanner) (*domain.StudySession, error) {
	var session domain.StudySession
	err := row.Scan(
		&session.ID, &session.UserID, &session.StartedAt,
		&session.EndedAt, &session.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
