package postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// PostgresActivityLogStore implements the store.ActivityLogStore interface
// using a PostgreSQL database as the storage backend. The log is
// append-only and deliberately outside any caller transaction: activity is
// best-effort and must never roll back the operation that produced it.
type PostgresActivityLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityLogStore creates a new PostgreSQL implementation of
// the ActivityLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresActivityLogStore(db store.DBTX, logger *slog.Logger) *PostgresActivityLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_log_store")),
	}
}

// Ensure PostgresActivityLogStore implements store.ActivityLogStore interface
var _ store.ActivityLogStore = (*PostgresActivityLogStore)(nil)

// Append implements store.ActivityLogStore.Append.
func (s *PostgresActivityLogStore) Append(
	ctx context.Context,
	userID uuid.UUID,
	eventKind string,
	details json.RawMessage,
	at time.Time,
) error {
	query := `
		INSERT INTO activity_logs (id, user_id, event_kind, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query, uuid.New(), userID, eventKind, details, at)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.ActivityLogStore.ListByUser.
func (s *PostgresActivityLogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*store.ActivityEntry, error) {
	query := `
		SELECT id, user_id, event_kind, details, occurred_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*store.ActivityEntry
	for rows.Next() {
		var e store.ActivityEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.EventKind, &e.Details, &e.OccurredAt)
		if err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}
