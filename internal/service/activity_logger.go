package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// defaultActivityLimit bounds history reads when the caller passes no limit.
const defaultActivityLimit = 50

// ActivityLogger is the append-only audit trail of domain events. It
// implements events.Handler and records every event it sees. Appends are
// best-effort: a storage failure is logged and swallowed so it never rolls
// back or fails the operation that produced the event.
type ActivityLogger struct {
	activityStore store.ActivityLogStore
	logger        *slog.Logger
}

// Verify interface compliance at compile time
var _ events.Handler = (*ActivityLogger)(nil)

// NewActivityLogger creates a new ActivityLogger.
func NewActivityLogger(activityStore store.ActivityLogStore, log *slog.Logger) *ActivityLogger {
	if activityStore == nil {
		panic("activityStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ActivityLogger{
		activityStore: activityStore,
		logger:        log.With(slog.String("component", "activity_logger")),
	}
}

// HandleEvent implements events.Handler. It always returns nil; append
// failures are logged only.
func (a *ActivityLogger) HandleEvent(ctx context.Context, event *events.Event) error {
	err := a.activityStore.Append(
		ctx,
		event.UserID,
		string(event.Kind),
		event.Payload,
		event.OccurredAt,
	)
	if err != nil {
		a.logger.Error("failed to append activity entry",
			slog.String("error", err.Error()),
			slog.String("event_kind", string(event.Kind)),
			slog.String("user_id", event.UserID.String()))
	}
	return nil
}

// History retrieves the user's recent activity entries, newest first.
func (a *ActivityLogger) History(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*store.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	entries, err := a.activityStore.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, NewServiceError("activity_history", "failed to list activity entries", err)
	}
	return entries, nil
}
