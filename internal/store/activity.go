package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one append-only record of a domain event, kept for audit
// and history display.
type ActivityEntry struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	EventKind  string          `json:"event_kind"`
	Details    json.RawMessage `json:"details"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ActivityLogStore defines the interface for the append-only activity log.
// Appends are best-effort from the caller's perspective: a failed append
// must never roll back the operation that produced the event.
type ActivityLogStore interface {
	// Append stores a new activity entry.
	Append(ctx context.Context, userID uuid.UUID, eventKind string, details json.RawMessage, at time.Time) error

	// ListByUser retrieves the user's activity entries, newest first,
	// bounded by limit (a non-positive limit applies a default).
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*ActivityEntry, error)
}
