package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a domain event.
type Kind string

// Domain event kinds emitted by the core study operations.
const (
	KindFlashcardCreated  Kind = "flashcard_created"
	KindFlashcardDeleted  Kind = "flashcard_deleted"
	KindFlashcardRestored Kind = "flashcard_restored"
	KindSessionStarted    Kind = "session_started"
	KindSessionEnded      Kind = "session_ended"
	KindPracticeOutcome   Kind = "practice_outcome"
)

// Event is the envelope carried from a core operation to its consumers.
// The payload is serialized JSON so the activity log can persist it verbatim.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Kind indicates the type of the event
	Kind Kind `json:"kind"`

	// UserID is the owner whose counters and history the event concerns
	UserID uuid.UUID `json:"user_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// OccurredAt is the timestamp when the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// New creates a new Event of the given kind for the given user, serializing
// the payload to JSON.
func New(kind Kind, userID uuid.UUID, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:         uuid.New(),
		Kind:       kind,
		UserID:     userID,
		Payload:    payloadBytes,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// FlashcardPayload is carried by flashcard_created, flashcard_deleted, and
// flashcard_restored events.
type FlashcardPayload struct {
	FlashcardID uuid.UUID `json:"flashcard_id"`
}

// SessionStartedPayload is carried by session_started events.
type SessionStartedPayload struct {
	SessionID uuid.UUID `json:"session_id"`
}

// SessionEndedPayload is carried by session_ended events. DurationSeconds is
// the elapsed time between the session's start and end timestamps.
type SessionEndedPayload struct {
	SessionID       uuid.UUID `json:"session_id"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// PracticeOutcomePayload is carried by practice_outcome events.
type PracticeOutcomePayload struct {
	FlashcardID uuid.UUID `json:"flashcard_id"`
	SessionID   uuid.UUID `json:"session_id"`
	IsCorrect   bool      `json:"is_correct"`
}

// Handler defines an interface for components that consume domain events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter defines an interface for components that publish domain events.
// This allows services to publish events without direct knowledge of
// handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	Emit(ctx context.Context, event *Event) error
}
