package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// recordingHandler captures every event it receives and optionally fails.
type recordingHandler struct {
	received []*Event
	err      error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *Event) error {
	h.received = append(h.received, event)
	return h.err
}

func TestInMemoryEmitterDeliversToAllHandlers(t *testing.T) {
	emitter := NewInMemoryEmitter(nil)
	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event, err := New(KindSessionStarted, uuid.New(), SessionStartedPayload{SessionID: uuid.New()})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first.received) != 1 || len(second.received) != 1 {
		t.Errorf("Expected both handlers to receive the event, got %d and %d",
			len(first.received), len(second.received))
	}

	if first.received[0].Kind != KindSessionStarted {
		t.Errorf("Expected kind %s, got %s", KindSessionStarted, first.received[0].Kind)
	}
}

func TestInMemoryEmitterHandlerErrorDoesNotStopDelivery(t *testing.T) {
	emitter := NewInMemoryEmitter(nil)
	failing := &recordingHandler{err: errors.New("handler broke")}
	healthy := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(healthy)

	event, err := New(KindFlashcardCreated, uuid.New(), FlashcardPayload{FlashcardID: uuid.New()})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	emitErr := emitter.Emit(context.Background(), event)
	if emitErr == nil {
		t.Error("Expected the first handler's error to be returned")
	}

	// The failing handler must not prevent delivery to the rest.
	if len(healthy.received) != 1 {
		t.Errorf("Expected healthy handler to receive the event, got %d", len(healthy.received))
	}
}

func TestInMemoryEmitterNoHandlers(t *testing.T) {
	emitter := NewInMemoryEmitter(nil)

	event, err := New(KindSessionEnded, uuid.New(), SessionEndedPayload{SessionID: uuid.New()})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Emitting with no handlers is not an error.
	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNewEventMarshalsPayload(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	event, err := New(KindSessionEnded, userID, SessionEndedPayload{
		SessionID:       sessionID,
		DurationSeconds: 1500,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if event.ID == uuid.Nil {
		t.Error("Expected non-nil event ID")
	}
	if event.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, event.UserID)
	}
	if event.OccurredAt.IsZero() {
		t.Error("Expected non-zero OccurredAt")
	}
	if len(event.Payload) == 0 {
		t.Error("Expected non-empty payload")
	}
}
