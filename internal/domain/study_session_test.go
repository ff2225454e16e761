package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStudySession(t *testing.T) {
	userID := uuid.New()
	startedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	session, err := NewStudySession(userID, startedAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if session.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, session.UserID)
	}

	if !session.IsActive() {
		t.Error("Expected new session to be active")
	}

	if _, ok := session.Duration(); ok {
		t.Error("Expected no duration for an active session")
	}

	// Invalid inputs
	_, err = NewStudySession(uuid.Nil, startedAt)
	if err != ErrSessionUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSessionUserIDEmpty, err)
	}

	_, err = NewStudySession(userID, time.Time{})
	if err != ErrSessionStartEmpty {
		t.Errorf("Expected error %v, got %v", ErrSessionStartEmpty, err)
	}
}

func TestStudySessionEnd(t *testing.T) {
	startedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	session, err := NewStudySession(uuid.New(), startedAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	endedAt := startedAt.Add(25 * time.Minute)
	if err := session.End(endedAt); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.IsActive() {
		t.Error("Expected session to be inactive after End")
	}

	d, ok := session.Duration()
	if !ok {
		t.Fatal("Expected a duration for an ended session")
	}
	if d != 25*time.Minute {
		t.Errorf("Expected duration 25m, got %v", d)
	}

	// Ending twice is rejected; the original end timestamp is preserved.
	err = session.End(endedAt.Add(time.Hour))
	if err != ErrSessionAlreadyEnded {
		t.Errorf("Expected error %v, got %v", ErrSessionAlreadyEnded, err)
	}
	if !session.EndedAt.Equal(endedAt) {
		t.Errorf("Expected EndedAt unchanged at %v, got %v", endedAt, session.EndedAt)
	}
}

func TestStudySessionEndBeforeStart(t *testing.T) {
	startedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	session, err := NewStudySession(uuid.New(), startedAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = session.End(startedAt.Add(-time.Second))
	if err != ErrSessionEndBeforeStart {
		t.Errorf("Expected error %v, got %v", ErrSessionEndBeforeStart, err)
	}

	if !session.IsActive() {
		t.Error("Expected session to remain active after rejected End")
	}

	// Ending at exactly the start time yields a zero-length session.
	if err := session.End(startedAt); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	d, _ := session.Duration()
	if d != 0 {
		t.Errorf("Expected zero duration, got %v", d)
	}
}
