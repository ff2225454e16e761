package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PracticeResult-specific validation errors
var (
	// ErrResultIDEmpty is returned when a practice result ID is empty or nil.
	ErrResultIDEmpty = errors.New("practice result ID cannot be empty")

	// ErrResultUserIDEmpty is returned when a practice result's user ID is empty or nil.
	ErrResultUserIDEmpty = errors.New("practice result user ID cannot be empty")

	// ErrResultCardIDEmpty is returned when a practice result's flashcard ID is empty or nil.
	ErrResultCardIDEmpty = errors.New("practice result flashcard ID cannot be empty")

	// ErrResultSessionIDEmpty is returned when a practice result's session ID is empty or nil.
	ErrResultSessionIDEmpty = errors.New("practice result session ID cannot be empty")
)

// PracticeResult records the outcome of a single practice attempt: which
// flashcard was practiced, in which study session, and whether the answer
// was correct. A practice result is an immutable fact - it is never edited
// or deleted once created.
type PracticeResult struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FlashcardID uuid.UUID `json:"flashcard_id"`
	SessionID   uuid.UUID `json:"session_id"`
	IsCorrect   bool      `json:"is_correct"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPracticeResult creates a new PracticeResult for the given user,
// flashcard, and session. It generates a new UUID for the result ID and
// records createdAt as the time of the attempt.
// Returns an error if validation fails.
func NewPracticeResult(
	userID, flashcardID, sessionID uuid.UUID,
	isCorrect bool,
	createdAt time.Time,
) (*PracticeResult, error) {
	result := &PracticeResult{
		ID:          uuid.New(),
		UserID:      userID,
		FlashcardID: flashcardID,
		SessionID:   sessionID,
		IsCorrect:   isCorrect,
		CreatedAt:   createdAt.UTC(),
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks if the PracticeResult has valid data.
// Returns an error if any field fails validation.
func (r *PracticeResult) Validate() error {
	if r.ID == uuid.Nil {
		return ErrResultIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrResultUserIDEmpty
	}

	if r.FlashcardID == uuid.Nil {
		return ErrResultCardIDEmpty
	}

	if r.SessionID == uuid.Nil {
		return ErrResultSessionIDEmpty
	}

	return nil
}
