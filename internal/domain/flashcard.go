package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxCardTextLength is the maximum allowed length, in characters, for a
// flashcard's question and answer text.
const MaxCardTextLength = 500

// Flashcard-specific validation errors
var (
	// ErrCardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrCardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a flashcard's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("flashcard user ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a flashcard's question is empty.
	ErrCardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrCardAnswerEmpty is returned when a flashcard's answer is empty.
	ErrCardAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrCardQuestionTooLong is returned when a flashcard's question exceeds
	// MaxCardTextLength characters.
	ErrCardQuestionTooLong = errors.New("flashcard question exceeds maximum length")

	// ErrCardAnswerTooLong is returned when a flashcard's answer exceeds
	// MaxCardTextLength characters.
	ErrCardAnswerTooLong = errors.New("flashcard answer exceeds maximum length")
)

// Flashcard represents one question/answer pair owned by a user, together
// with its review status. The status reflects only the most recent review
// outcome, not a running tally.
type Flashcard struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Status         CardStatus `json:"status"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// NewFlashcard creates a new Flashcard with the given user ID, question, and
// answer. It generates a new UUID for the flashcard ID, sets the status to
// New, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewFlashcard(userID uuid.UUID, question, answer string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Status:    CardStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if f.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if f.Question == "" {
		return ErrCardQuestionEmpty
	}

	if len([]rune(f.Question)) > MaxCardTextLength {
		return ErrCardQuestionTooLong
	}

	if f.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if len([]rune(f.Answer)) > MaxCardTextLength {
		return ErrCardAnswerTooLong
	}

	return f.Status.Validate()
}

// Review records the outcome of a practice attempt against the flashcard.
// The status becomes Correct or Incorrect per isCorrect, and LastReviewedAt
// is set to reviewedAt.
//
// Reviews must arrive in chronological order for a given card: if reviewedAt
// is earlier than a previously recorded review, ErrReviewOutOfOrder is
// returned and the flashcard is left unchanged.
func (f *Flashcard) Review(isCorrect bool, reviewedAt time.Time) error {
	if f.LastReviewedAt != nil && reviewedAt.Before(*f.LastReviewedAt) {
		return ErrReviewOutOfOrder
	}

	if isCorrect {
		f.Status = CardStatusCorrect
	} else {
		f.Status = CardStatusIncorrect
	}

	at := reviewedAt.UTC()
	f.LastReviewedAt = &at
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// IsNew reports whether the flashcard has never been reviewed.
func (f *Flashcard) IsNew() bool {
	return f.Status == CardStatusNew
}

// IsCorrect reports whether the most recent review was correct.
func (f *Flashcard) IsCorrect() bool {
	return f.Status == CardStatusCorrect
}

// IsIncorrect reports whether the most recent review was incorrect.
func (f *Flashcard) IsIncorrect() bool {
	return f.Status == CardStatusIncorrect
}

// IsDeleted reports whether the flashcard has been soft-deleted.
func (f *Flashcard) IsDeleted() bool {
	return f.DeletedAt != nil
}

// SoftDelete marks the flashcard as logically removed. The card remains
// recoverable via Restore until it is purged.
func (f *Flashcard) SoftDelete(at time.Time) {
	t := at.UTC()
	f.DeletedAt = &t
	f.UpdatedAt = t
}

// Restore clears a previous soft delete, making the flashcard visible again.
func (f *Flashcard) Restore() {
	f.DeletedAt = nil
	f.UpdatedAt = time.Now().UTC()
}
