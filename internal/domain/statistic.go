package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Statistic-specific validation errors
var (
	// ErrStatisticUserIDEmpty is returned when a statistic's user ID is empty or nil.
	ErrStatisticUserIDEmpty = errors.New("statistic user ID cannot be empty")

	// ErrNegativeCounter is returned when any statistic counter is negative.
	ErrNegativeCounter = errors.New("statistic counters cannot be negative")
)

// Statistic holds the per-user running counters from which study metrics are
// derived. The counters are incremental caches maintained in response to
// domain events, never recomputed by summing the underlying tables; they are
// monotonically non-decreasing except under an explicit reset.
type Statistic struct {
	UserID                uuid.UUID `json:"user_id"`
	TotalFlashcards       int64     `json:"total_flashcards"`
	TotalStudySessions    int64     `json:"total_study_sessions"`
	TotalCorrectAnswers   int64     `json:"total_correct_answers"`
	TotalIncorrectAnswers int64     `json:"total_incorrect_answers"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewStatistic creates a zeroed Statistic row for the given user.
// Returns an error if validation fails.
func NewStatistic(userID uuid.UUID) (*Statistic, error) {
	now := time.Now().UTC()
	stats := &Statistic{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Validate checks if the Statistic has valid data.
// Returns an error if any field fails validation.
func (s *Statistic) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrStatisticUserIDEmpty
	}

	if s.TotalFlashcards < 0 || s.TotalStudySessions < 0 ||
		s.TotalCorrectAnswers < 0 || s.TotalIncorrectAnswers < 0 {
		return ErrNegativeCounter
	}

	return nil
}

// TotalAnswers returns the total number of recorded practice outcomes.
func (s *Statistic) TotalAnswers() int64 {
	return s.TotalCorrectAnswers + s.TotalIncorrectAnswers
}

// CorrectPercentage returns the share of correct answers among all recorded
// answers, in [0, 100]. It is 0.0 when no answers have been recorded.
func (s *Statistic) CorrectPercentage() float64 {
	total := s.TotalAnswers()
	if total == 0 {
		return 0.0
	}
	return float64(s.TotalCorrectAnswers) / float64(total) * 100
}

// CompletionPercentage returns how many answers have been recorded relative
// to the user's flashcard count, in [0, 100]. It is 0.0 when the user has no
// flashcards and caps at 100 once attempts exceed the card count, since
// answers count attempts rather than distinct cards.
func (s *Statistic) CompletionPercentage() float64 {
	if s.TotalFlashcards == 0 {
		return 0.0
	}
	pct := float64(s.TotalAnswers()) / float64(s.TotalFlashcards) * 100
	return math.Min(pct, 100)
}

// Reset zeroes all four counters. Used only by an explicit user-initiated
// reset, never implicitly.
func (s *Statistic) Reset() {
	s.TotalFlashcards = 0
	s.TotalStudySessions = 0
	s.TotalCorrectAnswers = 0
	s.TotalIncorrectAnswers = 0
	s.UpdatedAt = time.Now().UTC()
}
