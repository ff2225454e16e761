package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
)

// StatField identifies one of the four counters on a user's statistic row.
type StatField string

// Counter fields addressable through ApplyDelta.
const (
	StatFieldFlashcards       StatField = "total_flashcards"
	StatFieldStudySessions    StatField = "total_study_sessions"
	StatFieldCorrectAnswers   StatField = "total_correct_answers"
	StatFieldIncorrectAnswers StatField = "total_incorrect_answers"
)

// Valid reports whether the field names one of the known counters.
func (f StatField) Valid() bool {
	switch f {
	case StatFieldFlashcards, StatFieldStudySessions,
		StatFieldCorrectAnswers, StatFieldIncorrectAnswers:
		return true
	default:
		return false
	}
}

// StatisticStore defines the interface for per-user counter persistence.
//
// Counter mutations go through ApplyDelta, which implementations must make
// atomic (an in-place increment at the storage layer, never an application
// level read-modify-write), so concurrent practice submissions for the same
// user cannot lose updates.
type StatisticStore interface {
	// GetOrCreate retrieves the user's statistic row, creating a zeroed row
	// if none exists yet.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Statistic, error)

	// ApplyDelta atomically adds delta to the named counter, flooring the
	// result at zero. The row is created first if it does not exist.
	ApplyDelta(ctx context.Context, userID uuid.UUID, field StatField, delta int64) error

	// Reset atomically zeroes all four counters for the user.
	Reset(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new StatisticStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StatisticStore
}
