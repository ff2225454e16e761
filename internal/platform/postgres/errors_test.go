package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/studydeck-api/internal/store"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "nil stays nil",
			err:    nil,
			target: nil,
		},
		{
			name:   "no rows maps to not found",
			err:    fmt.Errorf("query: %w", sql.ErrNoRows),
			target: store.ErrNotFound,
		},
		{
			name:   "active session index maps to conflict",
			err:    pgError(uniqueViolationCode, activeSessionConstraint),
			target: store.ErrActiveSessionExists,
		},
		{
			name:   "email index maps to email exists",
			err:    pgError(uniqueViolationCode, userEmailConstraint),
			target: store.ErrEmailExists,
		},
		{
			name:   "other unique violation maps to duplicate",
			err:    pgError(uniqueViolationCode, "some_other_index"),
			target: store.ErrDuplicate,
		},
		{
			name:   "foreign key violation maps to invalid entity",
			err:    pgError(foreignKeyViolationCode, "fk_practice_results_flashcard"),
			target: store.ErrInvalidEntity,
		},
		{
			name:   "check violation maps to invalid entity",
			err:    pgError(checkViolationCode, "ck_flashcards_question_length"),
			target: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			if tt.target == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.target)
		})
	}
}

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, err, MapError(err))
}

func TestViolationPredicates(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "x")))
	assert.False(t, IsUniqueViolation(errors.New("plain")))

	assert.True(t, IsForeignKeyViolation(pgError(foreignKeyViolationCode, "x")))
	assert.False(t, IsForeignKeyViolation(pgError(uniqueViolationCode, "x")))
}
