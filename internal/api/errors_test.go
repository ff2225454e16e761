package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/service"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"flashcard not found", service.ErrFlashcardNotFound, http.StatusNotFound},
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"no active session", service.ErrNoActiveSession, http.StatusNotFound},
		{"session already active", service.ErrSessionAlreadyActive, http.StatusConflict},
		{"session ended", service.ErrSessionEnded, http.StatusConflict},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"review out of order", domain.ErrReviewOutOfOrder, http.StatusUnprocessableEntity},
		{"question too long", domain.ErrCardQuestionTooLong, http.StatusBadRequest},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"end before start", domain.ErrSessionEndBeforeStart, http.StatusBadRequest},
		{"unknown error", errors.New("database on fire"), http.StatusInternalServerError},
		{
			"wrapped sentinel",
			fmt.Errorf("operation failed: %w", service.ErrNoActiveSession),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	// Expected errors surface their own text.
	assert.Equal(t, service.ErrNoActiveSession.Error(),
		GetSafeErrorMessage(service.ErrNoActiveSession))

	// Internal errors never leak detail.
	assert.Equal(t, "Internal server error",
		GetSafeErrorMessage(errors.New("pq: relation flashcards does not exist")))
}
