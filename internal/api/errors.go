package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/service"
)

// MapErrorToStatusCode maps service and domain errors to HTTP status codes.
// Unknown errors map to 500; the raw error text is never sent to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrFlashcardNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoActiveSession):
		return http.StatusNotFound

	case errors.Is(err, service.ErrSessionAlreadyActive),
		errors.Is(err, service.ErrSessionEnded),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrReviewOutOfOrder):
		return http.StatusUnprocessableEntity

	case isValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error. Expected
// errors carry their own safe text; anything else gets a generic message.
func GetSafeErrorMessage(err error) string {
	if MapErrorToStatusCode(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// isValidationError reports whether the error is any of the domain's
// validation failures.
func isValidationError(err error) bool {
	validationErrs := []error{
		domain.ErrValidation,
		domain.ErrCardQuestionEmpty,
		domain.ErrCardAnswerEmpty,
		domain.ErrCardQuestionTooLong,
		domain.ErrCardAnswerTooLong,
		domain.ErrInvalidCardStatus,
		domain.ErrSessionEndBeforeStart,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
