package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCardStatus is returned when a flashcard status is not one of
	// the known values.
	ErrInvalidCardStatus = errors.New("invalid card status")

	// ErrReviewOutOfOrder is returned when a review timestamp is earlier than
	// a previously recorded review for the same flashcard.
	ErrReviewOutOfOrder = errors.New("review timestamp is earlier than last recorded review")

	// ErrSessionAlreadyEnded is returned when attempting to end a study
	// session that already has an end timestamp.
	ErrSessionAlreadyEnded = errors.New("study session already ended")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
