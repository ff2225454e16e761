package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in the ServiceError type
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrFlashcardNotFound indicates the flashcard does not exist or is not
	// owned by the requesting user. Ownership failures are deliberately
	// indistinguishable from absence.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrSessionNotFound indicates the study session does not exist or is
	// not owned by the requesting user.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrNoActiveSession indicates the user has no active study session
	// matching the request. This covers both "already ended" and "wrong
	// session id" uniformly.
	ErrNoActiveSession = errors.New("no matching active study session")

	// ErrSessionAlreadyActive indicates the user already has an active study
	// session and must end it before starting another.
	ErrSessionAlreadyActive = errors.New("session already active")

	// ErrSessionEnded indicates a practice result was submitted against an
	// ended session while the service is configured to reject those.
	ErrSessionEnded = errors.New("study session has already ended")

	// ErrFlashcardDeleted indicates an operation targeted a soft-deleted
	// flashcard that requires a live one.
	ErrFlashcardDeleted = errors.New("flashcard has been deleted")

	// ErrEmailTaken indicates a registration attempt with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceError wraps unexpected errors from the service layer with
// additional context. Consumers differentiate service errors with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session", "record_outcome")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError with the given operation, message, and wrapped error.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
