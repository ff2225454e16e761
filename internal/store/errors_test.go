package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorHierarchy(t *testing.T) {
	// Entity-specific errors unwrap to their category sentinel.
	if !errors.Is(ErrFlashcardNotFound, ErrNotFound) {
		t.Error("Expected ErrFlashcardNotFound to wrap ErrNotFound")
	}
	if !errors.Is(ErrSessionNotFound, ErrNotFound) {
		t.Error("Expected ErrSessionNotFound to wrap ErrNotFound")
	}
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Error("Expected ErrUserNotFound to wrap ErrNotFound")
	}
	if !errors.Is(ErrEmailExists, ErrDuplicate) {
		t.Error("Expected ErrEmailExists to wrap ErrDuplicate")
	}
	if !errors.Is(ErrActiveSessionExists, ErrConflict) {
		t.Error("Expected ErrActiveSessionExists to wrap ErrConflict")
	}

	// Categories stay distinct.
	if errors.Is(ErrActiveSessionExists, ErrNotFound) {
		t.Error("Expected conflict errors to not read as not-found")
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", ErrFlashcardNotFound)

	if !IsNotFoundError(wrapped) {
		t.Error("Expected IsNotFoundError to see through wrapping")
	}
	if IsDuplicateError(wrapped) {
		t.Error("Expected IsDuplicateError to be false for a not-found error")
	}
	if !IsConflictError(ErrActiveSessionExists) {
		t.Error("Expected IsConflictError true for ErrActiveSessionExists")
	}
}

func TestStoreError(t *testing.T) {
	inner := ErrSessionNotFound
	err := NewStoreError("study_session", "update", "session lookup failed", inner)

	if !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected StoreError to unwrap to the inner sentinel")
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatal("Expected errors.As to find StoreError")
	}
	if storeErr.Entity != "study_session" || storeErr.Operation != "update" {
		t.Errorf("Unexpected StoreError fields: %+v", storeErr)
	}
}
