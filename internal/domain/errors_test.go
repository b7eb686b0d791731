package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := &ValidationError{Field: "name", Rule: "required"}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError should not match ErrNotFound")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "name" {
		t.Errorf("expected field %q to be identifiable, got %+v", "name", vErr)
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StorageError{Op: "list workouts", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), cause) {
		t.Error("wrapped StorageError should still unwrap to its cause")
	}
}

func TestNotFoundAndForbiddenStayDistinct(t *testing.T) {
	if errors.Is(ErrNotFound, ErrForbidden) || errors.Is(ErrForbidden, ErrNotFound) {
		t.Error("NotFound and Forbidden must be distinguishable internally")
	}
}
