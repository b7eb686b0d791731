package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer to signal and handlers to map to HTTP
// status. ErrNotFound and ErrForbidden stay distinct so callers can choose
// whether to collapse them at the edge.
var (
	ErrUnauthorized = errors.New("no authenticated identity")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("resource belongs to another user")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError identifies the offending field and the rule it broke.
// errors.Is(err, ErrValidation) matches any ValidationError.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q: %s", e.Field, e.Rule)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps an unexpected failure from the backing store. The
// underlying error is kept for logs but handlers surface it opaquely.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
