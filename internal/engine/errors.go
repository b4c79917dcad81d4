// Package engine defines the error taxonomy shared by every engine service.
// Handlers map these onto HTTP statuses; services never return raw driver
// errors to callers.
package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entry, transaction, batch or pair is absent.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a write before any state change. Reason names the
// specific violated invariant, e.g. "debits and credits do not balance".
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError rejects a write that contradicts existing state, such as a
// duplicate account code or a transaction already reconciled the other way.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence failure. When it surfaces from a
// multi-step operation the caller must treat the affected record as suspect.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for the named operation.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
