package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrVerificationRequired   = errors.New("voice verification required")
	ErrVerificationInProgress = errors.New("voice verification in progress")
	ErrAlreadyVerified        = errors.New("voice verification already completed")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
)

// InvalidTransitionError identifies the current and the requested status of a rejected change.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrInvalidTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrentModificationError is returned by repositories when the stored version
// no longer matches the version the aggregate was loaded with.
type ConcurrentModificationError struct {
	Entity  string
	ID      any
	Version int64
}

func NewConcurrentModificationError(entity string, id any, version int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id, Version: version}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %v changed after version %d", ErrConcurrentModification, e.Entity, e.ID, e.Version)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
