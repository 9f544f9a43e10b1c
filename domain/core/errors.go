package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound             = errors.New("resource not found")
	ErrJournalEntryNotFound = fmt.Errorf("%w: journal entry", ErrNotFound)
	ErrGoalNotFound         = fmt.Errorf("%w: goal", ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("%w: smoke-free profile", ErrNotFound)
	ErrDigestNotFound       = fmt.Errorf("%w: weekly digest", ErrNotFound)
	ErrUrgeNotFound         = fmt.Errorf("%w: urge", ErrNotFound)

	// Validation errors
	ErrValidation           = errors.New("validation failed")
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidDay           = errors.New("invalid calendar day")
	ErrInvalidEnergy        = errors.New("invalid energy level")
	ErrInvalidNervousSystem = errors.New("invalid nervous system state")
	ErrInvalidStatus        = errors.New("invalid day status")
	ErrInvalidMood          = errors.New("invalid mood")
	ErrInvalidGoal          = errors.New("invalid goal")
	ErrInvalidUrge          = errors.New("invalid urge")
	ErrFutureDay            = errors.New("day is in the future")
)

// NewNotFoundError wraps ErrNotFound with the resource and id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError describes a rejected field
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// IsNotFoundError reports whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a domain validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidEnergy) ||
		errors.Is(err, ErrInvalidNervousSystem) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidMood) ||
		errors.Is(err, ErrInvalidGoal) ||
		errors.Is(err, ErrInvalidUrge) ||
		errors.Is(err, ErrFutureDay)
}
