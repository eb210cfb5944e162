package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrKPINotFound        = fmt.Errorf("%w: kpi", ErrNotFound)
	ErrTargetNotFound     = fmt.Errorf("%w: target", ErrNotFound)
	ErrActualNotFound     = fmt.Errorf("%w: actual", ErrNotFound)
	ErrAlertNotFound      = fmt.Errorf("%w: alert", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("%w: department", ErrNotFound)

	// Evaluation errors
	ErrInvalidFrequency = errors.New("invalid reporting frequency")
	ErrInvalidPolarity  = errors.New("invalid kpi polarity")
	ErrDivisionByZero   = errors.New("target value is zero")

	// Forecast errors
	ErrInsufficientHistory = errors.New("insufficient history for forecast")

	// Lifecycle errors
	ErrAlertResolved  = errors.New("alert already resolved")
	ErrActualReviewed = errors.New("actual already reviewed")

	// Validation errors
	ErrValidation = errors.New("validation failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEvaluationError(err error) bool {
	return errors.Is(err, ErrInvalidFrequency) ||
		errors.Is(err, ErrInvalidPolarity) ||
		errors.Is(err, ErrDivisionByZero)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsLifecycleError(err error) bool {
	return errors.Is(err, ErrAlertResolved) ||
		errors.Is(err, ErrActualReviewed)
}
