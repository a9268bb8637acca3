package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced wheel or entry does not exist (or does
	// not belong to the stated parent).
	ErrNotFound = errors.New("not found")

	// ErrAdminAuthRequired covers missing, invalid and expired credentials.
	// Callers get one outcome for all three; logs carry the distinction.
	ErrAdminAuthRequired = errors.New("admin authentication required")
)

// ValidationError reports a missing or unusable request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
