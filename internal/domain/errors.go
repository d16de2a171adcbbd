package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidQuality is returned when a review quality rating is outside [0,5].
	ErrInvalidQuality = errors.New("invalid review quality")

	// ErrInvalidPartOfSpeech is returned when a part of speech is not recognized.
	ErrInvalidPartOfSpeech = errors.New("invalid part of speech")

	// ErrInvalidLevel is returned when a CEFR level is not one of A1, A2, B1, B2.
	ErrInvalidLevel = errors.New("invalid CEFR level")

	// ErrInvalidWordStatus is returned when a word progress status is not valid.
	ErrInvalidWordStatus = errors.New("invalid word status")

	// ErrInvalidGrammarStatus is returned when a grammar progress status is not valid.
	ErrInvalidGrammarStatus = errors.New("invalid grammar status")

	// ErrInvalidExerciseType is returned when an exercise type is not recognized.
	ErrInvalidExerciseType = errors.New("invalid exercise type")

	// ErrInvalidSessionType is returned when a learning session type is not valid.
	ErrInvalidSessionType = errors.New("invalid session type")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError wraps a field-level validation failure with the
// field name so the API layer can report it without string matching.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
