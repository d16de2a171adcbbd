package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
	"github.com/monkesay/monke-api/internal/service/auth"
	"github.com/monkesay/monke-api/internal/service/exercise"
	"github.com/monkesay/monke-api/internal/service/grammar"
	"github.com/monkesay/monke-api/internal/service/progress"
	"github.com/monkesay/monke-api/internal/service/review"
	"github.com/monkesay/monke-api/internal/service/story"
	"github.com/monkesay/monke-api/internal/service/words"
	"github.com/monkesay/monke-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrProgressNotFound),
		errors.Is(err, story.ErrStoryNotFound),
		errors.Is(err, words.ErrWordNotFound),
		errors.Is(err, grammar.ErrConceptNotFound),
		errors.Is(err, exercise.ErrExerciseNotFound),
		errors.Is(err, progress.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, words.ErrWordExists),
		errors.Is(err, grammar.ErrConceptExists),
		errors.Is(err, progress.ErrSessionAlreadyEnded):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, review.ErrInvalidQuality),
		errors.Is(err, story.ErrInvalidLevel),
		errors.Is(err, story.ErrInvalidRating),
		errors.Is(err, words.ErrEmptyQuery),
		errors.Is(err, grammar.ErrPrerequisitesNotMet),
		errors.Is(err, exercise.ErrEmptyAnswer),
		errors.Is(err, progress.ErrInvalidSessionType):
		return http.StatusBadRequest

	// Not enough vocabulary or blocked content: the request was well
	// formed but the system cannot fulfill it
	case errors.Is(err, story.ErrNotEnoughNewWords),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Upstream LLM failures
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Operation not permitted"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, words.ErrWordNotFound), errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, review.ErrProgressNotFound),
		errors.Is(err, store.ErrWordProgressNotFound):
		return "Word progress not found"

	case errors.Is(err, story.ErrStoryNotFound), errors.Is(err, store.ErrStoryNotFound):
		return "Story not found"

	case errors.Is(err, grammar.ErrConceptNotFound),
		errors.Is(err, store.ErrGrammarConceptNotFound):
		return "Grammar concept not found"

	case errors.Is(err, exercise.ErrExerciseNotFound),
		errors.Is(err, store.ErrExerciseNotFound):
		return "Exercise not found"

	case errors.Is(err, progress.ErrSessionNotFound), errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, words.ErrWordExists):
		return "Word already exists"

	case errors.Is(err, grammar.ErrConceptExists):
		return "Grammar concept already exists"

	case errors.Is(err, progress.ErrSessionAlreadyEnded):
		return "Session already ended"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, review.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, story.ErrInvalidLevel):
		return "Invalid CEFR level"

	case errors.Is(err, story.ErrInvalidRating):
		return "Rating must be between 1 and 5"

	case errors.Is(err, words.ErrEmptyQuery):
		return "Search query cannot be empty"

	case errors.Is(err, grammar.ErrPrerequisitesNotMet):
		return "Prerequisite concepts not yet learned"

	case errors.Is(err, exercise.ErrEmptyAnswer):
		return "Answer cannot be empty"

	case errors.Is(err, progress.ErrInvalidSessionType):
		return "Invalid session type"

	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	// Generation errors
	case errors.Is(err, story.ErrNotEnoughNewWords):
		return "Not enough new vocabulary to generate a story"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Generated content was blocked by safety filters"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return "Story generation is temporarily unavailable"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message, then
// writes the sanitized response while logging the underlying error. When
// defaultMessage is non-empty it overrides the safe message for 5xx errors,
// letting handlers give operation-specific failure text.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode >= http.StatusInternalServerError && defaultMessage != "" {
		safeMessage = defaultMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "value too small"
	case "lte":
		return "value too large"
	default:
		return "validation failed"
	}
}
