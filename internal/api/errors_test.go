package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

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

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"progress not found", review.ErrProgressNotFound, http.StatusNotFound},
		{"story not found", story.ErrStoryNotFound, http.StatusNotFound},
		{"word not found", words.ErrWordNotFound, http.StatusNotFound},
		{"concept not found", grammar.ErrConceptNotFound, http.StatusNotFound},
		{"exercise not found", exercise.ErrExerciseNotFound, http.StatusNotFound},
		{"session not found", progress.ErrSessionNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"word exists", words.ErrWordExists, http.StatusConflict},
		{"concept exists", grammar.ErrConceptExists, http.StatusConflict},
		{"session already ended", progress.ErrSessionAlreadyEnded, http.StatusConflict},
		{"invalid quality", review.ErrInvalidQuality, http.StatusBadRequest},
		{"invalid rating", story.ErrInvalidRating, http.StatusBadRequest},
		{"empty query", words.ErrEmptyQuery, http.StatusBadRequest},
		{"prerequisites not met", grammar.ErrPrerequisitesNotMet, http.StatusBadRequest},
		{"empty answer", exercise.ErrEmptyAnswer, http.StatusBadRequest},
		{"not enough new words", story.ErrNotEnoughNewWords, http.StatusUnprocessableEntity},
		{"content blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity},
		{"generation failed", generation.ErrGenerationFailed, http.StatusBadGateway},
		{"unknown error", errors.New("mystery failure"), http.StatusInternalServerError},
		{
			"wrapped not found",
			fmt.Errorf("loading story: %w", story.ErrStoryNotFound),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"word not found", words.ErrWordNotFound, "Word not found"},
		{"story not found", story.ErrStoryNotFound, "Story not found"},
		{"invalid quality", review.ErrInvalidQuality, "Quality must be between 0 and 5"},
		{
			"not enough new words",
			story.ErrNotEnoughNewWords,
			"Not enough new vocabulary to generate a story",
		},
		{"unknown error", errors.New("pq: deadlock detected"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("dial tcp 10.0.0.7:5432: connect: connection refused")
	msg := GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "10.0.0.7")
	assert.NotContains(t, msg, "5432")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
