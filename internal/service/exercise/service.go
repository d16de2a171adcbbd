// Package exercise handles answer submission: it resolves the exercise,
// verifies the user owns the story it belongs to, grades the answer, and
// records the attempt.
package exercise

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// SubmissionResult pairs the graded outcome with the recorded attempt.
type SubmissionResult struct {
	Result  domain.EvaluationResult `json:"result"`
	Attempt *domain.ExerciseAttempt `json:"attempt"`
}

// ExerciseService grades and records exercise attempts.
type ExerciseService interface {
	// Get retrieves an exercise, verifying the user owns its story.
	// Returns ErrExerciseNotFound if the exercise does not exist or its
	// story belongs to another user.
	Get(ctx context.Context, userID, exerciseID uuid.UUID) (*domain.Exercise, error)

	// Submit grades the answer and records an attempt.
	// Returns ErrExerciseNotFound under the same conditions as Get and
	// ErrEmptyAnswer for a blank submission.
	Submit(ctx context.Context, userID, exerciseID uuid.UUID, answer string) (*SubmissionResult, error)

	// Evaluate grades the answer without recording an attempt. Intended for
	// in-progress feedback on free-text exercises.
	Evaluate(ctx context.Context, userID, exerciseID uuid.UUID, answer string) (*domain.EvaluationResult, error)

	// ListAttempts retrieves the user's previous attempts at an exercise,
	// newest first.
	ListAttempts(ctx context.Context, userID, exerciseID uuid.UUID) ([]*domain.ExerciseAttempt, error)
}

// Common error types for ExerciseService
var (
	// ErrExerciseNotFound indicates the exercise does not exist or its
	// story is not owned by the requesting user.
	ErrExerciseNotFound = errors.New("exercise not found")

	// ErrEmptyAnswer indicates a blank submission.
	ErrEmptyAnswer = errors.New("answer cannot be empty")
)
