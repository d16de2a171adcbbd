package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// ExerciseStore defines the interface for exercise persistence.
type ExerciseStore interface {
	// CreateMultiple saves multiple exercises to the store.
	// IMPORTANT: This method MUST be run within a transaction for atomicity;
	// exercises are always created together with their story.
	CreateMultiple(ctx context.Context, exercises []*domain.Exercise) error

	// GetByID retrieves an exercise by its unique ID.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)

	// ListByStory retrieves a story's exercises ordered by sort order.
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]*domain.Exercise, error)

	// WithTx returns a new ExerciseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ExerciseStore
}

// ExerciseAttemptStore defines the interface for exercise attempt persistence.
type ExerciseAttemptStore interface {
	// Create saves a new attempt record.
	Create(ctx context.Context, attempt *domain.ExerciseAttempt) error

	// ListByUserAndExercise retrieves the user's attempts at one exercise,
	// newest first.
	ListByUserAndExercise(
		ctx context.Context,
		userID, exerciseID uuid.UUID,
	) ([]*domain.ExerciseAttempt, error)

	// CountCompleted counts the distinct exercises the user has answered
	// correctly at least once.
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)

	// WithTx returns a new ExerciseAttemptStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ExerciseAttemptStore
}
