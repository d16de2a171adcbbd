package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// StoryStore defines the interface for story persistence.
type StoryStore interface {
	// Create saves a new story. The sentence breakdown and word ID lists
	// are serialized to JSONB.
	Create(ctx context.Context, story *domain.Story) error

	// GetByID retrieves a story by its unique ID.
	// Returns ErrStoryNotFound if the story does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)

	// ListByUser retrieves the user's stories, newest first. A non-nil
	// completed flag restricts the listing to finished or unfinished
	// stories.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		completed *bool,
		limit, offset int,
	) ([]*domain.Story, error)

	// Update modifies an existing story's rating and completion time.
	// Returns ErrStoryNotFound if the story does not exist.
	Update(ctx context.Context, story *domain.Story) error

	// CountCompleted counts the user's completed stories.
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)

	// FindByTargetWord finds one of the user's stories whose new-word list
	// includes the given word. Used to surface an example sentence during
	// review. Returns ErrStoryNotFound when no such story exists.
	FindByTargetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Story, error)

	// WithTx returns a new StoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StoryStore
}
