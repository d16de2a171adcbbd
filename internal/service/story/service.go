// Package story plans, generates, and manages personalized reading
// passages. The planner resolves the learner's level and picks the
// vocabulary and grammar inputs; the service turns the resulting plan
// into a prompt, calls the generator, and persists the story together
// with its exercises.
package story

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// Listing limits for the story history.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// defaultTopic is used when the user does not suggest one.
const defaultTopic = "daily life"

// GenerateRequest carries the user's knobs for story generation.
type GenerateRequest struct {
	Topic          string
	IncludeWordIDs []uuid.UUID
	FocusGrammarID *uuid.UUID
	LevelOverride  domain.CEFRLevel
}

// ListRequest narrows the story history listing.
type ListRequest struct {
	Completed *bool // nil lists everything
	Limit     int
	Offset    int
}

// StoryService produces and manages generated stories.
type StoryService interface {
	// CheckReadiness reports whether enough fresh vocabulary exists at
	// the user's level to generate a worthwhile story.
	CheckReadiness(ctx context.Context, userID uuid.UUID) (*Readiness, error)

	// Generate plans and generates a new story and persists it together
	// with its exercises in one transaction.
	//
	// Returns:
	//   - (*domain.Story, nil): the persisted story
	//   - (nil, ErrNotEnoughNewWords): fewer than three new words could
	//     be planned at the user's level
	//   - (nil, ErrInvalidLevel): the level override is not a CEFR level
	//   - (nil, error): generation or persistence failure
	Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*domain.Story, error)

	// Get retrieves one of the user's stories.
	// Returns ErrStoryNotFound if it does not exist or belongs to
	// another user.
	Get(ctx context.Context, userID, storyID uuid.UUID) (*domain.Story, error)

	// List retrieves the user's stories, newest first.
	List(ctx context.Context, userID uuid.UUID, req ListRequest) ([]*domain.Story, error)

	// ListExercises retrieves a story's exercises in presentation order,
	// checking story ownership first.
	// Returns ErrStoryNotFound if the story is not the user's.
	ListExercises(ctx context.Context, userID, storyID uuid.UUID) ([]*domain.Exercise, error)

	// Complete marks a story finished, records an optional 1-5 rating,
	// and registers an exposure for each word the story taught: the
	// progress row's seen counter increments and NEW rows move to
	// LEARNING; words without a row get one with LEARNING status.
	//
	// Returns ErrStoryNotFound if the story is not the user's and
	// ErrInvalidRating for a rating outside 1-5.
	Complete(ctx context.Context, userID, storyID uuid.UUID, rating *int) (*domain.Story, error)
}

// Common error types for StoryService
var (
	// ErrStoryNotFound indicates the story does not exist or is not owned
	// by the requesting user.
	ErrStoryNotFound = errors.New("story not found")

	// ErrNotEnoughNewWords indicates the inventory has too few unseen
	// words at the user's level to teach a story from.
	ErrNotEnoughNewWords = errors.New("not enough new words available at this level")

	// ErrInvalidLevel indicates an unknown CEFR level override.
	ErrInvalidLevel = errors.New("invalid difficulty level")

	// ErrInvalidRating indicates a rating outside the 1-5 range.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
