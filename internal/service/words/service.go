// Package words exposes the vocabulary inventory: listing and search with
// the user's progress merged in, word creation, and the mark-known
// shortcut.
package words

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// Listing limits. The search endpoint is tighter than the browse listing.
const (
	DefaultListLimit   = 50
	MaxListLimit       = 200
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// WordWithProgress pairs a word with the user's progress on it, if any.
// Progress is nil for words the user has never touched.
type WordWithProgress struct {
	Word     *domain.Word             `json:"word"`
	Progress *domain.UserWordProgress `json:"user_progress,omitempty"`
}

// ListRequest narrows the word listing.
type ListRequest struct {
	Status domain.WordStatus // filter by the user's progress status; NEW matches untouched words
	Level  domain.CEFRLevel
	Search string
	Limit  int
	Offset int
}

// WordService provides vocabulary inventory operations.
type WordService interface {
	// List retrieves words matching the request with the user's progress
	// merged in. The status filter is applied after the merge: untouched
	// words count as NEW.
	List(ctx context.Context, userID uuid.UUID, req ListRequest) ([]*WordWithProgress, error)

	// Search retrieves words matching the query across hindi, romanized,
	// and english forms. No progress merge; this backs typeahead.
	Search(ctx context.Context, query string, limit int) ([]*domain.Word, error)

	// Get retrieves one word with the user's progress, if any.
	// Returns ErrWordNotFound if the word does not exist.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*WordWithProgress, error)

	// Create adds a word to the inventory.
	// Returns ErrWordExists if the hindi form and part of speech collide.
	Create(ctx context.Context, word *domain.Word) error

	// MarkKnown records that the user already knows the word, creating or
	// updating the progress row with status KNOWN and familiarity 0.8.
	// Returns ErrWordNotFound if the word does not exist.
	MarkKnown(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
}

// Common error types for WordService
var (
	// ErrWordNotFound indicates the word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrWordExists indicates a word with the same hindi form and part of
	// speech already exists.
	ErrWordExists = errors.New("word already exists")

	// ErrEmptyQuery indicates a search with no query string.
	ErrEmptyQuery = errors.New("search query cannot be empty")
)

// clampLimit applies a default and a ceiling to a requested page size.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
