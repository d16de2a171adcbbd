package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// WordFilter narrows List queries over the word inventory.
// Zero values mean "no constraint".
type WordFilter struct {
	CEFRLevel    domain.CEFRLevel
	PartOfSpeech domain.PartOfSpeech
	Search       string // matches hindi, romanized, or english
	Limit        int
	Offset       int
}

// WordStore defines the interface for word inventory persistence.
type WordStore interface {
	// Create saves a new word to the inventory.
	// Returns ErrDuplicate if a word with the same hindi form and part of
	// speech already exists.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByIDs retrieves the words for the given IDs. Missing IDs are
	// silently skipped; the result order is unspecified.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error)

	// List retrieves words matching the filter, ordered by CEFR level and
	// then hindi form.
	List(ctx context.Context, filter WordFilter) ([]*domain.Word, error)

	// ListUnseenAtLevel retrieves up to limit words at the given level for
	// which the user has no progress row, in random order. Used to pick
	// new vocabulary for story generation.
	ListUnseenAtLevel(
		ctx context.Context,
		userID uuid.UUID,
		level domain.CEFRLevel,
		limit int,
	) ([]*domain.Word, error)

	// CountUnseenAtLevel counts words at the given level for which the
	// user has no progress row.
	CountUnseenAtLevel(ctx context.Context, userID uuid.UUID, level domain.CEFRLevel) (int, error)

	// WithTx returns a new WordStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}
