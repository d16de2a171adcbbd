package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// ProgressWithWord pairs a progress row with its word for listings that
// need both without a second round trip.
type ProgressWithWord struct {
	Progress *domain.UserWordProgress
	Word     *domain.Word
}

// WordProgressStore defines the interface for per-user word progress persistence.
type WordProgressStore interface {
	// Create saves a new progress row.
	// Returns ErrProgressExists if a row for the (user, word) pair already exists.
	Create(ctx context.Context, progress *domain.UserWordProgress) error

	// Get retrieves the progress row for a (user, word) pair.
	// Returns ErrWordProgressNotFound if no row exists.
	// NOTE: This method does NOT provide any row locking, so it should not be used
	// when you plan to update the row and need concurrency protection.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)

	// GetByID retrieves a progress row by its own ID, scoped to the user.
	// Returns ErrWordProgressNotFound if no row exists or it belongs to
	// another user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.UserWordProgress, error)

	// GetByIDForUpdate retrieves a progress row with a row-level lock using
	// SELECT FOR UPDATE. This must be used within a transaction when the row
	// will be updated, so concurrent reviews of the same word serialize.
	// Returns ErrWordProgressNotFound if no row exists or it belongs to
	// another user.
	GetByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*domain.UserWordProgress, error)

	// Update modifies an existing progress row identified by its ID.
	// Returns ErrWordProgressNotFound if the row does not exist.
	Update(ctx context.Context, progress *domain.UserWordProgress) error

	// ListByUser retrieves all progress rows for the user joined with their
	// words, optionally filtered to the given statuses.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		statuses []domain.WordStatus,
	) ([]*ProgressWithWord, error)

	// ListByWordIDs retrieves the user's progress rows for the given words.
	// Words the user has never touched are silently absent from the result.
	ListByWordIDs(
		ctx context.Context,
		userID uuid.UUID,
		wordIDs []uuid.UUID,
	) ([]*domain.UserWordProgress, error)

	// ListDue retrieves up to limit non-mastered rows whose next review time
	// is at or before now, soonest first, joined with their words.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*ProgressWithWord, error)

	// CountByStatuses counts the user's progress rows in the given statuses.
	CountByStatuses(ctx context.Context, userID uuid.UUID, statuses []domain.WordStatus) (int, error)

	// CountDue counts non-mastered rows due at or before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// CountSeenSince counts rows whose last seen time is at or after since.
	// Used for the "reviewed today" dashboard figure.
	CountSeenSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// NextReviewAfter finds the earliest upcoming review time strictly after
	// now among non-mastered rows. Returns nil when nothing is scheduled.
	NextReviewAfter(ctx context.Context, userID uuid.UUID, now time.Time) (*time.Time, error)

	// WithTx returns a new WordProgressStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WordProgressStore
}
