package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// GrammarStore defines the interface for grammar concept persistence.
type GrammarStore interface {
	// Create saves a new grammar concept.
	// Returns ErrDuplicate if a concept with the same slug already exists.
	Create(ctx context.Context, concept *domain.GrammarConcept) error

	// GetByID retrieves a concept by its unique ID.
	// Returns ErrGrammarConceptNotFound if the concept does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GrammarConcept, error)

	// List retrieves all concepts ordered by sort order.
	List(ctx context.Context) ([]*domain.GrammarConcept, error)

	// WithTx returns a new GrammarStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GrammarStore
}

// GrammarProgressStore defines the interface for per-user grammar progress persistence.
type GrammarProgressStore interface {
	// Create saves a new grammar progress row.
	// Returns ErrGrammarProgressExists if a row for the (user, concept)
	// pair already exists.
	Create(ctx context.Context, progress *domain.UserGrammarProgress) error

	// Get retrieves the progress row for a (user, concept) pair.
	// Returns ErrGrammarProgressNotFound if no row exists.
	Get(ctx context.Context, userID, conceptID uuid.UUID) (*domain.UserGrammarProgress, error)

	// ListByUser retrieves all grammar progress rows for the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGrammarProgress, error)

	// CountByStatus counts the user's grammar progress rows in the given status.
	CountByStatus(ctx context.Context, userID uuid.UUID, status domain.GrammarStatus) (int, error)

	// Update modifies an existing grammar progress row identified by its ID.
	// Returns ErrGrammarProgressNotFound if the row does not exist.
	Update(ctx context.Context, progress *domain.UserGrammarProgress) error

	// WithTx returns a new GrammarProgressStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GrammarProgressStore
}
