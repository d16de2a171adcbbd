// Package grammar manages the grammar concept curriculum: listing with
// per-user progress and the prerequisite-gated unlock flow.
package grammar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// ConceptWithProgress pairs a grammar concept with the user's progress on
// it. Untouched concepts carry a virtual LOCKED progress value that is
// never persisted.
type ConceptWithProgress struct {
	Concept  *domain.GrammarConcept      `json:"concept"`
	Progress *domain.UserGrammarProgress `json:"progress"`
}

// GrammarService provides grammar curriculum operations.
type GrammarService interface {
	// ListConcepts retrieves all concepts ordered by sort order.
	ListConcepts(ctx context.Context) ([]*domain.GrammarConcept, error)

	// ListWithProgress retrieves all concepts paired with the user's
	// progress. Concepts without a progress row get a virtual LOCKED entry.
	ListWithProgress(ctx context.Context, userID uuid.UUID) ([]*ConceptWithProgress, error)

	// GetConcept retrieves one concept.
	// Returns ErrConceptNotFound if the concept does not exist.
	GetConcept(ctx context.Context, conceptID uuid.UUID) (*domain.GrammarConcept, error)

	// CreateConcept adds a concept to the curriculum.
	// Returns ErrConceptExists if the slug collides.
	CreateConcept(ctx context.Context, concept *domain.GrammarConcept) error

	// Unlock makes a concept AVAILABLE for the user, creating the progress
	// row if needed. All prerequisite concepts must be LEARNED.
	//
	// Returns ErrConceptNotFound if the concept does not exist and
	// ErrPrerequisitesNotMet if any prerequisite is not yet learned.
	// Unlocking an already unlocked concept is a no-op.
	Unlock(ctx context.Context, userID, conceptID uuid.UUID) (*domain.UserGrammarProgress, error)
}

// Common error types for GrammarService
var (
	// ErrConceptNotFound indicates the grammar concept does not exist.
	ErrConceptNotFound = errors.New("grammar concept not found")

	// ErrConceptExists indicates a concept with the same slug already exists.
	ErrConceptExists = errors.New("grammar concept already exists")

	// ErrPrerequisitesNotMet indicates not all prerequisite concepts are
	// LEARNED yet.
	ErrPrerequisitesNotMet = errors.New("prerequisites not met")
)
