package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// GrammarStatus tracks a user's progress on a grammar concept.
type GrammarStatus string

// Possible grammar progress statuses.
const (
	GrammarStatusLocked    GrammarStatus = "LOCKED"
	GrammarStatusAvailable GrammarStatus = "AVAILABLE"
	GrammarStatusLearning  GrammarStatus = "LEARNING"
	GrammarStatusLearned   GrammarStatus = "LEARNED"
)

// Grammar-specific validation errors.
var (
	ErrConceptIDEmpty      = errors.New("grammar concept ID cannot be empty")
	ErrConceptNameEmpty    = errors.New("grammar concept name cannot be empty")
	ErrConceptSlugEmpty    = errors.New("grammar concept slug cannot be empty")
	ErrConceptSelfPrereq   = errors.New("grammar concept cannot be its own prerequisite")
	ErrEmptyGrammarUserID  = errors.New("grammar progress user ID cannot be empty")
	ErrEmptyGrammarConcept = errors.New("grammar progress concept ID cannot be empty")
	ErrInvalidComfortScore = errors.New("comfort score must be within [0, 1]")
)

// GrammarExample is one example sentence illustrating a concept.
type GrammarExample struct {
	Hindi     string `json:"hindi"`
	Romanized string `json:"romanized"`
	English   string `json:"english"`
}

// GrammarConcept is a named grammar rule. Prerequisites form a DAG and are
// referenced by ID; a concept becomes available to a user only once all of
// its prerequisites are LEARNED for that user.
type GrammarConcept struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	CEFRLevel       CEFRLevel        `json:"cefr_level"`
	SortOrder       int              `json:"sort_order"`
	Examples        []GrammarExample `json:"examples,omitempty"`
	PrerequisiteIDs []uuid.UUID      `json:"prerequisite_ids,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewGrammarConcept creates a new concept with a fresh ID and timestamp.
func NewGrammarConcept(name, slug, description string, level CEFRLevel, sortOrder int) (*GrammarConcept, error) {
	concept := &GrammarConcept{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: description,
		CEFRLevel:   level,
		SortOrder:   sortOrder,
		CreatedAt:   time.Now().UTC(),
	}

	if err := concept.Validate(); err != nil {
		return nil, err
	}

	return concept, nil
}

// Validate checks if the GrammarConcept has valid data.
func (c *GrammarConcept) Validate() error {
	if c.ID == uuid.Nil {
		return ErrConceptIDEmpty
	}
	if c.Name == "" {
		return ErrConceptNameEmpty
	}
	if c.Slug == "" {
		return ErrConceptSlugEmpty
	}
	if !c.CEFRLevel.Valid() {
		return ErrInvalidLevel
	}
	for _, id := range c.PrerequisiteIDs {
		if id == c.ID {
			return ErrConceptSelfPrereq
		}
	}
	return nil
}

// UserGrammarProgress tracks a user's state for one grammar concept.
// There is at most one row per (user, concept) pair; a missing row means
// the concept is LOCKED for that user.
type UserGrammarProgress struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	ConceptID    uuid.UUID     `json:"grammar_concept_id"`
	Status       GrammarStatus `json:"status"`
	IntroducedAt *time.Time    `json:"introduced_at,omitempty"`
	ComfortScore float64       `json:"comfort_score"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewUserGrammarProgress creates a progress row for a user and concept.
func NewUserGrammarProgress(userID, conceptID uuid.UUID, status GrammarStatus) (*UserGrammarProgress, error) {
	progress := &UserGrammarProgress{
		ID:        uuid.New(),
		UserID:    userID,
		ConceptID: conceptID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the UserGrammarProgress has valid data.
func (p *UserGrammarProgress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProgressID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyGrammarUserID
	}
	if p.ConceptID == uuid.Nil {
		return ErrEmptyGrammarConcept
	}
	if !p.Status.Valid() {
		return ErrInvalidGrammarStatus
	}
	if p.ComfortScore < 0 || p.ComfortScore > 1 {
		return ErrInvalidComfortScore
	}
	return nil
}

// Valid reports whether the status is one of the known values.
func (s GrammarStatus) Valid() bool {
	switch s {
	case GrammarStatusLocked, GrammarStatusAvailable, GrammarStatusLearning, GrammarStatusLearned:
		return true
	default:
		return false
	}
}
