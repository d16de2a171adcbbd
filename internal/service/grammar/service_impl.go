package grammar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ GrammarService = (*grammarServiceImpl)(nil)

// grammarServiceImpl implements the GrammarService interface.
type grammarServiceImpl struct {
	grammarStore  store.GrammarStore
	progressStore store.GrammarProgressStore
	logger        *slog.Logger
}

// NewGrammarService creates a new GrammarService implementation.
func NewGrammarService(
	grammarStore store.GrammarStore,
	progressStore store.GrammarProgressStore,
	logger *slog.Logger,
) GrammarService {
	if grammarStore == nil {
		panic("grammarStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &grammarServiceImpl{
		grammarStore:  grammarStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "grammar_service")),
	}
}

// ListConcepts implements GrammarService.ListConcepts.
func (s *grammarServiceImpl) ListConcepts(ctx context.Context) ([]*domain.GrammarConcept, error) {
	concepts, err := s.grammarStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar concepts: %w", err)
	}
	return concepts, nil
}

// ListWithProgress implements GrammarService.ListWithProgress.
func (s *grammarServiceImpl) ListWithProgress(
	ctx context.Context,
	userID uuid.UUID,
) ([]*ConceptWithProgress, error) {
	concepts, err := s.grammarStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar concepts: %w", err)
	}

	progressRows, err := s.progressStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar progress: %w", err)
	}

	progressByConcept := make(map[uuid.UUID]*domain.UserGrammarProgress, len(progressRows))
	for _, progress := range progressRows {
		progressByConcept[progress.ConceptID] = progress
	}

	out := make([]*ConceptWithProgress, 0, len(concepts))
	for _, concept := range concepts {
		progress := progressByConcept[concept.ID]
		if progress == nil {
			// Virtual row: absence of progress means the concept is locked
			progress = &domain.UserGrammarProgress{
				UserID:    userID,
				ConceptID: concept.ID,
				Status:    domain.GrammarStatusLocked,
			}
		}
		out = append(out, &ConceptWithProgress{Concept: concept, Progress: progress})
	}

	return out, nil
}

// GetConcept implements GrammarService.GetConcept.
func (s *grammarServiceImpl) GetConcept(
	ctx context.Context,
	conceptID uuid.UUID,
) (*domain.GrammarConcept, error) {
	concept, err := s.grammarStore.GetByID(ctx, conceptID)
	if err != nil {
		if errors.Is(err, store.ErrGrammarConceptNotFound) {
			return nil, ErrConceptNotFound
		}
		return nil, fmt.Errorf("failed to get grammar concept: %w", err)
	}
	return concept, nil
}

// CreateConcept implements GrammarService.CreateConcept.
func (s *grammarServiceImpl) CreateConcept(
	ctx context.Context,
	concept *domain.GrammarConcept,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := concept.Validate(); err != nil {
		return err
	}

	if err := s.grammarStore.Create(ctx, concept); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrConceptExists
		}
		log.Error("failed to create grammar concept",
			slog.String("error", err.Error()),
			slog.String("slug", concept.Slug))
		return fmt.Errorf("failed to create grammar concept: %w", err)
	}

	log.Info("grammar concept created",
		slog.String("concept_id", concept.ID.String()),
		slog.String("slug", concept.Slug))
	return nil
}

// Unlock implements GrammarService.Unlock.
func (s *grammarServiceImpl) Unlock(
	ctx context.Context,
	userID, conceptID uuid.UUID,
) (*domain.UserGrammarProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	concept, err := s.grammarStore.GetByID(ctx, conceptID)
	if err != nil {
		if errors.Is(err, store.ErrGrammarConceptNotFound) {
			return nil, ErrConceptNotFound
		}
		return nil, fmt.Errorf("failed to get grammar concept: %w", err)
	}

	if err := s.checkPrerequisites(ctx, userID, concept); err != nil {
		return nil, err
	}

	progress, err := s.progressStore.Get(ctx, userID, conceptID)
	switch {
	case err == nil:
		if progress.Status == domain.GrammarStatusLocked {
			progress.Status = domain.GrammarStatusAvailable
			if err := s.progressStore.Update(ctx, progress); err != nil {
				return nil, fmt.Errorf("failed to update grammar progress: %w", err)
			}
		}

	case errors.Is(err, store.ErrGrammarProgressNotFound):
		progress, err = domain.NewUserGrammarProgress(userID, conceptID, domain.GrammarStatusAvailable)
		if err != nil {
			return nil, err
		}
		if err := s.progressStore.Create(ctx, progress); err != nil {
			return nil, fmt.Errorf("failed to create grammar progress: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to get grammar progress: %w", err)
	}

	log.Debug("grammar concept unlocked",
		slog.String("user_id", userID.String()),
		slog.String("concept_id", conceptID.String()))

	return progress, nil
}

// checkPrerequisites verifies every prerequisite concept is LEARNED.
func (s *grammarServiceImpl) checkPrerequisites(
	ctx context.Context,
	userID uuid.UUID,
	concept *domain.GrammarConcept,
) error {
	if len(concept.PrerequisiteIDs) == 0 {
		return nil
	}

	progressRows, err := s.progressStore.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list grammar progress: %w", err)
	}

	learned := make(map[uuid.UUID]bool, len(progressRows))
	for _, progress := range progressRows {
		if progress.Status == domain.GrammarStatusLearned {
			learned[progress.ConceptID] = true
		}
	}

	for _, prereqID := range concept.PrerequisiteIDs {
		if !learned[prereqID] {
			return ErrPrerequisitesNotMet
		}
	}

	return nil
}
