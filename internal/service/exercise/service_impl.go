package exercise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/evaluator"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ ExerciseService = (*exerciseServiceImpl)(nil)

// exerciseServiceImpl implements the ExerciseService interface.
type exerciseServiceImpl struct {
	exerciseStore store.ExerciseStore
	attemptStore  store.ExerciseAttemptStore
	storyStore    store.StoryStore
	evaluator     evaluator.EvaluatorService
	logger        *slog.Logger
}

// NewExerciseService creates a new ExerciseService implementation.
func NewExerciseService(
	exerciseStore store.ExerciseStore,
	attemptStore store.ExerciseAttemptStore,
	storyStore store.StoryStore,
	evaluatorService evaluator.EvaluatorService,
	logger *slog.Logger,
) ExerciseService {
	if exerciseStore == nil {
		panic("exerciseStore cannot be nil")
	}
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}
	if storyStore == nil {
		panic("storyStore cannot be nil")
	}
	if evaluatorService == nil {
		panic("evaluatorService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &exerciseServiceImpl{
		exerciseStore: exerciseStore,
		attemptStore:  attemptStore,
		storyStore:    storyStore,
		evaluator:     evaluatorService,
		logger:        logger.With(slog.String("component", "exercise_service")),
	}
}

// Get implements ExerciseService.Get.
func (s *exerciseServiceImpl) Get(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
) (*domain.Exercise, error) {
	return s.ownedExercise(ctx, userID, exerciseID)
}

// ownedExercise loads an exercise and verifies the user owns its story.
func (s *exerciseServiceImpl) ownedExercise(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
) (*domain.Exercise, error) {
	exercise, err := s.exerciseStore.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrExerciseNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}

	story, err := s.storyStore.GetByID(ctx, exercise.StoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise story: %w", err)
	}
	if story.UserID != userID {
		return nil, ErrExerciseNotFound
	}

	return exercise, nil
}

// Submit implements ExerciseService.Submit.
func (s *exerciseServiceImpl) Submit(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
	answer string,
) (*SubmissionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluator.Evaluate(ctx, exercise, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}

	attempt, err := domain.NewExerciseAttempt(userID, exerciseID, answer, result)
	if err != nil {
		return nil, err
	}
	if err := s.attemptStore.Create(ctx, attempt); err != nil {
		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exerciseID.String()))
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	log.Debug("exercise attempt recorded",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", exerciseID.String()),
		slog.Bool("correct", result.Correct))

	return &SubmissionResult{Result: result, Attempt: attempt}, nil
}

// Evaluate implements ExerciseService.Evaluate.
func (s *exerciseServiceImpl) Evaluate(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
	answer string,
) (*domain.EvaluationResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluator.Evaluate(ctx, exercise, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	return &result, nil
}

// ListAttempts implements ExerciseService.ListAttempts.
func (s *exerciseServiceImpl) ListAttempts(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
) ([]*domain.ExerciseAttempt, error) {
	if _, err := s.ownedExercise(ctx, userID, exerciseID); err != nil {
		return nil, err
	}

	attempts, err := s.attemptStore.ListByUserAndExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}
