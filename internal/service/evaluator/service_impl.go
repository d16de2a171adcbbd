package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
	"github.com/monkesay/monke-api/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ EvaluatorService = (*evaluatorServiceImpl)(nil)

// evaluatorServiceImpl implements the EvaluatorService interface.
type evaluatorServiceImpl struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewEvaluatorService creates a new EvaluatorService implementation.
// The generator grades free-text translations; it may be exercised rarely
// but cannot be nil.
func NewEvaluatorService(
	generator generation.Generator,
	logger *slog.Logger,
) EvaluatorService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &evaluatorServiceImpl{
		generator: generator,
		logger:    logger.With(slog.String("component", "evaluator_service")),
	}
}

// Evaluate implements EvaluatorService.Evaluate.
func (s *evaluatorServiceImpl) Evaluate(
	ctx context.Context,
	exercise *domain.Exercise,
	answer string,
) (domain.EvaluationResult, error) {
	switch exercise.Type {
	case domain.ExerciseTypeMultipleChoice, domain.ExerciseTypeComprehension:
		if normalize(answer) == normalize(exercise.ExpectedAnswer) {
			return correct(""), nil
		}
		return incorrect(fmt.Sprintf("The correct answer was: %s", exercise.ExpectedAnswer)), nil

	case domain.ExerciseTypeWordOrder:
		if normalize(answer) == normalize(exercise.ExpectedAnswer) {
			return correct(""), nil
		}
		return incorrect(fmt.Sprintf("Correct order: %s", exercise.ExpectedAnswer)), nil

	case domain.ExerciseTypeFillBlank:
		if fuzzyMatch(answer, exercise.ExpectedAnswer) {
			return correct(""), nil
		}
		return incorrect(fmt.Sprintf("Expected: %s", exercise.ExpectedAnswer)), nil

	case domain.ExerciseTypeTranslateToHindi, domain.ExerciseTypeTranslateToEnglish:
		return s.evaluateTranslation(ctx, exercise, answer), nil

	default:
		return incorrect("Unknown exercise type"), nil
	}
}

// evaluateTranslation asks the language model to grade a free-text
// translation and falls back to the fuzzy matcher on any failure.
func (s *evaluatorServiceImpl) evaluateTranslation(
	ctx context.Context,
	exercise *domain.Exercise,
	answer string,
) domain.EvaluationResult {
	log := logger.FromContextOrDefault(ctx, s.logger)

	graded, err := s.generator.GradeAnswer(ctx, generation.GradingPrompt{
		Question:       exercise.Prompt,
		ExpectedAnswer: exercise.ExpectedAnswer,
		StudentAnswer:  answer,
	})
	if err != nil {
		log.Warn("model grading failed, falling back to fuzzy match",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))

		if fuzzyMatch(answer, exercise.ExpectedAnswer) {
			return correct("Good attempt!")
		}
		return incorrect(fmt.Sprintf("Expected something like: %s", exercise.ExpectedAnswer))
	}

	result := domain.EvaluationResult{
		Correct:  graded.Correct,
		Feedback: graded.Feedback,
	}
	if graded.Correct {
		result.Score = 1.0
	}
	return result
}

func correct(feedback string) domain.EvaluationResult {
	return domain.EvaluationResult{Correct: true, Score: 1.0, Feedback: feedback}
}

func incorrect(feedback string) domain.EvaluationResult {
	return domain.EvaluationResult{Correct: false, Score: 0.0, Feedback: feedback}
}
