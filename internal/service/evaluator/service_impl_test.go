package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
)

// stubGenerator returns a canned grading result or error. Story
// generation is never exercised by the evaluator.
type stubGenerator struct {
	result *generation.GradingResult
	err    error
}

func (g *stubGenerator) GenerateStory(
	ctx context.Context,
	prompt generation.StoryPrompt,
) (*generation.StoryDraft, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGenerator) GradeAnswer(
	ctx context.Context,
	prompt generation.GradingPrompt,
) (*generation.GradingResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func newTestExercise(t *testing.T, exType domain.ExerciseType, expected string) *domain.Exercise {
	t.Helper()
	exercise, err := domain.NewExercise(uuid.New(), exType, "Translate: water", expected, 0)
	require.NoError(t, err)
	return exercise
}

func TestEvaluateMultipleChoice(t *testing.T) {
	t.Parallel()

	service := NewEvaluatorService(&stubGenerator{}, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeMultipleChoice, "paani")

	result, err := service.Evaluate(context.Background(), exercise, " Paani ")
	require.NoError(t, err)
	assert.True(t, result.Correct)

	result, err = service.Evaluate(context.Background(), exercise, "doodh")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "The correct answer was: paani", result.Feedback)
}

func TestEvaluateFillBlankIsFuzzy(t *testing.T) {
	t.Parallel()

	service := NewEvaluatorService(&stubGenerator{}, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeFillBlank, "chhota")

	result, err := service.Evaluate(context.Background(), exercise, "chota")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestEvaluateWordOrderIsExact(t *testing.T) {
	t.Parallel()

	service := NewEvaluatorService(&stubGenerator{}, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeWordOrder, "main ghar jaata hoon")

	result, err := service.Evaluate(context.Background(), exercise, "ghar main jaata hoon")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "Correct order: main ghar jaata hoon", result.Feedback)
}

func TestEvaluateTranslationUsesModelGrading(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{
		result: &generation.GradingResult{Correct: true, Feedback: "Well done!"},
	}
	service := NewEvaluatorService(generator, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeTranslateToHindi, "paani")

	result, err := service.Evaluate(context.Background(), exercise, "jal")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "Well done!", result.Feedback)
}

func TestEvaluateTranslationFallsBackToFuzzy(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{err: errors.New("model unavailable")}
	service := NewEvaluatorService(generator, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeTranslateToEnglish, "water")

	result, err := service.Evaluate(context.Background(), exercise, "water")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "Good attempt!", result.Feedback)

	result, err = service.Evaluate(context.Background(), exercise, "milk")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "Expected something like: water", result.Feedback)
}

func TestEvaluateUnknownTypeIsIncorrect(t *testing.T) {
	t.Parallel()

	service := NewEvaluatorService(&stubGenerator{}, nil)
	exercise := newTestExercise(t, domain.ExerciseTypeFillBlank, "paani")
	exercise.Type = domain.ExerciseType("CLOZE")

	result, err := service.Evaluate(context.Background(), exercise, "paani")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "Unknown exercise type", result.Feedback)
}
