package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ExerciseType distinguishes how an exercise is presented and graded.
type ExerciseType string

// Supported exercise types.
const (
	ExerciseTypeMultipleChoice     ExerciseType = "MULTIPLE_CHOICE"
	ExerciseTypeFillBlank          ExerciseType = "FILL_BLANK"
	ExerciseTypeComprehension      ExerciseType = "COMPREHENSION"
	ExerciseTypeWordOrder          ExerciseType = "WORD_ORDER"
	ExerciseTypeTranslateToHindi   ExerciseType = "TRANSLATE_TO_HINDI"
	ExerciseTypeTranslateToEnglish ExerciseType = "TRANSLATE_TO_ENGLISH"
)

// Exercise-specific validation errors.
var (
	ErrExerciseIDEmpty      = errors.New("exercise ID cannot be empty")
	ErrExerciseStoryIDEmpty = errors.New("exercise story ID cannot be empty")
	ErrExercisePromptEmpty  = errors.New("exercise prompt cannot be empty")
	ErrAttemptIDEmpty       = errors.New("exercise attempt ID cannot be empty")
	ErrAttemptUserIDEmpty   = errors.New("exercise attempt user ID cannot be empty")
	ErrAttemptExerciseEmpty = errors.New("exercise attempt exercise ID cannot be empty")
)

// Exercise is one comprehension or production task attached to a story.
// Options is only populated for MULTIPLE_CHOICE. ExpectedAnswer is the
// grading target; free-form types are graded fuzzily or by the LLM.
type Exercise struct {
	ID             uuid.UUID    `json:"id"`
	StoryID        uuid.UUID    `json:"story_id"`
	Type           ExerciseType `json:"type"`
	Prompt         string       `json:"prompt"`
	PromptHindi    string       `json:"prompt_hindi,omitempty"`
	Options        []string     `json:"options,omitempty"`
	ExpectedAnswer string       `json:"expected_answer"`
	Explanation    string       `json:"explanation,omitempty"`
	SortOrder      int          `json:"sort_order"`
	WordIDs        []uuid.UUID  `json:"word_ids,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewExercise creates an exercise with a fresh ID and timestamp.
func NewExercise(storyID uuid.UUID, exType ExerciseType, prompt, expected string, sortOrder int) (*Exercise, error) {
	exercise := &Exercise{
		ID:             uuid.New(),
		StoryID:        storyID,
		Type:           exType,
		Prompt:         prompt,
		ExpectedAnswer: expected,
		SortOrder:      sortOrder,
		CreatedAt:      time.Now().UTC(),
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrExerciseIDEmpty
	}
	if e.StoryID == uuid.Nil {
		return ErrExerciseStoryIDEmpty
	}
	if !e.Type.Valid() {
		return ErrInvalidExerciseType
	}
	if e.Prompt == "" {
		return ErrExercisePromptEmpty
	}
	return nil
}

// EvaluationResult is the graded outcome of one submitted answer.
type EvaluationResult struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// ExerciseAttempt records one submitted answer and its evaluation.
type ExerciseAttempt struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	Score      float64   `json:"score"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewExerciseAttempt creates an attempt record from an evaluation result.
func NewExerciseAttempt(userID, exerciseID uuid.UUID, answer string, result EvaluationResult) (*ExerciseAttempt, error) {
	attempt := &ExerciseAttempt{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
		Answer:     answer,
		Correct:    result.Correct,
		Score:      result.Score,
		Feedback:   result.Feedback,
		CreatedAt:  time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the ExerciseAttempt has valid data.
func (a *ExerciseAttempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}
	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}
	if a.ExerciseID == uuid.Nil {
		return ErrAttemptExerciseEmpty
	}
	return nil
}

// Valid reports whether the exercise type is one of the known values.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseTypeMultipleChoice, ExerciseTypeFillBlank, ExerciseTypeComprehension,
		ExerciseTypeWordOrder, ExerciseTypeTranslateToHindi, ExerciseTypeTranslateToEnglish:
		return true
	default:
		return false
	}
}
