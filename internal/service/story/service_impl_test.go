package story

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
)

func testPlan() *Plan {
	return &Plan{
		Level: domain.LevelA1,
		Topic: "market",
		NewWords: []*domain.Word{
			{ID: uuid.New(), Hindi: "सब्ज़ी", Romanized: "sabzi", English: "vegetable"},
		},
	}
}

func TestAssembleStoryKeepsGenerationProvenance(t *testing.T) {
	t.Parallel()

	svc := &storyServiceImpl{logger: slog.Default()}
	draft := &generation.StoryDraft{
		Title:        "बाज़ार",
		ContentHindi: "राम बाज़ार जाता है।",
		WordCount:    4,
		Prompt:       "You are a Hindi teacher. Write a story about the market.",
		ModelName:    "gemini-2.0-flash",
		RawResponse:  `{"title":"बाज़ार","content_hindi":"राम बाज़ार जाता है।"}`,
	}

	story, _, err := svc.assembleStory(uuid.New(), testPlan(), draft)
	require.NoError(t, err)

	assert.Equal(t, draft.Prompt, story.GenerationPrompt)
	assert.Equal(t, draft.ModelName, story.ModelName)
	assert.Equal(t, draft.RawResponse, story.RawResponse)
}

func TestAssembleStoryOrdersSentencesAndDropsBadExercises(t *testing.T) {
	t.Parallel()

	svc := &storyServiceImpl{logger: slog.Default()}
	draft := &generation.StoryDraft{
		Title:        "बाज़ार",
		ContentHindi: "राम बाज़ार जाता है।",
		Sentences: []generation.SentenceDraft{
			{Index: 1, Hindi: "दूसरा"},
			{Index: 0, Hindi: "पहला"},
		},
		Exercises: []generation.ExerciseDraft{
			{Type: "MULTIPLE_CHOICE", Prompt: "What does sabzi mean?", CorrectAnswer: "vegetable"},
			{Type: "GUESSWORK", Prompt: "bogus", CorrectAnswer: "bogus"},
		},
	}

	story, exercises, err := svc.assembleStory(uuid.New(), testPlan(), draft)
	require.NoError(t, err)

	require.Len(t, story.Sentences, 2)
	assert.Equal(t, "पहला", story.Sentences[0].Hindi)
	assert.Equal(t, "दूसरा", story.Sentences[1].Hindi)

	require.Len(t, exercises, 1, "unknown exercise types are dropped")
	assert.Equal(t, domain.ExerciseTypeMultipleChoice, exercises[0].Type)
}
