package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
)

func TestExtractJSONBlock(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare JSON passes through",
			input:    `{"title": "x"}`,
			expected: `{"title": "x"}`,
		},
		{
			name:     "json fence is stripped",
			input:    "Here you go:\n```json\n{\"title\": \"x\"}\n```\nEnjoy!",
			expected: `{"title": "x"}`,
		},
		{
			name:     "plain fence is stripped",
			input:    "```\n{\"title\": \"x\"}\n```",
			expected: `{"title": "x"}`,
		},
		{
			name:     "unterminated fence keeps the remainder",
			input:    "```json\n{\"title\": \"x\"}",
			expected: `{"title": "x"}`,
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  \n{\"title\": \"x\"}\n  ",
			expected: `{"title": "x"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, extractJSONBlock(tc.input))
		})
	}
}

func TestBuildStoryPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildStoryPrompt(generation.StoryPrompt{
		Level: domain.LevelA2,
		Topic: "the market",
		KnownWords: []generation.PromptWord{
			{Hindi: "पानी", Romanized: "paani", English: "water"},
		},
		NewWords: []generation.PromptWord{
			{Hindi: "सब्ज़ी", Romanized: "sabzi", English: "vegetable"},
		},
		Grammar: []generation.PromptGrammar{
			{Name: "Postpositions", Description: "Hindi uses postpositions instead of prepositions"},
		},
	})

	assert.Contains(t, prompt, "A2 level")
	assert.Contains(t, prompt, "पानी (paani): water")
	assert.Contains(t, prompt, "सब्ज़ी (sabzi): vegetable")
	assert.Contains(t, prompt, "Postpositions: Hindi uses postpositions")
	assert.Contains(t, prompt, "TOPIC: the market")
	assert.Contains(t, prompt, `"exercises"`)
}

func TestBuildStoryPromptDefaults(t *testing.T) {
	t.Parallel()

	prompt := buildStoryPrompt(generation.StoryPrompt{
		Level:    domain.LevelA1,
		NewWords: []generation.PromptWord{{Hindi: "घर", Romanized: "ghar", English: "house"}},
	})

	assert.Contains(t, prompt, "Basic greetings and pronouns")
	assert.Contains(t, prompt, "Basic sentence structure")
	assert.Contains(t, prompt, "TOPIC: daily life")
}

func TestBuildStoryPromptCapsKnownVocabulary(t *testing.T) {
	t.Parallel()

	known := make([]generation.PromptWord, maxKnownWordsInPrompt+50)
	for i := range known {
		known[i] = generation.PromptWord{Hindi: "शब्द", Romanized: "shabd", English: "word"}
	}

	prompt := buildStoryPrompt(generation.StoryPrompt{
		Level:      domain.LevelB1,
		KnownWords: known,
		NewWords:   []generation.PromptWord{{Hindi: "घर", Romanized: "ghar", English: "house"}},
	})

	assert.Equal(t, maxKnownWordsInPrompt, strings.Count(prompt, "शब्द (shabd): word"))
}

func TestBuildGradingPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildGradingPrompt(generation.GradingPrompt{
		Question:       "Translate: I drink water",
		ExpectedAnswer: "main paani peeta hoon",
		StudentAnswer:  "mein pani pita hu",
	})

	assert.Contains(t, prompt, "Question: Translate: I drink water")
	assert.Contains(t, prompt, "Expected answer: main paani peeta hoon")
	assert.Contains(t, prompt, "Student's answer: mein pani pita hu")
	assert.Contains(t, prompt, `"is_correct"`)
}
