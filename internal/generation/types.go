package generation

import "github.com/monkesay/monke-api/internal/domain"

// PromptWord is one vocabulary item handed to the model, in all three
// representations the learner sees.
type PromptWord struct {
	ID        string
	Hindi     string
	Romanized string
	English   string
}

// PromptGrammar is one grammar concept the story should exercise.
type PromptGrammar struct {
	Name        string
	Description string
}

// StoryPrompt carries everything the generator needs to produce a story:
// the learner's level, the vocabulary they can read, the words the story
// must teach, and the grammar it should practice.
type StoryPrompt struct {
	Level      domain.CEFRLevel
	Topic      string
	KnownWords []PromptWord
	NewWords   []PromptWord
	Grammar    []PromptGrammar
}

// SentenceDraft is one sentence of a generated story before persistence.
type SentenceDraft struct {
	Index     int                   `json:"index"`
	Hindi     string                `json:"hindi"`
	Romanized string                `json:"romanized"`
	English   string                `json:"english"`
	Words     []domain.SentenceWord `json:"words,omitempty"`
}

// ExerciseDraft is one generated exercise before persistence.
type ExerciseDraft struct {
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// StoryDraft is the parsed output of one story generation call.
// Degraded drafts carry the raw model text in ContentHindi with empty
// Sentences and Exercises.
type StoryDraft struct {
	Title            string          `json:"title"`
	ContentHindi     string          `json:"content_hindi"`
	ContentRomanized string          `json:"content_romanized"`
	ContentEnglish   string          `json:"content_english"`
	WordCount        int             `json:"word_count"`
	Sentences        []SentenceDraft `json:"sentences"`
	Exercises        []ExerciseDraft `json:"exercises"`

	// Provenance of the generation call, persisted with the story so a
	// bad generation can be traced back to its prompt.
	Prompt      string `json:"-"`
	ModelName   string `json:"-"`
	RawResponse string `json:"-"`
}

// GradingPrompt carries one free-text answer for the model to judge.
type GradingPrompt struct {
	Question       string
	ExpectedAnswer string
	StudentAnswer  string
}

// GradingResult is the model's verdict on a graded answer.
type GradingResult struct {
	Correct  bool   `json:"is_correct"`
	Feedback string `json:"feedback"`
}
