// Package gemini provides implementations for the generation interface using Google's Gemini API.
package gemini

import "github.com/monkesay/monke-api/internal/generation"

// storySchema mirrors the JSON structure the story prompt asks the model
// to produce. Keeping a separate type here pins the wire contract to this
// package.
type storySchema struct {
	Title            string                     `json:"title"`
	ContentHindi     string                     `json:"content_hindi"`
	ContentRomanized string                     `json:"content_romanized"`
	ContentEnglish   string                     `json:"content_english"`
	WordCount        int                        `json:"word_count"`
	Sentences        []generation.SentenceDraft `json:"sentences"`
	Exercises        []generation.ExerciseDraft `json:"exercises"`
}

// toDraft maps the parsed payload onto the shared draft type. Provenance
// fields are filled in by the caller.
func (s storySchema) toDraft() generation.StoryDraft {
	return generation.StoryDraft{
		Title:            s.Title,
		ContentHindi:     s.ContentHindi,
		ContentRomanized: s.ContentRomanized,
		ContentEnglish:   s.ContentEnglish,
		WordCount:        s.WordCount,
		Sentences:        s.Sentences,
		Exercises:        s.Exercises,
	}
}

// gradingSchema mirrors the JSON structure the grading prompt asks for.
type gradingSchema struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}
