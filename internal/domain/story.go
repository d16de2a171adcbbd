package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Story-specific validation errors.
var (
	ErrStoryIDEmpty      = errors.New("story ID cannot be empty")
	ErrStoryUserIDEmpty  = errors.New("story user ID cannot be empty")
	ErrStoryTitleEmpty   = errors.New("story title cannot be empty")
	ErrStoryContentEmpty = errors.New("story content cannot be empty")
	ErrInvalidRating     = errors.New("story rating must be between 1 and 5")
)

// SentenceWord is one word of a story sentence with its gloss.
type SentenceWord struct {
	Hindi     string `json:"hindi"`
	Romanized string `json:"romanized"`
	English   string `json:"english"`
	IsNew     bool   `json:"is_new,omitempty"`
}

// StorySentence is one sentence of a generated story, aligned across
// scripts with a per-word breakdown.
type StorySentence struct {
	Hindi     string         `json:"hindi"`
	Romanized string         `json:"romanized"`
	English   string         `json:"english"`
	Words     []SentenceWord `json:"words,omitempty"`
}

// Story is a generated reading passage personalized to one user. The
// structured sentence breakdown and the word ID lists are stored as JSONB;
// Content holds the full Hindi text as a fallback when generation returned
// unstructured output.
type Story struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	ContentRomanized string          `json:"content_romanized,omitempty"`
	ContentEnglish   string          `json:"content_english,omitempty"`
	WordCount        int             `json:"word_count"`
	Sentences        []StorySentence `json:"sentences,omitempty"`
	CEFRLevel        CEFRLevel       `json:"cefr_level"`
	Topic            string          `json:"topic,omitempty"`
	NewWordIDs       []uuid.UUID     `json:"new_word_ids,omitempty"`
	KnownWordIDs     []uuid.UUID     `json:"known_word_ids,omitempty"`
	GrammarIDs       []uuid.UUID     `json:"grammar_concept_ids,omitempty"`
	Rating           *int            `json:"rating,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`

	// Generation provenance. Stored for debugging the prompt pipeline,
	// never serialized to clients.
	GenerationPrompt string `json:"-"`
	ModelName        string `json:"-"`
	RawResponse      string `json:"-"`
}

// NewStory creates a story with a fresh ID and timestamp.
func NewStory(userID uuid.UUID, title, content string, level CEFRLevel) (*Story, error) {
	story := &Story{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CEFRLevel: level,
		CreatedAt: time.Now().UTC(),
	}

	if err := story.Validate(); err != nil {
		return nil, err
	}

	return story, nil
}

// Validate checks if the Story has valid data.
func (s *Story) Validate() error {
	if s.ID == uuid.Nil {
		return ErrStoryIDEmpty
	}
	if s.UserID == uuid.Nil {
		return ErrStoryUserIDEmpty
	}
	if s.Title == "" {
		return ErrStoryTitleEmpty
	}
	if s.Content == "" {
		return ErrStoryContentEmpty
	}
	if !s.CEFRLevel.Valid() {
		return ErrInvalidLevel
	}
	if s.Rating != nil && (*s.Rating < 1 || *s.Rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

// Completed reports whether the user has finished reading the story.
func (s *Story) Completed() bool {
	return s.CompletedAt != nil
}
