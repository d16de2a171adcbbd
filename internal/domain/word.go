package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PartOfSpeech classifies a vocabulary item grammatically.
type PartOfSpeech string

// Possible part-of-speech values.
const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPostposition PartOfSpeech = "POSTPOSITION"
	PartOfSpeechParticle     PartOfSpeech = "PARTICLE"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
)

// CEFRLevel is the proficiency tier a word or concept belongs to.
type CEFRLevel string

// Supported CEFR levels, ordered A1 < A2 < B1 < B2.
const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
)

// Word-specific validation errors.
var (
	ErrWordIDEmpty      = errors.New("word ID cannot be empty")
	ErrWordHindiEmpty   = errors.New("word hindi form cannot be empty")
	ErrWordRomanEmpty   = errors.New("word romanized form cannot be empty")
	ErrWordEnglishEmpty = errors.New("word english gloss cannot be empty")
	ErrWordInvalidPOS   = errors.New("word part of speech is invalid")
	ErrWordInvalidLevel = errors.New("word CEFR level is invalid")
	ErrWordRootIsSelf   = errors.New("word cannot be its own root")
)

// Word is a single vocabulary item. The root word, when present, is
// referenced by ID only; traversal goes through the store, never through
// embedded back-references.
type Word struct {
	ID           uuid.UUID    `json:"id"`
	Hindi        string       `json:"hindi"`
	Romanized    string       `json:"romanized"`
	English      string       `json:"english"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
	RootWordID   *uuid.UUID   `json:"root_word_id,omitempty"`
	CEFRLevel    CEFRLevel    `json:"cefr_level"`
	Tags         []string     `json:"tags,omitempty"`
	AudioURL     string       `json:"audio_url,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewWord creates a new Word with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewWord(hindi, romanized, english string, pos PartOfSpeech, level CEFRLevel) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		ID:           uuid.New(),
		Hindi:        hindi,
		Romanized:    romanized,
		English:      english,
		PartOfSpeech: pos,
		CEFRLevel:    level,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}
	if w.Hindi == "" {
		return ErrWordHindiEmpty
	}
	if w.Romanized == "" {
		return ErrWordRomanEmpty
	}
	if w.English == "" {
		return ErrWordEnglishEmpty
	}
	if !w.PartOfSpeech.Valid() {
		return ErrWordInvalidPOS
	}
	if !w.CEFRLevel.Valid() {
		return ErrWordInvalidLevel
	}
	if w.RootWordID != nil && *w.RootWordID == w.ID {
		return ErrWordRootIsSelf
	}
	return nil
}

// Valid reports whether the part of speech is one of the known values.
func (p PartOfSpeech) Valid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechPostposition, PartOfSpeechParticle,
		PartOfSpeechPronoun, PartOfSpeechConjunction:
		return true
	default:
		return false
	}
}

// Valid reports whether the level is one of the known CEFR tiers.
func (l CEFRLevel) Valid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2:
		return true
	default:
		return false
	}
}
