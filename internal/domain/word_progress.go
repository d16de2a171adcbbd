package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WordStatus tracks how well a user knows a word.
type WordStatus string

// Possible word progress statuses.
const (
	WordStatusNew      WordStatus = "NEW"
	WordStatusLearning WordStatus = "LEARNING"
	WordStatusKnown    WordStatus = "KNOWN"
	WordStatusMastered WordStatus = "MASTERED"
)

// WordSource records how a word entered a user's vocabulary.
type WordSource string

// Possible word sources.
const (
	WordSourceSeeded WordSource = "SEEDED"
	WordSourceStory  WordSource = "STORY"
	WordSourceManual WordSource = "MANUAL"
	WordSourceReview WordSource = "REVIEW"
)

// Default SRS settings for newly created progress rows.
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 1.0
)

// Common validation errors for UserWordProgress.
var (
	ErrEmptyProgressID     = errors.New("word progress ID cannot be empty")
	ErrEmptyProgressUserID = errors.New("word progress user ID cannot be empty")
	ErrEmptyProgressWordID = errors.New("word progress word ID cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be greater than 1.0")
	ErrInvalidFamiliarity  = errors.New("familiarity must be within [0, 1]")
)

// UserWordProgress tracks a user's spaced repetition state for a single word.
// There is at most one row per (user, word) pair; a missing row means the
// word is NEW for that user. Scheduling fields are mutated exclusively by
// the SRS service and the story-completion exposure path.
type UserWordProgress struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	WordID        uuid.UUID  `json:"word_id"`
	Status        WordStatus `json:"status"`
	Familiarity   float64    `json:"familiarity"`
	TimesSeen     int        `json:"times_seen"`
	TimesReviewed int        `json:"times_reviewed"`
	TimesCorrect  int        `json:"times_correct"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
	NextReviewAt  *time.Time `json:"next_review_at,omitempty"`
	IntervalDays  float64    `json:"srs_interval_days"`
	EaseFactor    float64    `json:"srs_ease_factor"`
	Source        WordSource `json:"source"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewUserWordProgress creates a progress row for a user and word with
// default SRS values. The word is due for review immediately.
func NewUserWordProgress(userID, wordID uuid.UUID, source WordSource) (*UserWordProgress, error) {
	now := time.Now().UTC()
	progress := &UserWordProgress{
		ID:           uuid.New(),
		UserID:       userID,
		WordID:       wordID,
		Status:       WordStatusNew,
		Familiarity:  0,
		IntervalDays: DefaultIntervalDays,
		EaseFactor:   DefaultEaseFactor,
		Source:       source,
		CreatedAt:    now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the UserWordProgress has valid data.
func (p *UserWordProgress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProgressID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}
	if !p.Status.Valid() {
		return ErrInvalidWordStatus
	}
	if p.IntervalDays < 0 {
		return ErrInvalidInterval
	}
	if p.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}
	if p.Familiarity < 0 || p.Familiarity > 1 {
		return ErrInvalidFamiliarity
	}
	return nil
}

// Valid reports whether the status is one of the known values.
func (s WordStatus) Valid() bool {
	switch s {
	case WordStatusNew, WordStatusLearning, WordStatusKnown, WordStatusMastered:
		return true
	default:
		return false
	}
}

// Valid reports whether the source is one of the known values.
func (s WordSource) Valid() bool {
	switch s {
	case WordSourceSeeded, WordSourceStory, WordSourceManual, WordSourceReview:
		return true
	default:
		return false
	}
}
