// Package review implements the spaced repetition review workflow: listing
// words that are due, grading a review, and summarizing the review queue.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// Default and maximum sizes for the due-word listing.
const (
	DefaultDueLimit = 20
	MaxDueLimit     = 50
)

// ReviewSubmission represents a user's self-graded recall of a word.
type ReviewSubmission struct {
	Quality int `json:"quality"` // Recall quality on the 0-5 scale
}

// ExampleSentence is a sentence from one of the user's stories that
// contains the word under review, shown as recall context.
type ExampleSentence struct {
	Hindi     string `json:"hindi"`
	Romanized string `json:"romanized"`
	English   string `json:"english"`
}

// DueWord pairs a due progress row with its word and, when one of the
// user's stories introduced the word, an example sentence.
type DueWord struct {
	Progress *domain.UserWordProgress `json:"progress"`
	Word     *domain.Word             `json:"word"`
	Example  *ExampleSentence         `json:"example_sentence,omitempty"`
}

// Summary describes the state of the user's review queue.
type Summary struct {
	WordsDue           int        `json:"words_due"`
	WordsReviewedToday int        `json:"words_reviewed_today"`
	NextReviewAt       *time.Time `json:"next_review_at,omitempty"`
}

// ReviewService provides methods for reviewing vocabulary using a
// spaced repetition algorithm.
type ReviewService interface {
	// ListDue retrieves up to limit words due for review, soonest first.
	// A limit of zero or less falls back to DefaultDueLimit; limits above
	// MaxDueLimit are clamped. Each item carries the word itself and an
	// example sentence when one of the user's stories introduced the word.
	//
	// This method does not modify any data.
	ListDue(ctx context.Context, userID uuid.UUID, limit int) ([]*DueWord, error)

	// SubmitReview grades one review of a word and reschedules it.
	//
	// This method performs several operations within a single transaction:
	// 1. Loads the progress row with a row-level lock, verifying ownership
	// 2. Applies the SRS algorithm to the quality rating
	// 3. Persists the updated schedule, counters, and status
	//
	// Returns:
	//   - (*domain.UserWordProgress, nil): the rescheduled progress
	//   - (nil, ErrProgressNotFound): if the row does not exist or belongs
	//     to another user
	//   - (nil, ErrInvalidQuality): if the quality is outside 0-5
	//   - (nil, error): any other error, typically from the database
	//
	// Concurrent submissions for the same word serialize on the row lock,
	// so each review sees the schedule the previous one produced.
	SubmitReview(
		ctx context.Context,
		userID uuid.UUID,
		progressID uuid.UUID,
		submission ReviewSubmission,
	) (*domain.UserWordProgress, error)

	// GetSummary reports how many words are due now, how many were
	// reviewed since midnight UTC, and when the next review comes up.
	//
	// This method does not modify any data.
	GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error)
}

// Common error types for ReviewService
var (
	// ErrProgressNotFound indicates the progress row does not exist or is
	// not owned by the requesting user.
	ErrProgressNotFound = errors.New("word progress not found")

	// ErrInvalidQuality indicates the quality rating is outside the 0-5 scale.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)
