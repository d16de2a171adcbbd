// Package progress derives user-facing statistics from stored word,
// grammar, story, and session records, and manages learning sessions for
// streak bookkeeping. All statistics are computed on read; nothing here
// caches or denormalizes.
package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/store"
)

// Stats is the compact dashboard payload.
type Stats struct {
	WordsKnown int              `json:"words_known"`
	Level      domain.CEFRLevel `json:"level"`
	StreakDays int              `json:"streak_days"`
	ReviewsDue int              `json:"reviews_due"`
}

// Report is the detailed progress payload.
type Report struct {
	WordsKnown         int              `json:"words_known"`
	WordsLearning      int              `json:"words_learning"`
	GrammarLearned     int              `json:"grammar_learned"`
	CurrentLevel       domain.CEFRLevel `json:"current_level"`
	CurrentStreak      int              `json:"current_streak"`
	StoriesCompleted   int              `json:"total_stories_completed"`
	ExercisesCompleted int              `json:"total_exercises_completed"`
}

// SessionUpdate carries the counters recorded when a session is closed.
type SessionUpdate struct {
	WordsReviewed int `json:"words_reviewed"`
	WordsCorrect  int `json:"words_correct"`
}

// ProgressService computes user statistics and manages learning sessions.
type ProgressService interface {
	// GetStats returns the compact dashboard figures: known-word count,
	// level from the dashboard thresholds, current streak, and due reviews.
	GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error)

	// GetReport returns the detailed progress breakdown.
	GetReport(ctx context.Context, userID uuid.UUID) (*Report, error)

	// ListWordProgress retrieves the user's tracked words joined with
	// their vocabulary entries, optionally filtered by status.
	ListWordProgress(
		ctx context.Context,
		userID uuid.UUID,
		statuses []domain.WordStatus,
	) ([]*store.ProgressWithWord, error)

	// StartSession opens a learning session of the given type.
	// storyID is optional and only meaningful for STORY sessions.
	StartSession(
		ctx context.Context,
		userID uuid.UUID,
		sessionType domain.SessionType,
		storyID *uuid.UUID,
	) (*domain.LearningSession, error)

	// EndSession closes a session and records its counters. Only ended
	// sessions count toward the streak.
	//
	// Returns ErrSessionNotFound if the session does not exist or belongs
	// to another user, and ErrSessionAlreadyEnded if it was already closed.
	EndSession(
		ctx context.Context,
		userID uuid.UUID,
		sessionID uuid.UUID,
		update SessionUpdate,
	) (*domain.LearningSession, error)
}

// Common error types for ProgressService
var (
	// ErrSessionNotFound indicates the session does not exist or is not
	// owned by the requesting user.
	ErrSessionNotFound = errors.New("learning session not found")

	// ErrSessionAlreadyEnded indicates the session was already closed.
	ErrSessionAlreadyEnded = errors.New("learning session already ended")

	// ErrInvalidSessionType indicates an unknown session type.
	ErrInvalidSessionType = errors.New("invalid session type")
)
