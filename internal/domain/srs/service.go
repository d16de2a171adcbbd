package srs

import (
	"errors"
	"time"

	"github.com/monkesay/monke-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress    = errors.New("word progress cannot be nil")
	ErrInvalidQuality = errors.New("review quality must be between 0 and 5")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// CalculateReview computes new progress based on a review quality.
	// The input progress is not modified; a new value is returned.
	CalculateReview(
		progress *domain.UserWordProgress,
		quality int,
		now time.Time,
	) (*domain.UserWordProgress, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateReview implements the Service interface. The returned progress
// reflects one graded review: updated ease factor and interval, incremented
// counters, recomputed familiarity, and the status the word lands on.
func (s *defaultService) CalculateReview(
	progress *domain.UserWordProgress,
	quality int,
	now time.Time,
) (*domain.UserWordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	if quality < 0 || quality > 5 {
		return nil, ErrInvalidQuality
	}

	// Work on a copy so callers keep the pre-review state
	updated := *progress

	// A failed review resets the interval and leaves the ease untouched
	if quality < s.params.PassingQuality {
		updated.IntervalDays = calculateNewInterval(
			progress.IntervalDays, quality, progress.EaseFactor, s.params)
	} else {
		updated.EaseFactor = calculateNewEaseFactor(progress.EaseFactor, quality, s.params)
		updated.IntervalDays = calculateNewInterval(
			progress.IntervalDays, quality, updated.EaseFactor, s.params)
	}

	updated.TimesReviewed = progress.TimesReviewed + 1
	if quality >= s.params.PassingQuality {
		updated.TimesCorrect = progress.TimesCorrect + 1
	}

	lastSeen := now
	nextReview := calculateNextReviewDate(updated.IntervalDays, now)
	updated.LastSeenAt = &lastSeen
	updated.NextReviewAt = &nextReview

	updated.Familiarity = calculateFamiliarity(updated.TimesCorrect, updated.TimesReviewed)
	updated.Status = determineStatus(updated.Familiarity, updated.IntervalDays, s.params)

	return &updated, nil
}
