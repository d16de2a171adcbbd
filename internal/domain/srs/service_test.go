package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
)

func newTestProgress(t *testing.T) *domain.UserWordProgress {
	t.Helper()

	progress, err := domain.NewUserWordProgress(uuid.New(), uuid.New(), domain.WordSourceStory)
	if err != nil {
		t.Fatalf("failed to create progress: %v", err)
	}
	return progress
}

func TestCalculateReviewValidation(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	if _, err := service.CalculateReview(nil, 4, now); err != ErrNilProgress {
		t.Errorf("expected ErrNilProgress, got %v", err)
	}

	progress := newTestProgress(t)
	if _, err := service.CalculateReview(progress, -1, now); err != ErrInvalidQuality {
		t.Errorf("expected ErrInvalidQuality for -1, got %v", err)
	}
	if _, err := service.CalculateReview(progress, 6, now); err != ErrInvalidQuality {
		t.Errorf("expected ErrInvalidQuality for 6, got %v", err)
	}
}

func TestCalculateReviewFailedRecall(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	progress := newTestProgress(t)
	progress.IntervalDays = 30
	progress.EaseFactor = 2.1
	progress.TimesReviewed = 10
	progress.TimesCorrect = 9

	updated, err := service.CalculateReview(progress, 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.IntervalDays != 1 {
		t.Errorf("expected interval reset to 1, got %f", updated.IntervalDays)
	}
	if updated.EaseFactor != 2.1 {
		t.Errorf("expected ease factor unchanged, got %f", updated.EaseFactor)
	}
	if updated.TimesReviewed != 11 {
		t.Errorf("expected times reviewed 11, got %d", updated.TimesReviewed)
	}
	if updated.TimesCorrect != 9 {
		t.Errorf("expected times correct unchanged at 9, got %d", updated.TimesCorrect)
	}

	// Original must be untouched
	if progress.IntervalDays != 30 || progress.TimesReviewed != 10 {
		t.Error("input progress was mutated")
	}
}

func TestCalculateReviewSuccessfulRecall(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	progress := newTestProgress(t)
	progress.IntervalDays = 6
	progress.EaseFactor = 2.5
	progress.TimesReviewed = 2
	progress.TimesCorrect = 2

	updated, err := service.CalculateReview(progress, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(updated.EaseFactor-2.6) > 1e-9 {
		t.Errorf("expected ease factor 2.6, got %f", updated.EaseFactor)
	}
	if updated.IntervalDays != 16 { // round(6 * 2.6)
		t.Errorf("expected interval 16, got %f", updated.IntervalDays)
	}
	if updated.TimesReviewed != 3 || updated.TimesCorrect != 3 {
		t.Errorf("expected counters 3/3, got %d/%d", updated.TimesReviewed, updated.TimesCorrect)
	}
	if updated.Familiarity != 1 {
		t.Errorf("expected familiarity 1, got %f", updated.Familiarity)
	}

	if updated.LastSeenAt == nil || !updated.LastSeenAt.Equal(now) {
		t.Error("expected last seen to be the review time")
	}
	wantNext := now.Add(16 * 24 * time.Hour)
	if updated.NextReviewAt == nil || !updated.NextReviewAt.Equal(wantNext) {
		t.Errorf("expected next review at %v, got %v", wantNext, updated.NextReviewAt)
	}
}

func TestCalculateReviewIntervalLadder(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	// Fresh word: interval 1 steps to 6 on a passing review
	progress := newTestProgress(t)
	first, err := service.CalculateReview(progress, 4, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.IntervalDays != 6 {
		t.Errorf("expected second interval 6, got %f", first.IntervalDays)
	}

	second, err := service.CalculateReview(first, 4, now.Add(6*24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.IntervalDays <= 6 {
		t.Errorf("expected interval to grow past 6, got %f", second.IntervalDays)
	}
}

func TestCalculateReviewMasteryRequiresMatureInterval(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	progress := newTestProgress(t)
	progress.IntervalDays = 1
	progress.TimesReviewed = 9
	progress.TimesCorrect = 9

	updated, err := service.CalculateReview(progress, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Perfect accuracy but interval only reaches 6
	if updated.Status != domain.WordStatusKnown {
		t.Errorf("expected KNOWN before interval matures, got %s", updated.Status)
	}

	progress.IntervalDays = 10
	updated, err = service.CalculateReview(progress, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// round(10 * 2.6) = 26 days, past the mastery bar
	if updated.Status != domain.WordStatusMastered {
		t.Errorf("expected MASTERED with mature interval, got %s", updated.Status)
	}
}
