package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/domain/srs"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db            *sql.DB
	progressStore store.WordProgressStore
	storyStore    store.StoryStore
	srsService    srs.Service
	logger        *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	db *sql.DB,
	progressStore store.WordProgressStore,
	storyStore store.StoryStore,
	srsService srs.Service,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if storyStore == nil {
		panic("storyStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:            db,
		progressStore: progressStore,
		storyStore:    storyStore,
		srsService:    srsService,
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// ListDue implements ReviewService.ListDue.
func (s *reviewServiceImpl) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*DueWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultDueLimit
	}
	if limit > MaxDueLimit {
		limit = MaxDueLimit
	}

	log.Debug("listing due words",
		slog.String("user_id", userID.String()),
		slog.Int("limit", limit))

	now := time.Now().UTC()
	rows, err := s.progressStore.ListDue(ctx, userID, now, limit)
	if err != nil {
		log.Error("failed to list due words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}

	due := make([]*DueWord, 0, len(rows))
	for _, row := range rows {
		item := &DueWord{
			Progress: row.Progress,
			Word:     row.Word,
		}
		item.Example = s.findExampleSentence(ctx, userID, row.Word)
		due = append(due, item)
	}

	return due, nil
}

// findExampleSentence looks for a sentence containing the word in one of
// the user's stories. A missing example is not an error; the review card
// simply renders without context.
func (s *reviewServiceImpl) findExampleSentence(
	ctx context.Context,
	userID uuid.UUID,
	word *domain.Word,
) *ExampleSentence {
	story, err := s.storyStore.FindByTargetWord(ctx, userID, word.ID)
	if err != nil {
		return nil
	}

	for _, sentence := range story.Sentences {
		if strings.Contains(sentence.Hindi, word.Hindi) {
			return &ExampleSentence{
				Hindi:     sentence.Hindi,
				Romanized: sentence.Romanized,
				English:   sentence.English,
			}
		}
	}
	if len(story.Sentences) > 0 {
		first := story.Sentences[0]
		return &ExampleSentence{
			Hindi:     first.Hindi,
			Romanized: first.Romanized,
			English:   first.English,
		}
	}
	return nil
}

// SubmitReview implements ReviewService.SubmitReview.
// It grades one review and reschedules the word inside a transaction.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	progressID uuid.UUID,
	submission ReviewSubmission,
) (*domain.UserWordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.String("user_id", userID.String()),
		slog.String("progress_id", progressID.String()),
		slog.Int("quality", submission.Quality))

	if submission.Quality < 0 || submission.Quality > 5 {
		log.Warn("invalid review quality",
			slog.String("user_id", userID.String()),
			slog.String("progress_id", progressID.String()),
			slog.Int("quality", submission.Quality))
		return nil, ErrInvalidQuality
	}

	var updated *domain.UserWordProgress
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.progressStore.WithTx(tx)

		// The row lock serializes concurrent reviews of the same word
		progress, err := txStore.GetByIDForUpdate(ctx, progressID, userID)
		if err != nil {
			if errors.Is(err, store.ErrWordProgressNotFound) {
				log.Warn("progress row not found for review",
					slog.String("user_id", userID.String()),
					slog.String("progress_id", progressID.String()))
				return ErrProgressNotFound
			}
			return fmt.Errorf("failed to load progress: %w", err)
		}

		result, err := s.srsService.CalculateReview(progress, submission.Quality, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to calculate review: %w", err)
		}

		if err := txStore.Update(ctx, result); err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		updated = result
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return nil, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("progress_id", progressID.String()))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	log.Debug("review processed",
		slog.String("user_id", userID.String()),
		slog.String("progress_id", progressID.String()),
		slog.Int("quality", submission.Quality),
		slog.Float64("interval_days", updated.IntervalDays),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.String("status", string(updated.Status)))

	return updated, nil
}

// GetSummary implements ReviewService.GetSummary.
func (s *reviewServiceImpl) GetSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	due, err := s.progressStore.CountDue(ctx, userID, now)
	if err != nil {
		log.Error("failed to count due words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count due words: %w", err)
	}

	reviewedToday, err := s.progressStore.CountSeenSince(ctx, userID, todayStart)
	if err != nil {
		log.Error("failed to count reviews made today",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	nextReview, err := s.progressStore.NextReviewAfter(ctx, userID, now)
	if err != nil {
		log.Error("failed to find next review time",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find next review time: %w", err)
	}

	return &Summary{
		WordsDue:           due,
		WordsReviewedToday: reviewedToday,
		NextReviewAt:       nextReview,
	}, nil
}
