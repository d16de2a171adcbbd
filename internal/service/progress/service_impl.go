package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	progressStore        store.WordProgressStore
	grammarProgressStore store.GrammarProgressStore
	storyStore           store.StoryStore
	attemptStore         store.ExerciseAttemptStore
	sessionStore         store.SessionStore
	logger               *slog.Logger
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(
	progressStore store.WordProgressStore,
	grammarProgressStore store.GrammarProgressStore,
	storyStore store.StoryStore,
	attemptStore store.ExerciseAttemptStore,
	sessionStore store.SessionStore,
	logger *slog.Logger,
) ProgressService {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if grammarProgressStore == nil {
		panic("grammarProgressStore cannot be nil")
	}
	if storyStore == nil {
		panic("storyStore cannot be nil")
	}
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		progressStore:        progressStore,
		grammarProgressStore: grammarProgressStore,
		storyStore:           storyStore,
		attemptStore:         attemptStore,
		sessionStore:         sessionStore,
		logger:               logger.With(slog.String("component", "progress_service")),
	}
}

// knownStatuses are the statuses counted as "known" vocabulary.
var knownStatuses = []domain.WordStatus{
	domain.WordStatusKnown,
	domain.WordStatusMastered,
}

// GetStats implements ProgressService.GetStats.
func (s *progressServiceImpl) GetStats(
	ctx context.Context,
	userID uuid.UUID,
) (*Stats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	wordsKnown, err := s.progressStore.CountByStatuses(ctx, userID, knownStatuses)
	if err != nil {
		log.Error("failed to count known words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count known words: %w", err)
	}

	now := time.Now().UTC()
	reviewsDue, err := s.progressStore.CountDue(ctx, userID, now)
	if err != nil {
		log.Error("failed to count due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count due reviews: %w", err)
	}

	streak, err := s.currentStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &Stats{
		WordsKnown: wordsKnown,
		Level:      domain.DashboardLevelForKnownWords(wordsKnown),
		StreakDays: streak,
		ReviewsDue: reviewsDue,
	}, nil
}

// GetReport implements ProgressService.GetReport.
func (s *progressServiceImpl) GetReport(
	ctx context.Context,
	userID uuid.UUID,
) (*Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	wordsKnown, err := s.progressStore.CountByStatuses(ctx, userID, knownStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to count known words: %w", err)
	}

	wordsLearning, err := s.progressStore.CountByStatuses(
		ctx, userID, []domain.WordStatus{domain.WordStatusLearning})
	if err != nil {
		return nil, fmt.Errorf("failed to count learning words: %w", err)
	}

	grammarLearned, err := s.grammarProgressStore.CountByStatus(
		ctx, userID, domain.GrammarStatusLearned)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned grammar: %w", err)
	}

	storiesCompleted, err := s.storyStore.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed stories: %w", err)
	}

	exercisesCompleted, err := s.attemptStore.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed exercises: %w", err)
	}

	streak, err := s.currentStreak(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	log.Debug("assembled progress report",
		slog.String("user_id", userID.String()),
		slog.Int("words_known", wordsKnown),
		slog.Int("streak", streak))

	return &Report{
		WordsKnown:         wordsKnown,
		WordsLearning:      wordsLearning,
		GrammarLearned:     grammarLearned,
		CurrentLevel:       domain.DashboardLevelForKnownWords(wordsKnown),
		CurrentStreak:      streak,
		StoriesCompleted:   storiesCompleted,
		ExercisesCompleted: exercisesCompleted,
	}, nil
}

// currentStreak loads the user's ended-session dates and folds them into
// the streak count.
func (s *progressServiceImpl) currentStreak(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (int, error) {
	dates, err := s.sessionStore.ListEndedDates(ctx, userID)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Error("failed to list session dates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to list session dates: %w", err)
	}
	return CalculateStreak(dates, now), nil
}

// ListWordProgress implements ProgressService.ListWordProgress.
func (s *progressServiceImpl) ListWordProgress(
	ctx context.Context,
	userID uuid.UUID,
	statuses []domain.WordStatus,
) ([]*store.ProgressWithWord, error) {
	rows, err := s.progressStore.ListByUser(ctx, userID, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list word progress: %w", err)
	}
	return rows, nil
}

// StartSession implements ProgressService.StartSession.
func (s *progressServiceImpl) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	sessionType domain.SessionType,
	storyID *uuid.UUID,
) (*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !sessionType.Valid() {
		return nil, ErrInvalidSessionType
	}

	session, err := domain.NewLearningSession(userID, sessionType)
	if err != nil {
		return nil, err
	}
	session.StoryID = storyID

	if err := s.sessionStore.Create(ctx, session); err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug("session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("type", string(sessionType)))

	return session, nil
}

// EndSession implements ProgressService.EndSession.
func (s *progressServiceImpl) EndSession(
	ctx context.Context,
	userID uuid.UUID,
	sessionID uuid.UUID,
	update SessionUpdate,
) (*domain.LearningSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Ended() {
		return nil, ErrSessionAlreadyEnded
	}

	now := time.Now().UTC()
	session.EndedAt = &now
	session.WordsReviewed = update.WordsReviewed
	session.WordsCorrect = update.WordsCorrect

	if err := s.sessionStore.Update(ctx, session); err != nil {
		log.Error("failed to end session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	log.Debug("session ended",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()),
		slog.Int("words_reviewed", update.WordsReviewed))

	return session, nil
}
