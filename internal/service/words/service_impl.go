package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ WordService = (*wordServiceImpl)(nil)

// wordServiceImpl implements the WordService interface.
type wordServiceImpl struct {
	wordStore     store.WordStore
	progressStore store.WordProgressStore
	logger        *slog.Logger
}

// NewWordService creates a new WordService implementation.
func NewWordService(
	wordStore store.WordStore,
	progressStore store.WordProgressStore,
	logger *slog.Logger,
) WordService {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &wordServiceImpl{
		wordStore:     wordStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "word_service")),
	}
}

// List implements WordService.List.
func (s *wordServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	req ListRequest,
) ([]*WordWithProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter := store.WordFilter{
		CEFRLevel: req.Level,
		Search:    strings.TrimSpace(req.Search),
		Limit:     clampLimit(req.Limit, DefaultListLimit, MaxListLimit),
		Offset:    req.Offset,
	}

	wordList, err := s.wordStore.List(ctx, filter)
	if err != nil {
		log.Error("failed to list words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	wordIDs := make([]uuid.UUID, len(wordList))
	for i, word := range wordList {
		wordIDs[i] = word.ID
	}

	progressRows, err := s.progressStore.ListByWordIDs(ctx, userID, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load word progress: %w", err)
	}

	progressByWord := make(map[uuid.UUID]*domain.UserWordProgress, len(progressRows))
	for _, progress := range progressRows {
		progressByWord[progress.WordID] = progress
	}

	// The status filter runs after the merge so untouched words can match NEW
	out := make([]*WordWithProgress, 0, len(wordList))
	for _, word := range wordList {
		progress := progressByWord[word.ID]
		if req.Status != "" {
			status := domain.WordStatusNew
			if progress != nil {
				status = progress.Status
			}
			if status != req.Status {
				continue
			}
		}
		out = append(out, &WordWithProgress{Word: word, Progress: progress})
	}

	return out, nil
}

// Search implements WordService.Search.
func (s *wordServiceImpl) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]*domain.Word, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	wordList, err := s.wordStore.List(ctx, store.WordFilter{
		Search: query,
		Limit:  clampLimit(limit, DefaultSearchLimit, MaxSearchLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %w", err)
	}
	return wordList, nil
}

// Get implements WordService.Get.
func (s *wordServiceImpl) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*WordWithProgress, error) {
	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID, wordID)
	if err != nil {
		if !errors.Is(err, store.ErrWordProgressNotFound) {
			return nil, fmt.Errorf("failed to get word progress: %w", err)
		}
		progress = nil
	}

	return &WordWithProgress{Word: word, Progress: progress}, nil
}

// Create implements WordService.Create.
func (s *wordServiceImpl) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return err
	}

	if err := s.wordStore.Create(ctx, word); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrWordExists
		}
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("hindi", word.Hindi))
		return fmt.Errorf("failed to create word: %w", err)
	}

	log.Info("word created",
		slog.String("word_id", word.ID.String()),
		slog.String("hindi", word.Hindi))
	return nil
}

// MarkKnown implements WordService.MarkKnown.
func (s *wordServiceImpl) MarkKnown(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.UserWordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.wordStore.GetByID(ctx, wordID); err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID, wordID)
	switch {
	case err == nil:
		progress.Status = domain.WordStatusKnown
		progress.Familiarity = 0.8
		if err := s.progressStore.Update(ctx, progress); err != nil {
			return nil, fmt.Errorf("failed to update word progress: %w", err)
		}

	case errors.Is(err, store.ErrWordProgressNotFound):
		progress, err = domain.NewUserWordProgress(userID, wordID, domain.WordSourceManual)
		if err != nil {
			return nil, err
		}
		progress.Status = domain.WordStatusKnown
		progress.Familiarity = 0.8
		if err := s.progressStore.Create(ctx, progress); err != nil {
			return nil, fmt.Errorf("failed to create word progress: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}

	log.Debug("word marked known",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))

	return progress, nil
}
