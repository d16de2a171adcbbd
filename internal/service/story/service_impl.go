package story

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/generation"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// Verify interface compliance at compile time
var _ StoryService = (*storyServiceImpl)(nil)

// storyServiceImpl implements the StoryService interface.
type storyServiceImpl struct {
	db            *sql.DB
	planner       *planner
	storyStore    store.StoryStore
	exerciseStore store.ExerciseStore
	progressStore store.WordProgressStore
	generator     generation.Generator
	logger        *slog.Logger
}

// NewStoryService creates a new StoryService implementation.
func NewStoryService(
	db *sql.DB,
	wordStore store.WordStore,
	progressStore store.WordProgressStore,
	grammarStore store.GrammarStore,
	grammarProgressStore store.GrammarProgressStore,
	storyStore store.StoryStore,
	exerciseStore store.ExerciseStore,
	generator generation.Generator,
	logger *slog.Logger,
) StoryService {
	if db == nil {
		panic("db cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if grammarStore == nil {
		panic("grammarStore cannot be nil")
	}
	if grammarProgressStore == nil {
		panic("grammarProgressStore cannot be nil")
	}
	if storyStore == nil {
		panic("storyStore cannot be nil")
	}
	if exerciseStore == nil {
		panic("exerciseStore cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &storyServiceImpl{
		db: db,
		planner: &planner{
			wordStore:            wordStore,
			progressStore:        progressStore,
			grammarStore:         grammarStore,
			grammarProgressStore: grammarProgressStore,
		},
		storyStore:    storyStore,
		exerciseStore: exerciseStore,
		progressStore: progressStore,
		generator:     generator,
		logger:        logger.With(slog.String("component", "story_service")),
	}
}

// CheckReadiness implements StoryService.CheckReadiness.
func (s *storyServiceImpl) CheckReadiness(
	ctx context.Context,
	userID uuid.UUID,
) (*Readiness, error) {
	return s.planner.readiness(ctx, userID)
}

// Generate implements StoryService.Generate.
func (s *storyServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateRequest,
) (*domain.Story, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	plan, err := s.planner.plan(ctx, userID, PlanRequest{
		Topic:          req.Topic,
		IncludeWordIDs: req.IncludeWordIDs,
		FocusGrammarID: req.FocusGrammarID,
		LevelOverride:  req.LevelOverride,
	})
	if err != nil {
		if errors.Is(err, ErrNotEnoughNewWords) || errors.Is(err, ErrInvalidLevel) {
			return nil, err
		}
		log.Error("failed to plan story",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to plan story: %w", err)
	}

	log.Info("generating story",
		slog.String("user_id", userID.String()),
		slog.String("level", string(plan.Level)),
		slog.String("topic", plan.Topic),
		slog.Int("new_words", len(plan.NewWords)))

	draft, err := s.generator.GenerateStory(ctx, buildStoryPrompt(plan))
	if err != nil {
		log.Error("story generation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("story generation failed: %w", err)
	}

	story, exercises, err := s.assembleStory(userID, plan, draft)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.storyStore.WithTx(tx).Create(ctx, story); err != nil {
			return fmt.Errorf("failed to create story: %w", err)
		}
		if len(exercises) > 0 {
			if err := s.exerciseStore.WithTx(tx).CreateMultiple(ctx, exercises); err != nil {
				return fmt.Errorf("failed to create exercises: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to persist story",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to persist story: %w", err)
	}

	log.Info("story generated",
		slog.String("story_id", story.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("sentences", len(story.Sentences)),
		slog.Int("exercises", len(exercises)))

	return story, nil
}

// buildStoryPrompt converts a plan into the generator's prompt inputs.
func buildStoryPrompt(plan *Plan) generation.StoryPrompt {
	prompt := generation.StoryPrompt{
		Level: plan.Level,
		Topic: plan.Topic,
	}
	for _, word := range plan.KnownWords {
		prompt.KnownWords = append(prompt.KnownWords, promptWord(word))
	}
	for _, word := range plan.NewWords {
		prompt.NewWords = append(prompt.NewWords, promptWord(word))
	}
	for _, concept := range plan.Grammar {
		prompt.Grammar = append(prompt.Grammar, generation.PromptGrammar{
			Name:        concept.Name,
			Description: concept.Description,
		})
	}
	return prompt
}

func promptWord(word *domain.Word) generation.PromptWord {
	return generation.PromptWord{
		ID:        word.ID.String(),
		Hindi:     word.Hindi,
		Romanized: word.Romanized,
		English:   word.English,
	}
}

// assembleStory maps a generation draft onto domain entities. Exercise
// drafts with unknown types are dropped rather than failing the story.
func (s *storyServiceImpl) assembleStory(
	userID uuid.UUID,
	plan *Plan,
	draft *generation.StoryDraft,
) (*domain.Story, []*domain.Exercise, error) {
	story, err := domain.NewStory(userID, draft.Title, draft.ContentHindi, plan.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("generated story is invalid: %w", err)
	}

	story.ContentRomanized = draft.ContentRomanized
	story.ContentEnglish = draft.ContentEnglish
	story.WordCount = draft.WordCount
	story.Topic = plan.Topic
	story.GenerationPrompt = draft.Prompt
	story.ModelName = draft.ModelName
	story.RawResponse = draft.RawResponse

	sentences := append([]generation.SentenceDraft(nil), draft.Sentences...)
	sort.SliceStable(sentences, func(i, j int) bool {
		return sentences[i].Index < sentences[j].Index
	})
	for _, sentence := range sentences {
		story.Sentences = append(story.Sentences, domain.StorySentence{
			Hindi:     sentence.Hindi,
			Romanized: sentence.Romanized,
			English:   sentence.English,
			Words:     sentence.Words,
		})
	}

	for _, word := range plan.NewWords {
		story.NewWordIDs = append(story.NewWordIDs, word.ID)
	}
	for _, word := range plan.KnownWords {
		story.KnownWordIDs = append(story.KnownWordIDs, word.ID)
	}
	for _, concept := range plan.Grammar {
		story.GrammarIDs = append(story.GrammarIDs, concept.ID)
	}

	var exercises []*domain.Exercise
	for i, exerciseDraft := range draft.Exercises {
		exType := domain.ExerciseType(exerciseDraft.Type)
		if !exType.Valid() {
			s.logger.Warn("dropping exercise with unknown type",
				slog.String("story_id", story.ID.String()),
				slog.String("type", exerciseDraft.Type))
			continue
		}
		exercise, err := domain.NewExercise(
			story.ID, exType, exerciseDraft.Prompt, exerciseDraft.CorrectAnswer, i)
		if err != nil {
			s.logger.Warn("dropping invalid exercise",
				slog.String("story_id", story.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		exercise.Options = exerciseDraft.Options
		exercise.Explanation = exerciseDraft.Explanation
		exercises = append(exercises, exercise)
	}

	return story, exercises, nil
}

// Get implements StoryService.Get.
func (s *storyServiceImpl) Get(
	ctx context.Context,
	userID, storyID uuid.UUID,
) (*domain.Story, error) {
	return s.ownedStory(ctx, userID, storyID)
}

// ownedStory loads a story and verifies ownership. A story belonging to
// another user reads as not found so the ID space cannot be enumerated.
func (s *storyServiceImpl) ownedStory(
	ctx context.Context,
	userID, storyID uuid.UUID,
) (*domain.Story, error) {
	story, err := s.storyStore.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, store.ErrStoryNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if story.UserID != userID {
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// List implements StoryService.List.
func (s *storyServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	req ListRequest,
) ([]*domain.Story, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	stories, err := s.storyStore.ListByUser(ctx, userID, req.Completed, limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// ListExercises implements StoryService.ListExercises.
func (s *storyServiceImpl) ListExercises(
	ctx context.Context,
	userID, storyID uuid.UUID,
) ([]*domain.Exercise, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return nil, err
	}

	exercises, err := s.exerciseStore.ListByStory(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

// Complete implements StoryService.Complete.
func (s *storyServiceImpl) Complete(
	ctx context.Context,
	userID, storyID uuid.UUID,
	rating *int,
) (*domain.Story, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	story.CompletedAt = &now
	if rating != nil {
		story.Rating = rating
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.storyStore.WithTx(tx).Update(ctx, story); err != nil {
			return fmt.Errorf("failed to update story: %w", err)
		}

		txProgress := s.progressStore.WithTx(tx)
		for _, wordID := range story.NewWordIDs {
			if err := recordExposure(ctx, txProgress, userID, wordID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to complete story",
			slog.String("error", err.Error()),
			slog.String("story_id", storyID.String()))
		return nil, fmt.Errorf("failed to complete story: %w", err)
	}

	log.Info("story completed",
		slog.String("story_id", storyID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("new_words", len(story.NewWordIDs)))

	return story, nil
}

// recordExposure registers that a story showed the user a word: the seen
// counter increments and NEW rows move to LEARNING. Words without a
// progress row get one with LEARNING status.
func recordExposure(
	ctx context.Context,
	progressStore store.WordProgressStore,
	userID, wordID uuid.UUID,
	now time.Time,
) error {
	progress, err := progressStore.Get(ctx, userID, wordID)
	switch {
	case err == nil:
		progress.TimesSeen++
		progress.LastSeenAt = &now
		if progress.Status == domain.WordStatusNew {
			progress.Status = domain.WordStatusLearning
		}
		if err := progressStore.Update(ctx, progress); err != nil {
			return fmt.Errorf("failed to update word exposure: %w", err)
		}
		return nil

	case errors.Is(err, store.ErrWordProgressNotFound):
		progress, err = domain.NewUserWordProgress(userID, wordID, domain.WordSourceStory)
		if err != nil {
			return err
		}
		progress.Status = domain.WordStatusLearning
		progress.TimesSeen = 1
		progress.LastSeenAt = &now
		if err := progressStore.Create(ctx, progress); err != nil {
			return fmt.Errorf("failed to create word exposure: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("failed to load word progress: %w", err)
	}
}
