package story

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/store"
)

// Planning bounds. A story teaches a handful of new words against a
// bounded slice of known vocabulary so the prompt stays within budget.
const (
	minNewWords     = 3
	maxNewWords     = 5
	newWordSurplus  = 2
	maxKnownWords   = 300
	maxGrammarFocus = 2
)

// PlanRequest carries the user's knobs for the next story.
type PlanRequest struct {
	Topic          string
	IncludeWordIDs []uuid.UUID
	FocusGrammarID *uuid.UUID
	LevelOverride  domain.CEFRLevel
}

// Plan is the resolved input set for one story generation: the level, the
// vocabulary context, the words to teach, and the grammar to practice.
type Plan struct {
	Level      domain.CEFRLevel
	Topic      string
	KnownWords []*domain.Word
	NewWords   []*domain.Word
	Grammar    []*domain.GrammarConcept
}

// Readiness reports whether enough fresh vocabulary exists at the user's
// level to generate a worthwhile story.
type Readiness struct {
	Ready             bool             `json:"ready"`
	Level             domain.CEFRLevel `json:"level"`
	NewWordsAvailable int              `json:"new_words_available"`
	SuggestedTopic    string           `json:"suggested_topic"`
}

// planner assembles story plans from the user's progress and the word
// inventory.
type planner struct {
	wordStore            store.WordStore
	progressStore        store.WordProgressStore
	grammarStore         store.GrammarStore
	grammarProgressStore store.GrammarProgressStore
}

// resolveLevel picks the story difficulty: an explicit override wins,
// otherwise the readiness thresholds over the known-word count decide.
func (p *planner) resolveLevel(
	ctx context.Context,
	userID uuid.UUID,
	override domain.CEFRLevel,
) (domain.CEFRLevel, error) {
	if override != "" {
		if !override.Valid() {
			return "", ErrInvalidLevel
		}
		return override, nil
	}

	known, err := p.progressStore.CountByStatuses(ctx, userID, []domain.WordStatus{
		domain.WordStatusKnown,
		domain.WordStatusMastered,
	})
	if err != nil {
		return "", fmt.Errorf("failed to count known words: %w", err)
	}
	return domain.StoryLevelForKnownWords(known), nil
}

// plan resolves a full story plan for the user.
func (p *planner) plan(
	ctx context.Context,
	userID uuid.UUID,
	req PlanRequest,
) (*Plan, error) {
	level, err := p.resolveLevel(ctx, userID, req.LevelOverride)
	if err != nil {
		return nil, err
	}

	knownWords, err := p.knownWords(ctx, userID)
	if err != nil {
		return nil, err
	}

	newWords, err := p.selectNewWords(ctx, userID, level, req.IncludeWordIDs)
	if err != nil {
		return nil, err
	}
	if len(newWords) < minNewWords {
		return nil, ErrNotEnoughNewWords
	}

	grammar, err := p.selectGrammar(ctx, userID, req.FocusGrammarID)
	if err != nil {
		return nil, err
	}

	topic := req.Topic
	if topic == "" {
		topic = defaultTopic
	}

	return &Plan{
		Level:      level,
		Topic:      topic,
		KnownWords: knownWords,
		NewWords:   newWords,
		Grammar:    grammar,
	}, nil
}

// knownWords loads up to maxKnownWords of the user's active vocabulary
// for prompt context.
func (p *planner) knownWords(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	rows, err := p.progressStore.ListByUser(ctx, userID, []domain.WordStatus{
		domain.WordStatusLearning,
		domain.WordStatusKnown,
		domain.WordStatusMastered,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list known words: %w", err)
	}

	words := make([]*domain.Word, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.Word)
		if len(words) == maxKnownWords {
			break
		}
	}
	return words, nil
}

// selectNewWords picks 3-5 words the story should teach. Explicitly
// requested words come first; the remainder are drawn pseudo-randomly from
// unseen words at the level, with a small surplus to absorb duplicates.
func (p *planner) selectNewWords(
	ctx context.Context,
	userID uuid.UUID,
	level domain.CEFRLevel,
	includeIDs []uuid.UUID,
) ([]*domain.Word, error) {
	var selected []*domain.Word
	seen := make(map[uuid.UUID]bool)

	if len(includeIDs) > 0 {
		included, err := p.wordStore.GetByIDs(ctx, includeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load requested words: %w", err)
		}
		for _, word := range included {
			if !seen[word.ID] {
				seen[word.ID] = true
				selected = append(selected, word)
			}
		}
	}

	needed := minNewWords - len(selected)
	if needed > 0 {
		fresh, err := p.wordStore.ListUnseenAtLevel(ctx, userID, level, needed+newWordSurplus)
		if err != nil {
			return nil, fmt.Errorf("failed to list unseen words: %w", err)
		}
		for _, word := range fresh {
			if !seen[word.ID] {
				seen[word.ID] = true
				selected = append(selected, word)
			}
		}
	}

	if len(selected) > maxNewWords {
		selected = selected[:maxNewWords]
	}
	return selected, nil
}

// selectGrammar picks the grammar to practice: the focused concept when
// requested, otherwise up to two concepts the user is working on, by
// curriculum order.
func (p *planner) selectGrammar(
	ctx context.Context,
	userID uuid.UUID,
	focusID *uuid.UUID,
) ([]*domain.GrammarConcept, error) {
	if focusID != nil {
		concept, err := p.grammarStore.GetByID(ctx, *focusID)
		if err == nil {
			return []*domain.GrammarConcept{concept}, nil
		}
		if !errors.Is(err, store.ErrGrammarConceptNotFound) {
			return nil, fmt.Errorf("failed to load focus grammar: %w", err)
		}
		// Missing focus concept falls through to the default selection
	}

	progressRows, err := p.grammarProgressStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar progress: %w", err)
	}

	active := make(map[uuid.UUID]bool)
	for _, progress := range progressRows {
		if progress.Status == domain.GrammarStatusLearning ||
			progress.Status == domain.GrammarStatusAvailable {
			active[progress.ConceptID] = true
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	concepts, err := p.grammarStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar concepts: %w", err)
	}

	var selected []*domain.GrammarConcept
	for _, concept := range concepts {
		if active[concept.ID] {
			selected = append(selected, concept)
			if len(selected) == maxGrammarFocus {
				break
			}
		}
	}
	return selected, nil
}

// readiness checks whether the user has enough fresh vocabulary for a
// story at their current level.
func (p *planner) readiness(ctx context.Context, userID uuid.UUID) (*Readiness, error) {
	level, err := p.resolveLevel(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	available, err := p.wordStore.CountUnseenAtLevel(ctx, userID, level)
	if err != nil {
		return nil, fmt.Errorf("failed to count unseen words: %w", err)
	}
	if available > maxNewWords {
		available = maxNewWords
	}

	return &Readiness{
		Ready:             available >= minNewWords,
		Level:             level,
		NewWordsAvailable: available,
		SuggestedTopic:    defaultTopic,
	}, nil
}
