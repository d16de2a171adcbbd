package story

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/store"
)

// The fakes embed the store interfaces so only the methods the planner
// touches need implementations; anything else panics loudly.

type fakeWordStore struct {
	store.WordStore
	byID   map[uuid.UUID]*domain.Word
	unseen []*domain.Word
}

func (f *fakeWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	var out []*domain.Word
	for _, id := range ids {
		if word, ok := f.byID[id]; ok {
			out = append(out, word)
		}
	}
	return out, nil
}

func (f *fakeWordStore) ListUnseenAtLevel(
	ctx context.Context,
	userID uuid.UUID,
	level domain.CEFRLevel,
	limit int,
) ([]*domain.Word, error) {
	if limit > len(f.unseen) {
		limit = len(f.unseen)
	}
	return f.unseen[:limit], nil
}

func (f *fakeWordStore) CountUnseenAtLevel(
	ctx context.Context,
	userID uuid.UUID,
	level domain.CEFRLevel,
) (int, error) {
	return len(f.unseen), nil
}

type fakeProgressStore struct {
	store.WordProgressStore
	knownCount int
	active     []*store.ProgressWithWord
}

func (f *fakeProgressStore) CountByStatuses(
	ctx context.Context,
	userID uuid.UUID,
	statuses []domain.WordStatus,
) (int, error) {
	return f.knownCount, nil
}

func (f *fakeProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	statuses []domain.WordStatus,
) ([]*store.ProgressWithWord, error) {
	return f.active, nil
}

type fakeGrammarStore struct {
	store.GrammarStore
	concepts []*domain.GrammarConcept
}

func (f *fakeGrammarStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GrammarConcept, error) {
	for _, concept := range f.concepts {
		if concept.ID == id {
			return concept, nil
		}
	}
	return nil, store.ErrGrammarConceptNotFound
}

func (f *fakeGrammarStore) List(ctx context.Context) ([]*domain.GrammarConcept, error) {
	return f.concepts, nil
}

type fakeGrammarProgressStore struct {
	store.GrammarProgressStore
	rows []*domain.UserGrammarProgress
}

func (f *fakeGrammarProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.UserGrammarProgress, error) {
	return f.rows, nil
}

func newTestWord(t *testing.T, hindi string) *domain.Word {
	t.Helper()
	word, err := domain.NewWord(hindi, hindi+"-rom", hindi+"-en", domain.PartOfSpeechNoun, domain.LevelA1)
	require.NoError(t, err)
	return word
}

func newTestConcept(t *testing.T, name string, sortOrder int) *domain.GrammarConcept {
	t.Helper()
	concept, err := domain.NewGrammarConcept(name, name, "practice "+name, domain.LevelA1, sortOrder)
	require.NoError(t, err)
	return concept
}

func newTestPlanner(words *fakeWordStore, progress *fakeProgressStore,
	grammar *fakeGrammarStore, grammarProgress *fakeGrammarProgressStore) *planner {
	if words == nil {
		words = &fakeWordStore{}
	}
	if progress == nil {
		progress = &fakeProgressStore{}
	}
	if grammar == nil {
		grammar = &fakeGrammarStore{}
	}
	if grammarProgress == nil {
		grammarProgress = &fakeGrammarProgressStore{}
	}
	return &planner{
		wordStore:            words,
		progressStore:        progress,
		grammarStore:         grammar,
		grammarProgressStore: grammarProgress,
	}
}

func TestResolveLevelFromKnownWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		known int
		want  domain.CEFRLevel
	}{
		{0, domain.LevelA1},
		{49, domain.LevelA1},
		{50, domain.LevelA2},
		{149, domain.LevelA2},
		{150, domain.LevelB1},
		{399, domain.LevelB1},
		{400, domain.LevelB2},
	}

	for _, tt := range tests {
		p := newTestPlanner(nil, &fakeProgressStore{knownCount: tt.known}, nil, nil)
		level, err := p.resolveLevel(context.Background(), uuid.New(), "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, level, "known=%d", tt.known)
	}
}

func TestResolveLevelOverride(t *testing.T) {
	t.Parallel()

	p := newTestPlanner(nil, &fakeProgressStore{knownCount: 500}, nil, nil)

	level, err := p.resolveLevel(context.Background(), uuid.New(), domain.LevelA1)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelA1, level)

	_, err = p.resolveLevel(context.Background(), uuid.New(), domain.CEFRLevel("C2"))
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestSelectNewWordsDeduplicatesAndClamps(t *testing.T) {
	t.Parallel()

	included := newTestWord(t, "paani")
	unseen := []*domain.Word{
		included, // overlaps with the explicit request
		newTestWord(t, "ghar"),
		newTestWord(t, "kitaab"),
		newTestWord(t, "doodh"),
		newTestWord(t, "billi"),
		newTestWord(t, "kutta"),
	}
	words := &fakeWordStore{
		byID:   map[uuid.UUID]*domain.Word{included.ID: included},
		unseen: unseen,
	}
	p := newTestPlanner(words, nil, nil, nil)

	selected, err := p.selectNewWords(
		context.Background(), uuid.New(), domain.LevelA1, []uuid.UUID{included.ID})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(selected), maxNewWords)
	seen := make(map[uuid.UUID]bool)
	for _, word := range selected {
		assert.False(t, seen[word.ID], "duplicate word %s", word.Hindi)
		seen[word.ID] = true
	}
	assert.Equal(t, included.ID, selected[0].ID, "explicit words come first")
}

func TestPlanFailsWithoutEnoughNewWords(t *testing.T) {
	t.Parallel()

	words := &fakeWordStore{unseen: []*domain.Word{newTestWord(t, "ghar")}}
	p := newTestPlanner(words, nil, nil, nil)

	_, err := p.plan(context.Background(), uuid.New(), PlanRequest{})
	assert.ErrorIs(t, err, ErrNotEnoughNewWords)
}

func TestPlanDefaultsTopic(t *testing.T) {
	t.Parallel()

	words := &fakeWordStore{unseen: []*domain.Word{
		newTestWord(t, "ghar"),
		newTestWord(t, "kitaab"),
		newTestWord(t, "doodh"),
	}}
	p := newTestPlanner(words, nil, nil, nil)

	plan, err := p.plan(context.Background(), uuid.New(), PlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, defaultTopic, plan.Topic)
	assert.Equal(t, domain.LevelA1, plan.Level)
}

func TestSelectGrammarPrefersFocus(t *testing.T) {
	t.Parallel()

	focus := newTestConcept(t, "postpositions", 3)
	grammar := &fakeGrammarStore{concepts: []*domain.GrammarConcept{focus}}
	p := newTestPlanner(nil, nil, grammar, nil)

	selected, err := p.selectGrammar(context.Background(), uuid.New(), &focus.ID)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, focus.ID, selected[0].ID)
}

func TestSelectGrammarTakesActiveConceptsInOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	first := newTestConcept(t, "gender", 1)
	second := newTestConcept(t, "plurals", 2)
	third := newTestConcept(t, "postpositions", 3)

	grammar := &fakeGrammarStore{concepts: []*domain.GrammarConcept{first, second, third}}
	progressRows := make([]*domain.UserGrammarProgress, 0, 3)
	for _, concept := range []*domain.GrammarConcept{first, second, third} {
		row, err := domain.NewUserGrammarProgress(userID, concept.ID, domain.GrammarStatusLearning)
		require.NoError(t, err)
		progressRows = append(progressRows, row)
	}
	p := newTestPlanner(nil, nil, grammar, &fakeGrammarProgressStore{rows: progressRows})

	selected, err := p.selectGrammar(context.Background(), userID, nil)
	require.NoError(t, err)
	require.Len(t, selected, maxGrammarFocus)
	assert.Equal(t, first.ID, selected[0].ID)
	assert.Equal(t, second.ID, selected[1].ID)
}

func TestSelectGrammarEmptyWithoutActiveConcepts(t *testing.T) {
	t.Parallel()

	grammar := &fakeGrammarStore{concepts: []*domain.GrammarConcept{newTestConcept(t, "gender", 1)}}
	p := newTestPlanner(nil, nil, grammar, nil)

	selected, err := p.selectGrammar(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	words := &fakeWordStore{unseen: []*domain.Word{
		newTestWord(t, "ghar"),
		newTestWord(t, "kitaab"),
		newTestWord(t, "doodh"),
	}}
	p := newTestPlanner(words, nil, nil, nil)

	readiness, err := p.readiness(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
	assert.Equal(t, 3, readiness.NewWordsAvailable)
	assert.Equal(t, defaultTopic, readiness.SuggestedTopic)

	p = newTestPlanner(&fakeWordStore{}, nil, nil, nil)
	readiness, err = p.readiness(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, readiness.Ready)
}
