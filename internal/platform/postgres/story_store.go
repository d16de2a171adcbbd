package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// PostgresStoryStore implements the store.StoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStoryStore creates a new PostgreSQL implementation of the StoryStore interface.
func NewPostgresStoryStore(db store.DBTX, log *slog.Logger) *PostgresStoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresStoryStore{
		db:     db,
		logger: log.With(slog.String("component", "story_store")),
	}
}

// Ensure PostgresStoryStore implements store.StoryStore interface
var _ store.StoryStore = (*PostgresStoryStore)(nil)

const storyColumns = `id, user_id, title, content, content_romanized, content_english,
	word_count, sentences, cefr_level, topic, new_word_ids, known_word_ids,
	grammar_concept_ids, rating, completed_at, created_at,
	generation_prompt, model_name, raw_response`

// scanStory reads one story row. Sentences and word ID lists are stored as JSONB.
func scanStory(scan func(dest ...any) error) (*domain.Story, error) {
	var story domain.Story
	var sentencesJSON, newWordsJSON, knownWordsJSON, grammarJSON []byte
	var topic, contentRomanized, contentEnglish sql.NullString
	var generationPrompt, modelName, rawResponse sql.NullString
	var rating sql.NullInt64
	var completedAt sql.NullTime

	err := scan(
		&story.ID,
		&story.UserID,
		&story.Title,
		&story.Content,
		&contentRomanized,
		&contentEnglish,
		&story.WordCount,
		&sentencesJSON,
		&story.CEFRLevel,
		&topic,
		&newWordsJSON,
		&knownWordsJSON,
		&grammarJSON,
		&rating,
		&completedAt,
		&story.CreatedAt,
		&generationPrompt,
		&modelName,
		&rawResponse,
	)
	if err != nil {
		return nil, err
	}

	story.Topic = topic.String
	story.ContentRomanized = contentRomanized.String
	story.ContentEnglish = contentEnglish.String
	story.GenerationPrompt = generationPrompt.String
	story.ModelName = modelName.String
	story.RawResponse = rawResponse.String
	if rating.Valid {
		r := int(rating.Int64)
		story.Rating = &r
	}
	if completedAt.Valid {
		story.CompletedAt = &completedAt.Time
	}

	for _, pair := range []struct {
		raw  []byte
		dest any
	}{
		{sentencesJSON, &story.Sentences},
		{newWordsJSON, &story.NewWordIDs},
		{knownWordsJSON, &story.KnownWordIDs},
		{grammarJSON, &story.GrammarIDs},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story field: %w", err)
		}
	}

	return &story, nil
}

// Create implements store.StoryStore.Create
func (s *PostgresStoryStore) Create(ctx context.Context, story *domain.Story) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := story.Validate(); err != nil {
		log.Warn("story validation failed during create",
			slog.String("error", err.Error()),
			slog.String("story_id", story.ID.String()))
		return err
	}

	sentencesJSON, err := json.Marshal(story.Sentences)
	if err != nil {
		return fmt.Errorf("failed to marshal story sentences: %w", err)
	}
	newWordsJSON, err := json.Marshal(story.NewWordIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal new word IDs: %w", err)
	}
	knownWordsJSON, err := json.Marshal(story.KnownWordIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal known word IDs: %w", err)
	}
	grammarJSON, err := json.Marshal(story.GrammarIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal grammar concept IDs: %w", err)
	}

	query := `
		INSERT INTO stories (id, user_id, title, content, content_romanized, content_english,
			word_count, sentences, cefr_level, topic, new_word_ids, known_word_ids,
			grammar_concept_ids, rating, completed_at, created_at,
			generation_prompt, model_name, raw_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		story.ID,
		story.UserID,
		story.Title,
		story.Content,
		nullableString(story.ContentRomanized),
		nullableString(story.ContentEnglish),
		story.WordCount,
		sentencesJSON,
		story.CEFRLevel,
		nullableString(story.Topic),
		newWordsJSON,
		knownWordsJSON,
		grammarJSON,
		nullableInt(story.Rating),
		nullableTime(story.CompletedAt),
		story.CreatedAt,
		nullableString(story.GenerationPrompt),
		nullableString(story.ModelName),
		nullableString(story.RawResponse),
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create story",
			slog.String("error", err.Error()),
			slog.String("story_id", story.ID.String()))
		return err
	}

	log.Info("story created successfully",
		slog.String("story_id", story.ID.String()),
		slog.String("user_id", story.UserID.String()),
		slog.String("cefr_level", string(story.CEFRLevel)))
	return nil
}

// GetByID implements store.StoryStore.GetByID
func (s *PostgresStoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	story, err := scanStory(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("story not found", slog.String("story_id", id.String()))
			return nil, store.ErrStoryNotFound
		}
		log.Error("failed to get story by ID",
			slog.String("error", err.Error()),
			slog.String("story_id", id.String()))
		return nil, err
	}

	return story, nil
}

// ListByUser implements store.StoryStore.ListByUser
func (s *PostgresStoryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	completed *bool,
	limit, offset int,
) ([]*domain.Story, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + storyColumns + ` FROM stories
		WHERE user_id = $1
	`
	if completed != nil {
		if *completed {
			query += " AND completed_at IS NOT NULL"
		} else {
			query += " AND completed_at IS NULL"
		}
	}
	query += `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list stories",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stories []*domain.Story
	for rows.Next() {
		story, err := scanStory(rows.Scan)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stories, nil
}

// Update implements store.StoryStore.Update
func (s *PostgresStoryStore) Update(ctx context.Context, story *domain.Story) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := story.Validate(); err != nil {
		log.Warn("story validation failed during update",
			slog.String("error", err.Error()),
			slog.String("story_id", story.ID.String()))
		return err
	}

	query := `
		UPDATE stories
		SET rating = $2, completed_at = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		story.ID,
		nullableInt(story.Rating),
		nullableTime(story.CompletedAt),
	)

	if err != nil {
		log.Error("failed to update story",
			slog.String("error", err.Error()),
			slog.String("story_id", story.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "story"); err != nil {
		return store.ErrStoryNotFound
	}

	return nil
}

// CountCompleted implements store.StoryStore.CountCompleted
func (s *PostgresStoryStore) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM stories WHERE user_id = $1 AND completed_at IS NOT NULL`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindByTargetWord implements store.StoryStore.FindByTargetWord
// The JSONB containment operator finds stories whose new-word list includes
// the given word.
func (s *PostgresStoryStore) FindByTargetWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.Story, error) {
	query := `
		SELECT ` + storyColumns + ` FROM stories
		WHERE user_id = $1 AND new_word_ids @> $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	wordJSON, err := json.Marshal([]uuid.UUID{wordID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal word ID: %w", err)
	}

	row := s.db.QueryRowContext(ctx, query, userID, wordJSON)
	story, err := scanStory(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStoryNotFound
		}
		return nil, err
	}

	return story, nil
}

// WithTx implements store.StoryStore.WithTx
func (s *PostgresStoryStore) WithTx(tx *sql.Tx) store.StoryStore {
	return &PostgresStoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableInt maps a nil int pointer to SQL NULL.
func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
