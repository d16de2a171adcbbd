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

// PostgresExerciseStore implements the store.ExerciseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExerciseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseStore creates a new PostgreSQL implementation of the ExerciseStore interface.
func NewPostgresExerciseStore(db store.DBTX, log *slog.Logger) *PostgresExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresExerciseStore{
		db:     db,
		logger: log.With(slog.String("component", "exercise_store")),
	}
}

// Ensure PostgresExerciseStore implements store.ExerciseStore interface
var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

const exerciseColumns = `id, story_id, type, prompt, prompt_hindi, options,
	expected_answer, explanation, sort_order, word_ids, created_at`

// scanExercise reads one exercise row. Options and word IDs are stored as JSONB.
func scanExercise(scan func(dest ...any) error) (*domain.Exercise, error) {
	var exercise domain.Exercise
	var promptHindi, explanation sql.NullString
	var optionsJSON, wordIDsJSON []byte

	err := scan(
		&exercise.ID,
		&exercise.StoryID,
		&exercise.Type,
		&exercise.Prompt,
		&promptHindi,
		&optionsJSON,
		&exercise.ExpectedAnswer,
		&explanation,
		&exercise.SortOrder,
		&wordIDsJSON,
		&exercise.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	exercise.PromptHindi = promptHindi.String
	exercise.Explanation = explanation.String
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &exercise.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exercise options: %w", err)
		}
	}
	if len(wordIDsJSON) > 0 {
		if err := json.Unmarshal(wordIDsJSON, &exercise.WordIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exercise word IDs: %w", err)
		}
	}

	return &exercise, nil
}

// CreateMultiple implements store.ExerciseStore.CreateMultiple
// Exercises are inserted one by one; run this inside a transaction so a
// failure rolls back the whole batch together with its story.
func (s *PostgresExerciseStore) CreateMultiple(ctx context.Context, exercises []*domain.Exercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO exercises (id, story_id, type, prompt, prompt_hindi, options,
			expected_answer, explanation, sort_order, word_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, exercise := range exercises {
		if err := exercise.Validate(); err != nil {
			log.Warn("exercise validation failed during create",
				slog.String("error", err.Error()),
				slog.String("exercise_id", exercise.ID.String()))
			return err
		}

		optionsJSON, err := json.Marshal(exercise.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal exercise options: %w", err)
		}
		wordIDsJSON, err := json.Marshal(exercise.WordIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal exercise word IDs: %w", err)
		}

		_, err = s.db.ExecContext(
			ctx,
			query,
			exercise.ID,
			exercise.StoryID,
			exercise.Type,
			exercise.Prompt,
			nullableString(exercise.PromptHindi),
			optionsJSON,
			exercise.ExpectedAnswer,
			nullableString(exercise.Explanation),
			exercise.SortOrder,
			wordIDsJSON,
			exercise.CreatedAt,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: story does not exist", store.ErrInvalidEntity)
			}
			log.Error("failed to create exercise",
				slog.String("error", err.Error()),
				slog.String("exercise_id", exercise.ID.String()))
			return err
		}
	}

	log.Info("exercises created",
		slog.Int("count", len(exercises)))
	return nil
}

// GetByID implements store.ExerciseStore.GetByID
func (s *PostgresExerciseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	exercise, err := scanExercise(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListByStory implements store.ExerciseStore.ListByStory
func (s *PostgresExerciseStore) ListByStory(ctx context.Context, storyID uuid.UUID) ([]*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE story_id = $1 ORDER BY sort_order`

	rows, err := s.db.QueryContext(ctx, query, storyID)
	if err != nil {
		log.Error("failed to list exercises",
			slog.String("error", err.Error()),
			slog.String("story_id", storyID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var exercises []*domain.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows.Scan)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return &PostgresExerciseStore{
		db:     tx,
		logger: s.logger,
	}
}
