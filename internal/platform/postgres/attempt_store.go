package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// PostgresAttemptStore implements the store.ExerciseAttemptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgreSQL implementation of the
// ExerciseAttemptStore interface.
func NewPostgresAttemptStore(db store.DBTX, log *slog.Logger) *PostgresAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: log.With(slog.String("component", "attempt_store")),
	}
}

// Ensure PostgresAttemptStore implements store.ExerciseAttemptStore interface
var _ store.ExerciseAttemptStore = (*PostgresAttemptStore)(nil)

// Create implements store.ExerciseAttemptStore.Create
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.ExerciseAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	query := `
		INSERT INTO exercise_attempts (id, user_id, exercise_id, answer, correct,
			score, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.ExerciseID,
		attempt.Answer,
		attempt.Correct,
		attempt.Score,
		nullableString(attempt.Feedback),
		attempt.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user or exercise does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create exercise attempt",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	log.Debug("exercise attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.Bool("correct", attempt.Correct))
	return nil
}

// ListByUserAndExercise implements store.ExerciseAttemptStore.ListByUserAndExercise
func (s *PostgresAttemptStore) ListByUserAndExercise(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
) ([]*domain.ExerciseAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, exercise_id, answer, correct, score, feedback, created_at
		FROM exercise_attempts
		WHERE user_id = $1 AND exercise_id = $2
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, exerciseID)
	if err != nil {
		log.Error("failed to list exercise attempts",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exerciseID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var attempts []*domain.ExerciseAttempt
	for rows.Next() {
		var attempt domain.ExerciseAttempt
		var feedback sql.NullString
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.ExerciseID,
			&attempt.Answer,
			&attempt.Correct,
			&attempt.Score,
			&feedback,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attempt.Feedback = feedback.String
		attempts = append(attempts, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// CountCompleted implements store.ExerciseAttemptStore.CountCompleted
func (s *PostgresAttemptStore) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(DISTINCT exercise_id)
		FROM exercise_attempts
		WHERE user_id = $1 AND correct
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx implements store.ExerciseAttemptStore.WithTx
func (s *PostgresAttemptStore) WithTx(tx *sql.Tx) store.ExerciseAttemptStore {
	return &PostgresAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}
