package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
func NewPostgresSessionStore(db store.DBTX, log *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: log.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `id, user_id, type, story_id, words_reviewed, words_correct,
	started_at, ended_at`

// scanSession reads one session row.
func scanSession(scan func(dest ...any) error) (*domain.LearningSession, error) {
	var session domain.LearningSession
	var storyID uuid.NullUUID
	var endedAt sql.NullTime

	err := scan(
		&session.ID,
		&session.UserID,
		&session.Type,
		&storyID,
		&session.WordsReviewed,
		&session.WordsCorrect,
		&session.StartedAt,
		&endedAt,
	)
	if err != nil {
		return nil, err
	}

	if storyID.Valid {
		session.StoryID = &storyID.UUID
	}
	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}

	return &session, nil
}

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.LearningSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO learning_sessions (id, user_id, type, story_id, words_reviewed,
			words_correct, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.Type,
		session.StoryID,
		session.WordsReviewed,
		session.WordsCorrect,
		session.StartedAt,
		nullableTime(session.EndedAt),
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user or story does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create learning session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	log.Debug("learning session created",
		slog.String("session_id", session.ID.String()),
		slog.String("type", string(session.Type)))
	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.LearningSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE id = $1 AND user_id = $2`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	session, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Update implements store.SessionStore.Update
func (s *PostgresSessionStore) Update(ctx context.Context, session *domain.LearningSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during update",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		UPDATE learning_sessions
		SET words_reviewed = $2, words_correct = $3, ended_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.WordsReviewed,
		session.WordsCorrect,
		nullableTime(session.EndedAt),
	)

	if err != nil {
		log.Error("failed to update learning session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "learning session"); err != nil {
		return store.ErrSessionNotFound
	}

	return nil
}

// ListEndedDates implements store.SessionStore.ListEndedDates
// Only sessions that have ended count, but the day a session credits
// toward the streak is the day it started. Dates come back as midnight
// UTC timestamps, most recent first, with duplicates collapsed by the
// DISTINCT.
func (s *PostgresSessionStore) ListEndedDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT date_trunc('day', started_at AT TIME ZONE 'UTC') AS day
		FROM learning_sessions
		WHERE user_id = $1 AND ended_at IS NOT NULL
		ORDER BY day DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list session dates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		dates = append(dates, day.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}
