package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// PostgresWordProgressStore implements the store.WordProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordProgressStore creates a new PostgreSQL implementation of the
// WordProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresWordProgressStore(db store.DBTX, log *slog.Logger) *PostgresWordProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresWordProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "word_progress_store")),
	}
}

// Ensure PostgresWordProgressStore implements store.WordProgressStore interface
var _ store.WordProgressStore = (*PostgresWordProgressStore)(nil)

const progressColumns = `id, user_id, word_id, status, familiarity, times_seen,
	times_reviewed, times_correct, last_seen_at, next_review_at,
	srs_interval_days, srs_ease_factor, source, created_at`

// scanProgress reads one progress row.
func scanProgress(scan func(dest ...any) error) (*domain.UserWordProgress, error) {
	var progress domain.UserWordProgress
	var lastSeen, nextReview sql.NullTime

	err := scan(
		&progress.ID,
		&progress.UserID,
		&progress.WordID,
		&progress.Status,
		&progress.Familiarity,
		&progress.TimesSeen,
		&progress.TimesReviewed,
		&progress.TimesCorrect,
		&lastSeen,
		&nextReview,
		&progress.IntervalDays,
		&progress.EaseFactor,
		&progress.Source,
		&progress.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSeen.Valid {
		progress.LastSeenAt = &lastSeen.Time
	}
	if nextReview.Valid {
		progress.NextReviewAt = &nextReview.Time
	}

	return &progress, nil
}

// Create implements store.WordProgressStore.Create
// Returns store.ErrProgressExists if a row for the (user, word) pair exists.
func (s *PostgresWordProgressStore) Create(ctx context.Context, progress *domain.UserWordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_words (id, user_id, word_id, status, familiarity, times_seen,
			times_reviewed, times_correct, last_seen_at, next_review_at,
			srs_interval_days, srs_ease_factor, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.WordID,
		progress.Status,
		progress.Familiarity,
		progress.TimesSeen,
		progress.TimesReviewed,
		progress.TimesCorrect,
		nullableTime(progress.LastSeenAt),
		nullableTime(progress.NextReviewAt),
		progress.IntervalDays,
		progress.EaseFactor,
		progress.Source,
		progress.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate word progress during create",
				slog.String("user_id", progress.UserID.String()),
				slog.String("word_id", progress.WordID.String()))
			return fmt.Errorf("%w: %v", store.ErrProgressExists, err)
		}
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user or word does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create word progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	log.Debug("word progress created",
		slog.String("progress_id", progress.ID.String()),
		slog.String("word_id", progress.WordID.String()))
	return nil
}

// Get implements store.WordProgressStore.Get
func (s *PostgresWordProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.UserWordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_words WHERE user_id = $1 AND word_id = $2`

	row := s.db.QueryRowContext(ctx, query, userID, wordID)
	progress, err := scanProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// GetByID implements store.WordProgressStore.GetByID
func (s *PostgresWordProgressStore) GetByID(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.UserWordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_words WHERE id = $1 AND user_id = $2`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	progress, err := scanProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// GetByIDForUpdate implements store.WordProgressStore.GetByIDForUpdate
// The SELECT FOR UPDATE lock serializes concurrent reviews of the same word;
// the second transaction blocks until the first commits, then sees its writes.
func (s *PostgresWordProgressStore) GetByIDForUpdate(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.UserWordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + progressColumns + ` FROM user_words WHERE id = $1 AND user_id = $2 FOR UPDATE`

	row := s.db.QueryRowContext(ctx, query, id, userID)
	progress, err := scanProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordProgressNotFound
		}
		log.Error("failed to lock word progress row",
			slog.String("error", err.Error()),
			slog.String("progress_id", id.String()))
		return nil, err
	}
	return progress, nil
}

// Update implements store.WordProgressStore.Update
func (s *PostgresWordProgressStore) Update(ctx context.Context, progress *domain.UserWordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		UPDATE user_words
		SET status = $2, familiarity = $3, times_seen = $4, times_reviewed = $5,
			times_correct = $6, last_seen_at = $7, next_review_at = $8,
			srs_interval_days = $9, srs_ease_factor = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.Status,
		progress.Familiarity,
		progress.TimesSeen,
		progress.TimesReviewed,
		progress.TimesCorrect,
		nullableTime(progress.LastSeenAt),
		nullableTime(progress.NextReviewAt),
		progress.IntervalDays,
		progress.EaseFactor,
	)

	if err != nil {
		log.Error("failed to update word progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "word progress"); err != nil {
		return store.ErrWordProgressNotFound
	}

	return nil
}

// ListByUser implements store.WordProgressStore.ListByUser
func (s *PostgresWordProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	statuses []domain.WordStatus,
) ([]*store.ProgressWithWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + prefixedProgressColumns("uw") + `, ` + prefixedWordColumns("w") + `
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		WHERE uw.user_id = $1
	`
	args := []any{userID}

	if len(statuses) > 0 {
		args = append(args, statusStrings(statuses))
		query += fmt.Sprintf(" AND uw.status = ANY($%d)", len(args))
	}

	query += " ORDER BY uw.created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectProgressWithWords(rows)
}

// ListByWordIDs implements store.WordProgressStore.ListByWordIDs
func (s *PostgresWordProgressStore) ListByWordIDs(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.UserWordProgress, error) {
	if len(wordIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + progressColumns + ` FROM user_words
		WHERE user_id = $1 AND word_id = ANY($2::uuid[])
	`

	rows, err := s.db.QueryContext(ctx, query, userID, uuidStrings(wordIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.UserWordProgress
	for rows.Next() {
		progress, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDue implements store.WordProgressStore.ListDue
// Mastered words never come up for review.
func (s *PostgresWordProgressStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*store.ProgressWithWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + prefixedProgressColumns("uw") + `, ` + prefixedWordColumns("w") + `
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		WHERE uw.user_id = $1
		  AND uw.next_review_at <= $2
		  AND uw.status <> $3
		ORDER BY uw.next_review_at
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, userID, now, domain.WordStatusMastered, limit)
	if err != nil {
		log.Error("failed to list due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectProgressWithWords(rows)
}

// CountByStatuses implements store.WordProgressStore.CountByStatuses
func (s *PostgresWordProgressStore) CountByStatuses(
	ctx context.Context,
	userID uuid.UUID,
	statuses []domain.WordStatus,
) (int, error) {
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1 AND status = ANY($2)`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, statusStrings(statuses)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountDue implements store.WordProgressStore.CountDue
func (s *PostgresWordProgressStore) CountDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM user_words
		WHERE user_id = $1 AND next_review_at <= $2 AND status <> $3
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, now, domain.WordStatusMastered).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountSeenSince implements store.WordProgressStore.CountSeenSince
func (s *PostgresWordProgressStore) CountSeenSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1 AND last_seen_at >= $2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// NextReviewAfter implements store.WordProgressStore.NextReviewAfter
func (s *PostgresWordProgressStore) NextReviewAfter(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*time.Time, error) {
	query := `
		SELECT next_review_at FROM user_words
		WHERE user_id = $1 AND next_review_at > $2 AND status <> $3
		ORDER BY next_review_at
		LIMIT 1
	`

	var next time.Time
	err := s.db.QueryRowContext(ctx, query, userID, now, domain.WordStatusMastered).Scan(&next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &next, nil
}

// WithTx implements store.WordProgressStore.WithTx
func (s *PostgresWordProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	return &PostgresWordProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// collectProgressWithWords drains a joined result set.
func collectProgressWithWords(rows *sql.Rows) ([]*store.ProgressWithWord, error) {
	var out []*store.ProgressWithWord
	for rows.Next() {
		pair, err := scanProgressWithWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanProgressWithWord reads one joined (progress, word) row.
func scanProgressWithWord(rows *sql.Rows) (*store.ProgressWithWord, error) {
	var progress domain.UserWordProgress
	var lastSeen, nextReview sql.NullTime
	var word domain.Word
	var rootWordID uuid.NullUUID
	var tagsJSON []byte
	var audioURL, notes sql.NullString

	err := rows.Scan(
		&progress.ID,
		&progress.UserID,
		&progress.WordID,
		&progress.Status,
		&progress.Familiarity,
		&progress.TimesSeen,
		&progress.TimesReviewed,
		&progress.TimesCorrect,
		&lastSeen,
		&nextReview,
		&progress.IntervalDays,
		&progress.EaseFactor,
		&progress.Source,
		&progress.CreatedAt,
		&word.ID,
		&word.Hindi,
		&word.Romanized,
		&word.English,
		&word.PartOfSpeech,
		&rootWordID,
		&word.CEFRLevel,
		&tagsJSON,
		&audioURL,
		&notes,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSeen.Valid {
		progress.LastSeenAt = &lastSeen.Time
	}
	if nextReview.Valid {
		progress.NextReviewAt = &nextReview.Time
	}
	if rootWordID.Valid {
		word.RootWordID = &rootWordID.UUID
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &word.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal word tags: %w", err)
		}
	}
	word.AudioURL = audioURL.String
	word.Notes = notes.String

	return &store.ProgressWithWord{Progress: &progress, Word: &word}, nil
}

// prefixedProgressColumns qualifies the progress column list with a table alias.
func prefixedProgressColumns(alias string) string {
	return alias + `.id, ` + alias + `.user_id, ` + alias + `.word_id, ` + alias + `.status, ` +
		alias + `.familiarity, ` + alias + `.times_seen, ` + alias + `.times_reviewed, ` +
		alias + `.times_correct, ` + alias + `.last_seen_at, ` + alias + `.next_review_at, ` +
		alias + `.srs_interval_days, ` + alias + `.srs_ease_factor, ` + alias + `.source, ` +
		alias + `.created_at`
}

// prefixedWordColumns qualifies the word column list with a table alias.
func prefixedWordColumns(alias string) string {
	return alias + `.id, ` + alias + `.hindi, ` + alias + `.romanized, ` + alias + `.english, ` +
		alias + `.part_of_speech, ` + alias + `.root_word_id, ` + alias + `.cefr_level, ` +
		alias + `.tags, ` + alias + `.audio_url, ` + alias + `.notes, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}

// statusStrings renders statuses for use with ANY($n).
func statusStrings(statuses []domain.WordStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

// nullableTime maps a nil time pointer to SQL NULL.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
