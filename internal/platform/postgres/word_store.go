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

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If log is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, log *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const wordColumns = `id, hindi, romanized, english, part_of_speech, root_word_id,
	cefr_level, tags, audio_url, notes, created_at, updated_at`

// scanWord reads one word row. Tags are stored as JSONB.
func scanWord(scan func(dest ...any) error) (*domain.Word, error) {
	var word domain.Word
	var rootWordID uuid.NullUUID
	var tagsJSON []byte
	var audioURL, notes sql.NullString

	err := scan(
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

	return &word, nil
}

// Create implements store.WordStore.Create
// Returns store.ErrDuplicate if a word with the same hindi form and part of
// speech already exists.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	tagsJSON, err := json.Marshal(word.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal word tags: %w", err)
	}

	query := `
		INSERT INTO words (id, hindi, romanized, english, part_of_speech, root_word_id,
			cefr_level, tags, audio_url, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.Hindi,
		word.Romanized,
		word.English,
		word.PartOfSpeech,
		word.RootWordID,
		word.CEFRLevel,
		tagsJSON,
		nullableString(word.AudioURL),
		nullableString(word.Notes),
		word.CreatedAt,
		word.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate word during create",
				slog.String("hindi", word.Hindi))
			return fmt.Errorf("%w: word %q", store.ErrDuplicate, word.Hindi)
		}
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	log.Info("word created successfully",
		slog.String("word_id", word.ID.String()),
		slog.String("cefr_level", string(word.CEFRLevel)))
	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	word, err := scanWord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, err
	}

	return word, nil
}

// GetByIDs implements store.WordStore.GetByIDs
// Missing IDs are silently skipped.
func (s *PostgresWordStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words WHERE id = ANY($1::uuid[])`

	rows, err := s.db.QueryContext(ctx, query, uuidStrings(ids))
	if err != nil {
		log.Error("failed to get words by IDs",
			slog.String("error", err.Error()),
			slog.Int("id_count", len(ids)))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// List implements store.WordStore.List
func (s *PostgresWordStore) List(ctx context.Context, filter store.WordFilter) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words WHERE 1=1`
	args := []any{}

	if filter.CEFRLevel != "" {
		args = append(args, filter.CEFRLevel)
		query += fmt.Sprintf(" AND cefr_level = $%d", len(args))
	}
	if filter.PartOfSpeech != "" {
		args = append(args, filter.PartOfSpeech)
		query += fmt.Sprintf(" AND part_of_speech = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (hindi ILIKE $%d OR romanized ILIKE $%d OR english ILIKE $%d)", n, n, n)
	}

	query += " ORDER BY cefr_level, hindi"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list words",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// ListUnseenAtLevel implements store.WordStore.ListUnseenAtLevel
// Words the user already has a progress row for are excluded; the rest are
// returned in random order so stories do not always teach the same words.
func (s *PostgresWordStore) ListUnseenAtLevel(
	ctx context.Context,
	userID uuid.UUID,
	level domain.CEFRLevel,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE cefr_level = $1
		  AND id NOT IN (SELECT word_id FROM user_words WHERE user_id = $2)
		ORDER BY random()
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, level, userID, limit)
	if err != nil {
		log.Error("failed to list unseen words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("cefr_level", string(level)))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// CountUnseenAtLevel implements store.WordStore.CountUnseenAtLevel
func (s *PostgresWordStore) CountUnseenAtLevel(
	ctx context.Context,
	userID uuid.UUID,
	level domain.CEFRLevel,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM words
		WHERE cefr_level = $1
		  AND id NOT IN (SELECT word_id FROM user_words WHERE user_id = $2)
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, level, userID).Scan(&count); err != nil {
		log.Error("failed to count unseen words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

// collectWords drains a result set into word values.
func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows.Scan)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// uuidStrings renders IDs for use with ANY($1::uuid[]).
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
