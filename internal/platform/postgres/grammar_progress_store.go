package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/store"
)

// PostgresGrammarProgressStore implements the store.GrammarProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresGrammarProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGrammarProgressStore creates a new PostgreSQL implementation of
// the GrammarProgressStore interface.
func NewPostgresGrammarProgressStore(db store.DBTX, log *slog.Logger) *PostgresGrammarProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresGrammarProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "grammar_progress_store")),
	}
}

// Ensure PostgresGrammarProgressStore implements store.GrammarProgressStore interface
var _ store.GrammarProgressStore = (*PostgresGrammarProgressStore)(nil)

const grammarProgressColumns = `id, user_id, grammar_concept_id, status,
	introduced_at, comfort_score, created_at`

// scanGrammarProgress reads one grammar progress row.
func scanGrammarProgress(scan func(dest ...any) error) (*domain.UserGrammarProgress, error) {
	var progress domain.UserGrammarProgress
	var introducedAt sql.NullTime

	err := scan(
		&progress.ID,
		&progress.UserID,
		&progress.ConceptID,
		&progress.Status,
		&introducedAt,
		&progress.ComfortScore,
		&progress.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if introducedAt.Valid {
		progress.IntroducedAt = &introducedAt.Time
	}

	return &progress, nil
}

// Create implements store.GrammarProgressStore.Create
// Returns store.ErrGrammarProgressExists if a row for the (user, concept)
// pair already exists.
func (s *PostgresGrammarProgressStore) Create(ctx context.Context, progress *domain.UserGrammarProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("grammar progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_grammars (id, user_id, grammar_concept_id, status,
			introduced_at, comfort_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.ConceptID,
		progress.Status,
		nullableTime(progress.IntroducedAt),
		progress.ComfortScore,
		progress.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrGrammarProgressExists, err)
		}
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user or grammar concept does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create grammar progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	log.Debug("grammar progress created",
		slog.String("progress_id", progress.ID.String()),
		slog.String("concept_id", progress.ConceptID.String()))
	return nil
}

// Get implements store.GrammarProgressStore.Get
func (s *PostgresGrammarProgressStore) Get(
	ctx context.Context,
	userID, conceptID uuid.UUID,
) (*domain.UserGrammarProgress, error) {
	query := `SELECT ` + grammarProgressColumns + ` FROM user_grammars
		WHERE user_id = $1 AND grammar_concept_id = $2`

	row := s.db.QueryRowContext(ctx, query, userID, conceptID)
	progress, err := scanGrammarProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGrammarProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// ListByUser implements store.GrammarProgressStore.ListByUser
func (s *PostgresGrammarProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.UserGrammarProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + grammarProgressColumns + ` FROM user_grammars WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list grammar progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.UserGrammarProgress
	for rows.Next() {
		progress, err := scanGrammarProgress(rows.Scan)
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

// Update implements store.GrammarProgressStore.Update
func (s *PostgresGrammarProgressStore) Update(ctx context.Context, progress *domain.UserGrammarProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("grammar progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		UPDATE user_grammars
		SET status = $2, introduced_at = $3, comfort_score = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.Status,
		nullableTime(progress.IntroducedAt),
		progress.ComfortScore,
	)

	if err != nil {
		log.Error("failed to update grammar progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "grammar progress"); err != nil {
		return store.ErrGrammarProgressNotFound
	}

	return nil
}

// CountByStatus implements store.GrammarProgressStore.CountByStatus
func (s *PostgresGrammarProgressStore) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.GrammarStatus,
) (int, error) {
	query := `SELECT COUNT(*) FROM user_grammars WHERE user_id = $1 AND status = $2`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// WithTx implements store.GrammarProgressStore.WithTx
func (s *PostgresGrammarProgressStore) WithTx(tx *sql.Tx) store.GrammarProgressStore {
	return &PostgresGrammarProgressStore{
		db:     tx,
		logger: s.logger,
	}
}
