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

// PostgresGrammarStore implements the store.GrammarStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGrammarStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGrammarStore creates a new PostgreSQL implementation of the GrammarStore interface.
func NewPostgresGrammarStore(db store.DBTX, log *slog.Logger) *PostgresGrammarStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresGrammarStore{
		db:     db,
		logger: log.With(slog.String("component", "grammar_store")),
	}
}

// Ensure PostgresGrammarStore implements store.GrammarStore interface
var _ store.GrammarStore = (*PostgresGrammarStore)(nil)

const conceptColumns = `id, name, slug, description, cefr_level, sort_order,
	examples, prerequisite_ids, created_at`

// scanConcept reads one grammar concept row. Examples and prerequisite IDs
// are stored as JSONB.
func scanConcept(scan func(dest ...any) error) (*domain.GrammarConcept, error) {
	var concept domain.GrammarConcept
	var examplesJSON, prereqJSON []byte

	err := scan(
		&concept.ID,
		&concept.Name,
		&concept.Slug,
		&concept.Description,
		&concept.CEFRLevel,
		&concept.SortOrder,
		&examplesJSON,
		&prereqJSON,
		&concept.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(examplesJSON) > 0 {
		if err := json.Unmarshal(examplesJSON, &concept.Examples); err != nil {
			return nil, fmt.Errorf("failed to unmarshal grammar examples: %w", err)
		}
	}
	if len(prereqJSON) > 0 {
		if err := json.Unmarshal(prereqJSON, &concept.PrerequisiteIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prerequisite IDs: %w", err)
		}
	}

	return &concept, nil
}

// Create implements store.GrammarStore.Create
// Returns store.ErrDuplicate if a concept with the same slug already exists.
func (s *PostgresGrammarStore) Create(ctx context.Context, concept *domain.GrammarConcept) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := concept.Validate(); err != nil {
		log.Warn("grammar concept validation failed during create",
			slog.String("error", err.Error()),
			slog.String("concept_id", concept.ID.String()))
		return err
	}

	examplesJSON, err := json.Marshal(concept.Examples)
	if err != nil {
		return fmt.Errorf("failed to marshal grammar examples: %w", err)
	}
	prereqJSON, err := json.Marshal(concept.PrerequisiteIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal prerequisite IDs: %w", err)
	}

	query := `
		INSERT INTO grammar_concepts (id, name, slug, description, cefr_level,
			sort_order, examples, prerequisite_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		concept.ID,
		concept.Name,
		concept.Slug,
		concept.Description,
		concept.CEFRLevel,
		concept.SortOrder,
		examplesJSON,
		prereqJSON,
		concept.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate grammar concept during create",
				slog.String("slug", concept.Slug))
			return fmt.Errorf("%w: concept %q", store.ErrDuplicate, concept.Slug)
		}
		log.Error("failed to create grammar concept",
			slog.String("error", err.Error()),
			slog.String("concept_id", concept.ID.String()))
		return err
	}

	log.Info("grammar concept created",
		slog.String("concept_id", concept.ID.String()),
		slog.String("slug", concept.Slug))
	return nil
}

// GetByID implements store.GrammarStore.GetByID
func (s *PostgresGrammarStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GrammarConcept, error) {
	query := `SELECT ` + conceptColumns + ` FROM grammar_concepts WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	concept, err := scanConcept(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGrammarConceptNotFound
		}
		return nil, err
	}
	return concept, nil
}

// List implements store.GrammarStore.List
func (s *PostgresGrammarStore) List(ctx context.Context) ([]*domain.GrammarConcept, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + conceptColumns + ` FROM grammar_concepts ORDER BY sort_order`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list grammar concepts",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var concepts []*domain.GrammarConcept
	for rows.Next() {
		concept, err := scanConcept(rows.Scan)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, concept)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return concepts, nil
}

// WithTx implements store.GrammarStore.WithTx
func (s *PostgresGrammarStore) WithTx(tx *sql.Tx) store.GrammarStore {
	return &PostgresGrammarStore{
		db:     tx,
		logger: s.logger,
	}
}
