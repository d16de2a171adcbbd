package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/monkesay/monke-api/internal/domain"
)

// SessionStore defines the interface for learning session persistence.
type SessionStore interface {
	// Create saves a new learning session.
	Create(ctx context.Context, session *domain.LearningSession) error

	// GetByID retrieves a session by its ID, scoped to the user.
	// Returns ErrSessionNotFound if no session exists or it belongs to
	// another user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.LearningSession, error)

	// Update modifies an existing session, typically to close it.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.LearningSession) error

	// ListEndedDates retrieves the distinct UTC dates on which the user
	// started a session that has since ended, most recent first. Dates are
	// returned as midnight UTC timestamps. Open sessions are excluded.
	ListEndedDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SessionStore
}
