package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
)

// SessionStore defines the interface for study session persistence.
// Sessions form an append-only ledger: there are no update or delete
// operations, and implementations must preserve every record so that
// aggregates can be derived from full history.
type SessionStore interface {
	// Create appends a new study session to the ledger.
	// It handles domain validation internally.
	// Returns validation errors from the domain StudySession if data is invalid.
	Create(ctx context.Context, session *domain.StudySession) error

	// ListByUser retrieves the user's full session history ordered
	// most-recent-first by session date, then creation time, with insertion
	// order as the stable tie-break.
	// Returns an empty slice if the user has no sessions.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudySession, error)

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SessionStore
}
