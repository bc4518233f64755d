package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
)

// ChatStore defines the interface for the append-only chat history log.
type ChatStore interface {
	// Append records a new chat turn for a user.
	// It handles domain validation internally.
	Append(ctx context.Context, turn *domain.ChatTurn) error

	// ListByUser retrieves the user's chat turns in insertion order.
	// Returns an empty slice if the user has no history.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatTurn, error)

	// WithTx returns a new ChatStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChatStore
}
