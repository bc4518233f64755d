package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
)

// GoalStore defines the interface for goal data persistence.
type GoalStore interface {
	// Create saves a new goal to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Goal if data is invalid.
	Create(ctx context.Context, goal *domain.Goal) error

	// GetByID retrieves a goal by its unique ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// Update saves changes to an existing goal. Only status and the
	// updated_at timestamp are mutable; goals are otherwise immutable.
	// Returns ErrGoalNotFound if the goal does not exist.
	Update(ctx context.Context, goal *domain.Goal) error

	// Delete removes a goal from the store. Deletion is not idempotent:
	// a second delete of the same ID returns ErrGoalNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser retrieves all goals owned by the given user in creation order.
	// Returns an empty slice if the user has no goals.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)

	// ListByUserAndStatus retrieves the user's goals with the given status,
	// in creation order.
	ListByUserAndStatus(
		ctx context.Context,
		userID uuid.UUID,
		status domain.GoalStatus,
	) ([]*domain.Goal, error)

	// WithTx returns a new GoalStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) GoalStore
}
