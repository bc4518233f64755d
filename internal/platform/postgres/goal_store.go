package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/platform/logger"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// PostgresGoalStore implements the store.GoalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGoalStore creates a new PostgreSQL implementation of the GoalStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGoalStore(db store.DBTX, logger *slog.Logger) *PostgresGoalStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "goal_store")),
	}
}

// Ensure PostgresGoalStore implements store.GoalStore interface
var _ store.GoalStore = (*PostgresGoalStore)(nil)

// Create implements store.GoalStore.Create
// It saves a new goal to the database, handling domain validation.
func (s *PostgresGoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := goal.Validate(); err != nil {
		log.Warn("goal validation failed during create",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return err
	}

	query := `
		INSERT INTO goals (id, user_id, title, description, category, priority, status, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		goal.Status,
		nullableTime(goal.TargetDate),
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()),
			slog.String("user_id", goal.UserID.String()))
		return store.NewStoreError("goal", "create", "failed to insert goal", MapError(err))
	}

	log.Info("goal created successfully",
		slog.String("goal_id", goal.ID.String()),
		slog.String("user_id", goal.UserID.String()),
		slog.String("status", string(goal.Status)))
	return nil
}

// GetByID implements store.GoalStore.GetByID
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, category, priority, status, target_date, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	goal, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("goal not found", slog.String("goal_id", id.String()))
			return nil, store.ErrGoalNotFound
		}
		log.Error("failed to get goal by ID",
			slog.String("error", err.Error()),
			slog.String("goal_id", id.String()))
		return nil, store.NewStoreError("goal", "get", "query failed", MapError(err))
	}

	return goal, nil
}

// Update implements store.GoalStore.Update
// Only the status and updated_at columns are written; everything else on a
// goal is immutable after creation.
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) Update(ctx context.Context, goal *domain.Goal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := goal.Validate(); err != nil {
		log.Warn("goal validation failed during update",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return err
	}

	query := `
		UPDATE goals
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, goal.Status, goal.UpdatedAt, goal.ID)
	if err != nil {
		log.Error("failed to update goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return store.NewStoreError("goal", "update", "failed to update goal", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("goal", "update", "failed to read result", MapError(err))
	}
	if rows == 0 {
		log.Debug("goal not found during update", slog.String("goal_id", goal.ID.String()))
		return store.ErrGoalNotFound
	}

	log.Info("goal updated successfully",
		slog.String("goal_id", goal.ID.String()),
		slog.String("status", string(goal.Status)))
	return nil
}

// Delete implements store.GoalStore.Delete
// Deletion is not idempotent: deleting an unknown ID returns store.ErrGoalNotFound.
func (s *PostgresGoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM goals WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", id.String()))
		return store.NewStoreError("goal", "delete", "failed to delete goal", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("goal", "delete", "failed to read result", MapError(err))
	}
	if rows == 0 {
		log.Debug("goal not found during delete", slog.String("goal_id", id.String()))
		return store.ErrGoalNotFound
	}

	log.Info("goal deleted successfully", slog.String("goal_id", id.String()))
	return nil
}

// ListByUser implements store.GoalStore.ListByUser
// Goals are returned in creation order.
func (s *PostgresGoalStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Goal, error) {
	query := `
		SELECT id, user_id, title, description, category, priority, status, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	return s.queryGoals(ctx, query, userID)
}

// ListByUserAndStatus implements store.GoalStore.ListByUserAndStatus
func (s *PostgresGoalStore) ListByUserAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.GoalStatus,
) ([]*domain.Goal, error) {
	query := `
		SELECT id, user_id, title, description, category, priority, status, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at ASC
	`
	return s.queryGoals(ctx, query, userID, status)
}

// WithTx implements store.GoalStore.WithTx
// It returns a new GoalStore that uses the provided transaction.
func (s *PostgresGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return &PostgresGoalStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryGoals runs a goal query and scans all result rows.
func (s *PostgresGoalStore) queryGoals(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list goals", slog.String("error", err.Error()))
		return nil, store.NewStoreError("goal", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			log.Error("failed to scan goal row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("goal", "list", "row scan failed", MapError(err))
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("goal", "list", "row iteration failed", MapError(err))
	}

	return goals, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanGoal scans a single goal row into a domain.Goal.
func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var status string
	var description sql.NullString
	var targetDate sql.NullTime

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&description,
		&goal.Category,
		&goal.Priority,
		&status,
		&targetDate,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	goal.Status = domain.GoalStatus(status)
	goal.Description = description.String
	if targetDate.Valid {
		t := targetDate.Time
		goal.TargetDate = &t
	}

	return &goal, nil
}

// nullableTime converts an optional time into a driver-friendly value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
