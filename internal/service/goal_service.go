package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// GoalService provides goal lifecycle operations.
type GoalService interface {
	// CreateGoal creates a new active goal for the user.
	// Returns a validation error if the title is empty or the priority is
	// out of range.
	CreateGoal(
		ctx context.Context,
		userID uuid.UUID,
		title, description, category string,
		priority int,
		targetDate *time.Time,
	) (*domain.Goal, error)

	// UpdateGoalStatus applies a status transition to a goal.
	// Returns store.ErrGoalNotFound if the goal is unknown and
	// store.ErrInvalidTransition if the transition is not allowed by the
	// lifecycle state machine.
	UpdateGoalStatus(
		ctx context.Context,
		goalID uuid.UUID,
		status domain.GoalStatus,
	) (*domain.Goal, error)

	// DeleteGoal removes a goal. Deletion is not idempotent: a second
	// delete of the same ID returns store.ErrGoalNotFound.
	DeleteGoal(ctx context.Context, goalID uuid.UUID) error

	// ListGoals returns the user's goals in creation order, optionally
	// filtered by status.
	ListGoals(
		ctx context.Context,
		userID uuid.UUID,
		status *domain.GoalStatus,
	) ([]*domain.Goal, error)
}

// goalServiceImpl implements the GoalService interface.
type goalServiceImpl struct {
	goalStore store.GoalStore
	// db enables transactional read-modify-write on status updates.
	// When nil (in-memory mode), operations run directly on the store.
	db     *sql.DB
	logger *slog.Logger
}

// NewGoalService creates a new GoalService.
// db may be nil when the backing store does not support transactions.
func NewGoalService(goalStore store.GoalStore, db *sql.DB, log *slog.Logger) (GoalService, error) {
	if goalStore == nil {
		return nil, errors.New("goal store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &goalServiceImpl{
		goalStore: goalStore,
		db:        db,
		logger:    log.With(slog.String("component", "goal_service")),
	}, nil
}

// CreateGoal implements GoalService.CreateGoal
func (s *goalServiceImpl) CreateGoal(
	ctx context.Context,
	userID uuid.UUID,
	title, description, category string,
	priority int,
	targetDate *time.Time,
) (*domain.Goal, error) {
	goal, err := domain.NewGoal(userID, title, description, category, priority, targetDate)
	if err != nil {
		return nil, newServiceError("create_goal", "invalid goal data", err)
	}

	if err := s.goalStore.Create(ctx, goal); err != nil {
		return nil, newServiceError("create_goal", "failed to save goal", err)
	}

	s.logger.Debug("goal created",
		slog.String("goal_id", goal.ID.String()),
		slog.String("user_id", userID.String()))
	return goal, nil
}

// UpdateGoalStatus implements GoalService.UpdateGoalStatus
// The read-check-write sequence runs inside a transaction when a database is
// available, so concurrent updates of the same goal cannot skip the state
// machine check.
func (s *goalServiceImpl) UpdateGoalStatus(
	ctx context.Context,
	goalID uuid.UUID,
	status domain.GoalStatus,
) (*domain.Goal, error) {
	if !domain.IsValidGoalStatus(status) {
		return nil, newServiceError(
			"update_goal_status",
			"invalid status value",
			domain.ErrInvalidGoalStatus,
		)
	}

	var updated *domain.Goal

	apply := func(ctx context.Context, goals store.GoalStore) error {
		goal, err := goals.GetByID(ctx, goalID)
		if err != nil {
			return err
		}

		if !goal.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", store.ErrInvalidTransition, goal.Status, status)
		}

		// active -> active is an allowed idempotent no-op; skip the write.
		if goal.Status == status {
			updated = goal
			return nil
		}

		if err := goal.UpdateStatus(status); err != nil {
			return err
		}
		if err := goals.Update(ctx, goal); err != nil {
			return err
		}

		updated = goal
		return nil
	}

	var err error
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return apply(ctx, s.goalStore.WithTx(tx))
		})
	} else {
		err = apply(ctx, s.goalStore)
	}
	if err != nil {
		return nil, newServiceError("update_goal_status", "failed to update goal status", err)
	}

	s.logger.Debug("goal status updated",
		slog.String("goal_id", goalID.String()),
		slog.String("status", string(status)))
	return updated, nil
}

// DeleteGoal implements GoalService.DeleteGoal
func (s *goalServiceImpl) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	if err := s.goalStore.Delete(ctx, goalID); err != nil {
		return newServiceError("delete_goal", "failed to delete goal", err)
	}

	s.logger.Debug("goal deleted", slog.String("goal_id", goalID.String()))
	return nil
}

// ListGoals implements GoalService.ListGoals
func (s *goalServiceImpl) ListGoals(
	ctx context.Context,
	userID uuid.UUID,
	status *domain.GoalStatus,
) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	var err error

	if status != nil {
		goals, err = s.goalStore.ListByUserAndStatus(ctx, userID, *status)
	} else {
		goals, err = s.goalStore.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, newServiceError("list_goals", "failed to list goals", err)
	}

	return goals, nil
}
