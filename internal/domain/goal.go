package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a learning goal.
type GoalStatus string

// Possible goal status values.
const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Goal priority bounds. Priority 1 is low, 3 is high.
const (
	MinGoalPriority     = 1
	MaxGoalPriority     = 3
	DefaultGoalPriority = 2
)

// DefaultGoalCategory is assigned when no category is provided.
const DefaultGoalCategory = "general"

// Goal-specific validation errors.
var (
	ErrGoalIDEmpty        = fmt.Errorf("%w: goal ID cannot be empty", ErrValidation)
	ErrGoalUserIDEmpty    = fmt.Errorf("%w: goal user ID cannot be empty", ErrValidation)
	ErrGoalTitleEmpty     = fmt.Errorf("%w: goal title cannot be empty", ErrValidation)
	ErrGoalPriorityRange  = fmt.Errorf("%w: goal priority must be between 1 and 3", ErrValidation)
	ErrInvalidGoalStatus  = fmt.Errorf("%w: invalid goal status", ErrValidation)
	ErrGoalStatusTerminal = fmt.Errorf("goal status cannot change once completed or cancelled")
)

// Goal represents a user-defined learning objective with a lifecycle status.
// A goal starts active and transitions at most once, to completed or cancelled.
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    int        `json:"priority"`
	Status      GoalStatus `json:"status"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewGoal creates a new active Goal owned by the given user.
// A zero priority is replaced with DefaultGoalPriority and an empty category
// with DefaultGoalCategory before validation.
// Returns an error if validation fails.
func NewGoal(
	userID uuid.UUID,
	title, description, category string,
	priority int,
	targetDate *time.Time,
) (*Goal, error) {
	if priority == 0 {
		priority = DefaultGoalPriority
	}
	if category == "" {
		category = DefaultGoalCategory
	}

	goal := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      GoalStatusActive,
		TargetDate:  targetDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// Validate checks if the Goal has valid data.
// Returns an error if any field fails validation.
func (g *Goal) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGoalIDEmpty
	}

	if g.UserID == uuid.Nil {
		return ErrGoalUserIDEmpty
	}

	if g.Title == "" {
		return ErrGoalTitleEmpty
	}

	if g.Priority < MinGoalPriority || g.Priority > MaxGoalPriority {
		return ErrGoalPriorityRange
	}

	if !IsValidGoalStatus(g.Status) {
		return ErrInvalidGoalStatus
	}

	return nil
}

// CanTransitionTo reports whether the goal may move to the given status.
// Active goals may complete, cancel, or remain active (a no-op transition).
// Completed and cancelled are terminal.
func (g *Goal) CanTransitionTo(status GoalStatus) bool {
	if !IsValidGoalStatus(status) {
		return false
	}
	return g.Status == GoalStatusActive
}

// UpdateStatus applies a status transition and refreshes the UpdatedAt
// timestamp. Returns ErrInvalidGoalStatus for unknown statuses and
// ErrGoalStatusTerminal when the goal is already in a terminal state.
func (g *Goal) UpdateStatus(status GoalStatus) error {
	if !IsValidGoalStatus(status) {
		return ErrInvalidGoalStatus
	}

	if !g.CanTransitionTo(status) {
		return ErrGoalStatusTerminal
	}

	g.Status = status
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidGoalStatus checks if the given status is a valid GoalStatus.
func IsValidGoalStatus(status GoalStatus) bool {
	switch status {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled:
		return true
	default:
		return false
	}
}
