package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewGoal(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	goal, err := NewGoal(userID, "Pass calculus exam", "final in June", "math", 3, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if goal.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if goal.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, goal.UserID)
	}

	if goal.Status != GoalStatusActive {
		t.Errorf("Expected status %s, got %s", GoalStatusActive, goal.Status)
	}

	if goal.Priority != 3 {
		t.Errorf("Expected priority 3, got %d", goal.Priority)
	}

	if goal.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test defaults
	goal, err = NewGoal(userID, "Read a book", "", "", 0, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.Priority != DefaultGoalPriority {
		t.Errorf("Expected default priority %d, got %d", DefaultGoalPriority, goal.Priority)
	}
	if goal.Category != DefaultGoalCategory {
		t.Errorf("Expected default category %q, got %q", DefaultGoalCategory, goal.Category)
	}

	// Test empty title
	_, err = NewGoal(userID, "", "", "math", 2, nil)
	if err != ErrGoalTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrGoalTitleEmpty, err)
	}

	// Test empty user ID
	_, err = NewGoal(uuid.Nil, "Pass calculus exam", "", "math", 2, nil)
	if err != ErrGoalUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrGoalUserIDEmpty, err)
	}

	// Test out-of-range priority
	_, err = NewGoal(userID, "Pass calculus exam", "", "math", 5, nil)
	if err != ErrGoalPriorityRange {
		t.Errorf("Expected error %v, got %v", ErrGoalPriorityRange, err)
	}

	// Test target date is kept
	target := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	goal, err = NewGoal(userID, "Pass calculus exam", "", "math", 2, &target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.TargetDate == nil || !goal.TargetDate.Equal(target) {
		t.Errorf("Expected target date %v, got %v", target, goal.TargetDate)
	}
}

func TestGoalCanTransitionTo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		from GoalStatus
		to   GoalStatus
		want bool
	}{
		{"active to completed", GoalStatusActive, GoalStatusCompleted, true},
		{"active to cancelled", GoalStatusActive, GoalStatusCancelled, true},
		{"active to active no-op", GoalStatusActive, GoalStatusActive, true},
		{"completed is terminal", GoalStatusCompleted, GoalStatusActive, false},
		{"completed to completed", GoalStatusCompleted, GoalStatusCompleted, false},
		{"completed to cancelled", GoalStatusCompleted, GoalStatusCancelled, false},
		{"cancelled is terminal", GoalStatusCancelled, GoalStatusActive, false},
		{"cancelled to completed", GoalStatusCancelled, GoalStatusCompleted, false},
		{"unknown status", GoalStatusActive, GoalStatus("paused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := Goal{Status: tt.from}
			if got := goal.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestGoalUpdateStatus(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	goal, err := NewGoal(userID, "Pass calculus exam", "", "math", 2, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := goal.UpdatedAt
	if err := goal.UpdateStatus(GoalStatusCompleted); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.Status != GoalStatusCompleted {
		t.Errorf("Expected status %s, got %s", GoalStatusCompleted, goal.Status)
	}
	if goal.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	// Terminal state is frozen
	if err := goal.UpdateStatus(GoalStatusActive); err != ErrGoalStatusTerminal {
		t.Errorf("Expected error %v, got %v", ErrGoalStatusTerminal, err)
	}

	// Unknown status value
	if err := goal.UpdateStatus(GoalStatus("paused")); err != ErrInvalidGoalStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidGoalStatus, err)
	}
}

func TestGoalValidate(t *testing.T) {
	t.Parallel()
	validGoal := Goal{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Learn Go",
		Category: "programming",
		Priority: 2,
		Status:   GoalStatusActive,
	}

	if err := validGoal.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidGoal := validGoal
	invalidGoal.ID = uuid.Nil
	if err := invalidGoal.Validate(); err != ErrGoalIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrGoalIDEmpty, err)
	}

	invalidGoal = validGoal
	invalidGoal.Status = GoalStatus("done")
	if err := invalidGoal.Validate(); err != ErrInvalidGoalStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidGoalStatus, err)
	}

	invalidGoal = validGoal
	invalidGoal.Priority = 0
	if err := invalidGoal.Validate(); err != ErrGoalPriorityRange {
		t.Errorf("Expected error %v, got %v", ErrGoalPriorityRange, err)
	}
}
