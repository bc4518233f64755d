package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// GoalStore is an in-memory implementation of store.GoalStore.
// Writes are serialized by a single RWMutex; reads may run concurrently.
// Returned goals are copies, so callers can never observe a partially
// written record.
type GoalStore struct {
	mu    sync.RWMutex
	goals map[uuid.UUID]*domain.Goal
	order []uuid.UUID // insertion order per store, filtered per user on read
}

// NewGoalStore creates an empty in-memory goal store.
func NewGoalStore() *GoalStore {
	return &GoalStore{
		goals: make(map[uuid.UUID]*domain.Goal),
	}
}

// Ensure GoalStore implements store.GoalStore interface
var _ store.GoalStore = (*GoalStore)(nil)

// Create implements store.GoalStore.Create
func (s *GoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[goal.ID]; exists {
		return store.ErrDuplicate
	}

	g := *goal
	s.goals[goal.ID] = &g
	s.order = append(s.order, goal.ID)
	return nil
}

// GetByID implements store.GoalStore.GetByID
func (s *GoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[id]
	if !ok {
		return nil, store.ErrGoalNotFound
	}

	g := *goal
	return &g, nil
}

// Update implements store.GoalStore.Update
func (s *GoalStore) Update(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.goals[goal.ID]
	if !ok {
		return store.ErrGoalNotFound
	}

	existing.Status = goal.Status
	existing.UpdatedAt = goal.UpdatedAt
	return nil
}

// Delete implements store.GoalStore.Delete
func (s *GoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return store.ErrGoalNotFound
	}

	delete(s.goals, id)
	for i, goalID := range s.order {
		if goalID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListByUser implements store.GoalStore.ListByUser
func (s *GoalStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return s.list(userID, nil)
}

// ListByUserAndStatus implements store.GoalStore.ListByUserAndStatus
func (s *GoalStore) ListByUserAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.GoalStatus,
) ([]*domain.Goal, error) {
	return s.list(userID, &status)
}

func (s *GoalStore) list(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]*domain.Goal, 0)
	for _, id := range s.order {
		goal := s.goals[id]
		if goal.UserID != userID {
			continue
		}
		if status != nil && goal.Status != *status {
			continue
		}
		g := *goal
		goals = append(goals, &g)
	}
	return goals, nil
}

// WithTx implements store.GoalStore.WithTx.
// The in-memory store has no transaction support; each operation is already
// atomic under the store mutex, so the same store is returned.
func (s *GoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return s
}
