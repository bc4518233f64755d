package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// ChatStore is an in-memory implementation of store.ChatStore.
type ChatStore struct {
	mu    sync.RWMutex
	turns map[uuid.UUID][]*domain.ChatTurn // userID -> turns in insertion order
}

// NewChatStore creates an empty in-memory chat history log.
func NewChatStore() *ChatStore {
	return &ChatStore{
		turns: make(map[uuid.UUID][]*domain.ChatTurn),
	}
}

// Ensure ChatStore implements store.ChatStore interface
var _ store.ChatStore = (*ChatStore)(nil)

// Append implements store.ChatStore.Append
func (s *ChatStore) Append(ctx context.Context, turn *domain.ChatTurn) error {
	if err := turn.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *turn
	s.turns[turn.UserID] = append(s.turns[turn.UserID], &copied)
	return nil
}

// ListByUser implements store.ChatStore.ListByUser
func (s *ChatStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.ChatTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]*domain.ChatTurn, 0, len(s.turns[userID]))
	for _, turn := range s.turns[userID] {
		copied := *turn
		turns = append(turns, &copied)
	}
	return turns, nil
}

// WithTx implements store.ChatStore.WithTx.
// The in-memory store has no transaction support; the same store is returned.
func (s *ChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return s
}
