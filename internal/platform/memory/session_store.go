package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// SessionStore is an in-memory implementation of store.SessionStore.
// Sessions are kept in insertion order so the most-recent-first sort can
// use a stable tie-break.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []*domain.StudySession
}

// NewSessionStore creates an empty in-memory session ledger.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions = append(s.sessions, &copied)
	return nil
}

// ListByUser implements store.SessionStore.ListByUser
// Sessions are returned most-recent-first by session date, then creation
// time. sort.SliceStable preserves insertion order for exact ties.
func (s *SessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*domain.StudySession, 0)
	for _, session := range s.sessions {
		if session.UserID != userID {
			continue
		}
		copied := *session
		sessions = append(sessions, &copied)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].SessionDate.After(sessions[j].SessionDate)
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx.
// The in-memory store has no transaction support; the same store is returned.
func (s *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return s
}
