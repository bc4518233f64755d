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

// StudyService provides study session ledger operations.
type StudyService interface {
	// LogSession appends an immutable study session record.
	// A nil sessionDate defaults to the current date. When goalID is set,
	// it must reference a goal owned by the same user; otherwise
	// store.ErrInvalidReference is returned.
	LogSession(
		ctx context.Context,
		userID uuid.UUID,
		subject string,
		durationMinutes int,
		goalID *uuid.UUID,
		notes string,
		sessionDate *time.Time,
	) (*domain.StudySession, error)

	// ListSessions returns the user's full session history,
	// most-recent-first.
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*domain.StudySession, error)
}

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	sessionStore store.SessionStore
	goalStore    store.GoalStore
	// db makes the ownership check and the insert atomic.
	// When nil (in-memory mode), operations run directly on the stores.
	db     *sql.DB
	logger *slog.Logger
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewStudyService creates a new StudyService.
// db may be nil when the backing stores do not support transactions.
func NewStudyService(
	sessionStore store.SessionStore,
	goalStore store.GoalStore,
	db *sql.DB,
	log *slog.Logger,
) (StudyService, error) {
	if sessionStore == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if goalStore == nil {
		return nil, errors.New("goal store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &studyServiceImpl{
		sessionStore: sessionStore,
		goalStore:    goalStore,
		db:           db,
		logger:       log.With(slog.String("component", "study_service")),
		now:          time.Now,
	}, nil
}

// LogSession implements StudyService.LogSession
func (s *studyServiceImpl) LogSession(
	ctx context.Context,
	userID uuid.UUID,
	subject string,
	durationMinutes int,
	goalID *uuid.UUID,
	notes string,
	sessionDate *time.Time,
) (*domain.StudySession, error) {
	date := s.now()
	if sessionDate != nil {
		date = *sessionDate
	}

	session, err := domain.NewStudySession(userID, subject, durationMinutes, goalID, notes, date)
	if err != nil {
		return nil, newServiceError("log_session", "invalid session data", err)
	}

	apply := func(ctx context.Context, sessions store.SessionStore, goals store.GoalStore) error {
		if goalID != nil {
			goal, err := goals.GetByID(ctx, *goalID)
			if err != nil {
				if store.IsNotFoundError(err) {
					return fmt.Errorf("%w: goal %s not found", store.ErrInvalidReference, goalID)
				}
				return err
			}
			if goal.UserID != userID {
				return fmt.Errorf(
					"%w: goal %s is not owned by user %s",
					store.ErrInvalidReference,
					goalID,
					userID,
				)
			}
		}

		return sessions.Create(ctx, session)
	}

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return apply(ctx, s.sessionStore.WithTx(tx), s.goalStore.WithTx(tx))
		})
	} else {
		err = apply(ctx, s.sessionStore, s.goalStore)
	}
	if err != nil {
		return nil, newServiceError("log_session", "failed to record session", err)
	}

	s.logger.Debug("study session logged",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("subject", subject))
	return session, nil
}

// ListSessions implements StudyService.ListSessions
func (s *studyServiceImpl) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudySession, error) {
	sessions, err := s.sessionStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, newServiceError("list_sessions", "failed to list sessions", err)
	}
	return sessions, nil
}
