package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/platform/logger"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
// It appends a new study session to the ledger, handling domain validation.
// Returns store.ErrInvalidReference if the goal_id foreign key does not resolve.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (id, user_id, goal_id, subject, duration_minutes, notes, session_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		nullableUUID(session.GoalID),
		session.Subject,
		session.DurationMinutes,
		session.Notes,
		session.SessionDate,
		session.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during session creation",
				slog.String("error", err.Error()),
				slog.String("session_id", session.ID.String()))
			return fmt.Errorf("%w: goal %v not found", store.ErrInvalidReference, session.GoalID)
		}

		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return store.NewStoreError(
			"study_session", "create", "failed to insert session", MapError(err),
		)
	}

	log.Info("study session recorded",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()),
		slog.String("subject", session.Subject),
		slog.Int("duration_minutes", session.DurationMinutes))
	return nil
}

// ListByUser implements store.SessionStore.ListByUser
// Sessions are returned most-recent-first by session date, then creation time.
// The full history is returned; callers truncate for presentation only.
func (s *PostgresSessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, goal_id, subject, duration_minutes, notes, session_date, created_at
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY session_date DESC, created_at DESC, seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list study sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("study_session", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.StudySession, 0)
	for rows.Next() {
		var session domain.StudySession
		var goalID uuid.NullUUID
		var notes sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&goalID,
			&session.Subject,
			&session.DurationMinutes,
			&notes,
			&session.SessionDate,
			&session.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan session row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(
				"study_session", "list", "row scan failed", MapError(err),
			)
		}

		if goalID.Valid {
			id := goalID.UUID
			session.GoalID = &id
		}
		session.Notes = notes.String

		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(
			"study_session", "list", "row iteration failed", MapError(err),
		)
	}

	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx
// It returns a new SessionStore that uses the provided transaction.
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableUUID converts an optional UUID into a driver-friendly value.
func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
