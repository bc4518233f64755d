package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/platform/logger"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// PostgresChatStore implements the store.ChatStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChatStore creates a new PostgreSQL implementation of the ChatStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresChatStore(db store.DBTX, logger *slog.Logger) *PostgresChatStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChatStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_store")),
	}
}

// Ensure PostgresChatStore implements store.ChatStore interface
var _ store.ChatStore = (*PostgresChatStore)(nil)

// Append implements store.ChatStore.Append
func (s *PostgresChatStore) Append(ctx context.Context, turn *domain.ChatTurn) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := turn.Validate(); err != nil {
		log.Warn("chat turn validation failed during append",
			slog.String("error", err.Error()),
			slog.String("turn_id", turn.ID.String()))
		return err
	}

	query := `
		INSERT INTO chat_history (id, user_id, user_message, ai_response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		turn.ID,
		turn.UserID,
		turn.UserMessage,
		turn.AIResponse,
		turn.CreatedAt,
	)

	if err != nil {
		log.Error("failed to append chat turn",
			slog.String("error", err.Error()),
			slog.String("turn_id", turn.ID.String()),
			slog.String("user_id", turn.UserID.String()))
		return store.NewStoreError("chat_turn", "append", "failed to insert turn", MapError(err))
	}

	log.Debug("chat turn appended",
		slog.String("turn_id", turn.ID.String()),
		slog.String("user_id", turn.UserID.String()))
	return nil
}

// ListByUser implements store.ChatStore.ListByUser
// Turns are returned in insertion order.
func (s *PostgresChatStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.ChatTurn, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, user_message, ai_response, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list chat history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("chat_turn", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	turns := make([]*domain.ChatTurn, 0)
	for rows.Next() {
		var turn domain.ChatTurn
		err := rows.Scan(
			&turn.ID,
			&turn.UserID,
			&turn.UserMessage,
			&turn.AIResponse,
			&turn.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan chat turn row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("chat_turn", "list", "row scan failed", MapError(err))
		}
		turns = append(turns, &turn)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("chat_turn", "list", "row iteration failed", MapError(err))
	}

	return turns, nil
}

// WithTx implements store.ChatStore.WithTx
func (s *PostgresChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return &PostgresChatStore{
		db:     tx,
		logger: s.logger,
	}
}
