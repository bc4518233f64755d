package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// Responder produces an assistant reply for a user message. Response
// generation lives outside this service; implementations are injected at
// wiring time (a canned responder in development, a model-backed one in
// deployment).
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// ChatService provides the append-only chat history log.
type ChatService interface {
	// RecordTurn obtains a reply for the message via the Responder,
	// appends the turn to the user's history, and returns the turn
	// together with the updated history in insertion order.
	RecordTurn(
		ctx context.Context,
		userID uuid.UUID,
		message string,
	) (*domain.ChatTurn, []*domain.ChatTurn, error)

	// History returns the user's chat turns in insertion order.
	History(ctx context.Context, userID uuid.UUID) ([]*domain.ChatTurn, error)
}

// chatServiceImpl implements the ChatService interface.
type chatServiceImpl struct {
	chatStore store.ChatStore
	responder Responder
	logger    *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(
	chatStore store.ChatStore,
	responder Responder,
	log *slog.Logger,
) (ChatService, error) {
	if chatStore == nil {
		return nil, errors.New("chat store cannot be nil")
	}
	if responder == nil {
		return nil, errors.New("responder cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &chatServiceImpl{
		chatStore: chatStore,
		responder: responder,
		logger:    log.With(slog.String("component", "chat_service")),
	}, nil
}

// RecordTurn implements ChatService.RecordTurn
func (s *chatServiceImpl) RecordTurn(
	ctx context.Context,
	userID uuid.UUID,
	message string,
) (*domain.ChatTurn, []*domain.ChatTurn, error) {
	if message == "" {
		return nil, nil, newServiceError(
			"record_turn",
			"empty message",
			domain.ErrChatTurnMessageEmpty,
		)
	}

	response, err := s.responder.Respond(ctx, message)
	if err != nil {
		return nil, nil, newServiceError("record_turn", "responder failed", err)
	}

	turn, err := domain.NewChatTurn(userID, message, response)
	if err != nil {
		return nil, nil, newServiceError("record_turn", "invalid chat turn", err)
	}

	if err := s.chatStore.Append(ctx, turn); err != nil {
		return nil, nil, newServiceError("record_turn", "failed to append chat turn", err)
	}

	history, err := s.chatStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, newServiceError("record_turn", "failed to load chat history", err)
	}

	s.logger.Debug("chat turn recorded",
		slog.String("turn_id", turn.ID.String()),
		slog.String("user_id", userID.String()))
	return turn, history, nil
}

// History implements ChatService.History
func (s *chatServiceImpl) History(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.ChatTurn, error) {
	history, err := s.chatStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, newServiceError("chat_history", "failed to load chat history", err)
	}
	return history, nil
}
