package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChatTurn-specific validation errors.
var (
	ErrChatTurnIDEmpty       = fmt.Errorf("%w: chat turn ID cannot be empty", ErrValidation)
	ErrChatTurnUserIDEmpty   = fmt.Errorf("%w: chat turn user ID cannot be empty", ErrValidation)
	ErrChatTurnMessageEmpty  = fmt.Errorf("%w: chat message cannot be empty", ErrValidation)
	ErrChatTurnResponseEmpty = fmt.Errorf("%w: chat response cannot be empty", ErrValidation)
)

// ChatTurn is one message/response pair in a user's conversation log.
// Turns are append-only and retrieved in insertion order.
type ChatTurn struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"timestamp"`
}

// NewChatTurn creates a new ChatTurn for the given user.
// Returns an error if validation fails.
func NewChatTurn(userID uuid.UUID, userMessage, aiResponse string) (*ChatTurn, error) {
	turn := &ChatTurn{
		ID:          uuid.New(),
		UserID:      userID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		CreatedAt:   time.Now().UTC(),
	}

	if err := turn.Validate(); err != nil {
		return nil, err
	}

	return turn, nil
}

// Validate checks if the ChatTurn has valid data.
func (c *ChatTurn) Validate() error {
	if c.ID == uuid.Nil {
		return ErrChatTurnIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrChatTurnUserIDEmpty
	}

	if c.UserMessage == "" {
		return ErrChatTurnMessageEmpty
	}

	if c.AIResponse == "" {
		return ErrChatTurnResponseEmpty
	}

	return nil
}
