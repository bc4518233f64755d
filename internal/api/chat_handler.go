package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/qinwen/learning-buddy-api/internal/api/shared"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/service"
)

// ChatRequest represents the request body for sending a chat message.
type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required,min=1"`
}

// ChatTurnResponse represents one message/response pair in a chat history.
type ChatTurnResponse struct {
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Timestamp   time.Time `json:"timestamp"`
}

// ChatHandler handles chat HTTP requests.
type ChatHandler struct {
	chatService service.ChatService
	validator   *validator.Validate
	// historyLimit bounds the history list in responses; the stored log
	// itself is unbounded.
	historyLimit int
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, historyLimit int) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		validator:    validator.New(),
		historyLimit: historyLimit,
	}
}

// Chat handles POST /api/chat requests. The assistant reply comes from the
// injected responder; this handler only records and returns the turn.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := parseUUIDParam(w, r, "user ID", req.UserID)
	if !ok {
		return
	}

	turn, history, err := h.chatService.RecordTurn(r.Context(), userID, req.Message)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"response": turn.AIResponse,
		"history":  h.historyToResponse(history),
	})
}

// ChatHistory handles GET /api/chat/history?user_id=… requests.
func (h *ChatHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user ID", r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	history, err := h.chatService.History(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"history": h.historyToResponse(history),
	})
}

// historyToResponse converts chat turns to response DTOs, keeping only the
// most recent turns up to the configured limit while preserving insertion
// order.
func (h *ChatHandler) historyToResponse(turns []*domain.ChatTurn) []ChatTurnResponse {
	if len(turns) > h.historyLimit {
		turns = turns[len(turns)-h.historyLimit:]
	}

	responses := make([]ChatTurnResponse, 0, len(turns))
	for _, turn := range turns {
		responses = append(responses, ChatTurnResponse{
			UserMessage: turn.UserMessage,
			AIResponse:  turn.AIResponse,
			Timestamp:   turn.CreatedAt,
		})
	}
	return responses
}
