package api

import (
	"errors"
	"net/http"

	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Illegal goal lifecycle transitions
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, domain.ErrGoalStatusTerminal):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrInvalidReference):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrGoalNotFound):
		return "Goal not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, domain.ErrGoalStatusTerminal):
		return "Goal status cannot change once completed or cancelled"

	case errors.Is(err, store.ErrInvalidReference):
		return "Referenced goal does not exist or belongs to another user"

	case errors.Is(err, domain.ErrGoalTitleEmpty):
		return "Goal title cannot be empty"

	case errors.Is(err, domain.ErrGoalPriorityRange):
		return "Goal priority must be between 1 and 3"

	case errors.Is(err, domain.ErrInvalidGoalStatus):
		return "Invalid goal status"

	case errors.Is(err, domain.ErrSessionSubjectEmpty):
		return "Session subject cannot be empty"

	case errors.Is(err, domain.ErrSessionDurationRange):
		return "Session duration must be between 1 and 480 minutes"

	case errors.Is(err, domain.ErrChatTurnMessageEmpty):
		return "Message cannot be empty"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
