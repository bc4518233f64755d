package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"goal not found", store.ErrGoalNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"invalid transition", store.ErrInvalidTransition, http.StatusConflict},
		{"terminal status", domain.ErrGoalStatusTerminal, http.StatusConflict},
		{"validation failure", domain.ErrSessionDurationRange, http.StatusBadRequest},
		{"malformed identifier", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid reference", store.ErrInvalidReference, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))

			// Wrapping must not change the mapping.
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.Equal(t, tt.want, MapErrorToStatusCode(wrapped))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Goal not found", GetSafeErrorMessage(store.ErrGoalNotFound))
	assert.Equal(t, "Goal status cannot change once completed or cancelled",
		GetSafeErrorMessage(store.ErrInvalidTransition))
	assert.Equal(t, "Session duration must be between 1 and 480 minutes",
		GetSafeErrorMessage(domain.ErrSessionDurationRange))
	assert.Equal(t, "Referenced goal does not exist or belongs to another user",
		GetSafeErrorMessage(store.ErrInvalidReference))
	assert.Equal(t, "Invalid identifier",
		GetSafeErrorMessage(fmt.Errorf("%w: user ID", domain.ErrInvalidID)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Internal details never leak through to the client message.
	internal := fmt.Errorf("pq: duplicate key value violates constraint %q: %w",
		"goals_pkey", errors.New("SQLSTATE 23505"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}
