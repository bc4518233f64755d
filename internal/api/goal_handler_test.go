package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qinwen/learning-buddy-api/internal/domain"
)

func TestCreateGoalEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	userID := uuid.New()

	rr := doJSON(t, env.goalHandler.CreateGoal, http.MethodPost, "/api/goals", CreateGoalRequest{
		UserID:     userID.String(),
		Title:      "Pass calculus",
		Category:   "math",
		Priority:   3,
		TargetDate: "2026-06-15",
	})

	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])

	goal, ok := body["goal"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pass calculus", goal["title"])
	assert.Equal(t, "active", goal["status"])
	assert.Equal(t, float64(3), goal["priority"])
	assert.Equal(t, "2026-06-15", goal["target_date"])
}

func TestCreateGoalEndpointRejectsBadInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	userID := uuid.New()

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	env.goalHandler.CreateGoal(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["success"])

	// Missing title.
	rr = doJSON(t, env.goalHandler.CreateGoal, http.MethodPost, "/api/goals", CreateGoalRequest{
		UserID: userID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Priority out of range.
	rr = doJSON(t, env.goalHandler.CreateGoal, http.MethodPost, "/api/goals", CreateGoalRequest{
		UserID:   userID.String(),
		Title:    "Pass calculus",
		Priority: 7,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unparseable user ID.
	rr = doJSON(t, env.goalHandler.CreateGoal, http.MethodPost, "/api/goals", CreateGoalRequest{
		UserID: "not-a-uuid",
		Title:  "Pass calculus",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid user ID", body["error"])

	// Unparseable goal ID on delete takes the same path.
	rr = doJSON(t, env.goalHandler.DeleteGoal, http.MethodDelete,
		"/api/goals?goal_id=42", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid goal ID", decodeBody(t, rr)["error"])
}

func TestUpdateGoalStatusEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	userID := uuid.New()

	goal, err := env.goalService.CreateGoal(
		context.Background(), userID, "Pass calculus", "", "math", 2, nil,
	)
	require.NoError(t, err)

	rr := doJSON(t, env.goalHandler.UpdateGoalStatus, http.MethodPut, "/api/goals/status",
		UpdateGoalStatusRequest{GoalID: goal.ID.String(), Status: "completed"})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	updated, ok := body["goal"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", updated["status"])

	// Terminal goals reject further transitions with a conflict.
	rr = doJSON(t, env.goalHandler.UpdateGoalStatus, http.MethodPut, "/api/goals/status",
		UpdateGoalStatusRequest{GoalID: goal.ID.String(), Status: "active"})
	require.Equal(t, http.StatusConflict, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Goal status cannot change once completed or cancelled", body["error"])
}

func TestUpdateGoalStatusEndpointErrors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	// Unknown goal.
	rr := doJSON(t, env.goalHandler.UpdateGoalStatus, http.MethodPut, "/api/goals/status",
		UpdateGoalStatusRequest{GoalID: uuid.NewString(), Status: "completed"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Goal not found", decodeBody(t, rr)["error"])

	// Status outside the allowed set fails request validation.
	rr = doJSON(t, env.goalHandler.UpdateGoalStatus, http.MethodPut, "/api/goals/status",
		UpdateGoalStatusRequest{GoalID: uuid.NewString(), Status: "paused"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteGoalEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	goal, err := env.goalService.CreateGoal(
		context.Background(), uuid.New(), "Pass calculus", "", "math", 2, nil,
	)
	require.NoError(t, err)

	rr := doJSON(t, env.goalHandler.DeleteGoal, http.MethodDelete,
		"/api/goals?goal_id="+goal.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decodeBody(t, rr)["success"])

	// Second delete of the same goal reports not found.
	rr = doJSON(t, env.goalHandler.DeleteGoal, http.MethodDelete,
		"/api/goals?goal_id="+goal.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListGoalsEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := env.goalService.CreateGoal(ctx, userID, "first", "", "math", 2, nil)
	require.NoError(t, err)
	second, err := env.goalService.CreateGoal(ctx, userID, "second", "", "math", 2, nil)
	require.NoError(t, err)
	_, err = env.goalService.UpdateGoalStatus(ctx, second.ID, domain.GoalStatusCompleted)
	require.NoError(t, err)

	rr := doJSON(t, env.goalHandler.ListGoals, http.MethodGet,
		"/api/goals?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	goals, ok := decodeBody(t, rr)["goals"].([]any)
	require.True(t, ok)
	require.Len(t, goals, 2)
	assert.Equal(t, first.ID.String(), goals[0].(map[string]any)["id"])

	rr = doJSON(t, env.goalHandler.ListGoals, http.MethodGet,
		"/api/goals?user_id="+userID.String()+"&status=completed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	goals, ok = decodeBody(t, rr)["goals"].([]any)
	require.True(t, ok)
	require.Len(t, goals, 1)
	assert.Equal(t, second.ID.String(), goals[0].(map[string]any)["id"])

	rr = doJSON(t, env.goalHandler.ListGoals, http.MethodGet,
		"/api/goals?user_id="+userID.String()+"&status=paused", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGoalProgressEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	// No goals: the percentage field is omitted entirely.
	rr := doJSON(t, env.goalHandler.GoalProgress, http.MethodGet,
		"/api/goals/progress?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	prog, ok := decodeBody(t, rr)["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), prog["total_goals"])
	_, present := prog["completed_percentage"]
	assert.False(t, present, "percentage is undefined with no goals")

	_, err := env.goalService.CreateGoal(ctx, userID, "first", "", "math", 2, nil)
	require.NoError(t, err)
	second, err := env.goalService.CreateGoal(ctx, userID, "second", "", "math", 2, nil)
	require.NoError(t, err)
	_, err = env.goalService.UpdateGoalStatus(ctx, second.ID, domain.GoalStatusCompleted)
	require.NoError(t, err)

	rr = doJSON(t, env.goalHandler.GoalProgress, http.MethodGet,
		"/api/goals/progress?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	prog, ok = decodeBody(t, rr)["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), prog["total_goals"])
	assert.Equal(t, float64(1), prog["completed_goals"])
	assert.Equal(t, float64(1), prog["active_goals"])
	assert.Equal(t, float64(50), prog["completed_percentage"])
}
