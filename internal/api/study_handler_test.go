package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSessionEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	userID := uuid.New()

	rr := doJSON(t, env.studyHandler.LogSession, http.MethodPost, "/api/study/session",
		LogSessionRequest{
			UserID:          userID.String(),
			Subject:         "Math",
			DurationMinutes: 60,
			Notes:           "integrals",
			SessionDate:     "2026-03-14",
		})

	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])

	session, ok := body["session"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Math", session["subject"])
	assert.Equal(t, float64(60), session["duration_minutes"])
	assert.Equal(t, "2026-03-14", session["session_date"])
}

func TestLogSessionEndpointValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	userID := uuid.New()

	// Zero duration never reaches the service.
	rr := doJSON(t, env.studyHandler.LogSession, http.MethodPost, "/api/study/session",
		LogSessionRequest{UserID: userID.String(), Subject: "Math"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Duration above the bound is caught by the ledger rules.
	rr = doJSON(t, env.studyHandler.LogSession, http.MethodPost, "/api/study/session",
		LogSessionRequest{UserID: userID.String(), Subject: "Math", DurationMinutes: 500})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Session duration must be between 1 and 480 minutes",
		decodeBody(t, rr)["error"])

	// Linking a goal that belongs to another user is rejected.
	otherGoal, err := env.goalService.CreateGoal(
		context.Background(), uuid.New(), "not yours", "", "math", 2, nil,
	)
	require.NoError(t, err)
	rr = doJSON(t, env.studyHandler.LogSession, http.MethodPost, "/api/study/session",
		LogSessionRequest{
			UserID:          userID.String(),
			Subject:         "Math",
			DurationMinutes: 60,
			GoalID:          otherGoal.ID.String(),
		})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Referenced goal does not exist or belongs to another user",
		decodeBody(t, rr)["error"])
}

func TestListSessionsEndpointTruncates(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	// Five sessions against a handler limit of three.
	for i := 0; i < 5; i++ {
		date := time.Date(2026, 3, 10+i, 0, 0, 0, 0, time.UTC)
		_, err := env.studyService.LogSession(ctx, userID, "Math", 30, nil, "", &date)
		require.NoError(t, err)
	}

	rr := doJSON(t, env.studyHandler.ListSessions, http.MethodGet,
		"/api/study/sessions?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	sessions, ok := decodeBody(t, rr)["sessions"].([]any)
	require.True(t, ok)
	require.Len(t, sessions, 3, "response is truncated to the recent limit")
	assert.Equal(t, "2026-03-14", sessions[0].(map[string]any)["session_date"],
		"most recent session first")
}

func TestStatisticsEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	env.studyHandler.now = func() time.Time { return now }

	for _, s := range []struct {
		subject string
		minutes int
		date    time.Time
	}{
		{"Math", 60, now},
		{"Math", 30, now.AddDate(0, 0, -1)},
		{"English", 30, now.AddDate(0, 0, -2)},
		// Outside the current month; excluded from totals but irrelevant
		// to the streak window anyway.
		{"Math", 45, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
	} {
		date := s.date
		_, err := env.studyService.LogSession(ctx, userID, s.subject, s.minutes, nil, "", &date)
		require.NoError(t, err)
	}

	rr := doJSON(t, env.studyHandler.Statistics, http.MethodGet,
		"/api/study/statistics?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	stats, ok := decodeBody(t, rr)["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(120), stats["total_minutes"])
	assert.Equal(t, float64(3), stats["study_streak_days"])

	breakdown, ok := stats["subject_breakdown"].([]any)
	require.True(t, ok)
	require.Len(t, breakdown, 2)
	first := breakdown[0].(map[string]any)
	assert.Equal(t, "Math", first["subject"])
	assert.Equal(t, float64(90), first["total_minutes"])
	assert.Equal(t, float64(75), first["percentage"])
}

func TestStatisticsEndpointExplicitMonth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	env.studyHandler.now = func() time.Time {
		return time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	}

	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	_, err := env.studyService.LogSession(ctx, userID, "Math", 45, nil, "", &date)
	require.NoError(t, err)

	rr := doJSON(t, env.studyHandler.Statistics, http.MethodGet,
		"/api/study/statistics?user_id="+userID.String()+"&month=2026-02", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	stats, ok := decodeBody(t, rr)["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(45), stats["total_minutes"])
	assert.Equal(t, float64(0), stats["study_streak_days"],
		"streak is always relative to the current date, not the window")

	rr = doJSON(t, env.studyHandler.Statistics, http.MethodGet,
		"/api/study/statistics?user_id="+userID.String()+"&month=March", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
