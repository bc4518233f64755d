package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/qinwen/learning-buddy-api/internal/api/shared"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/progress"
	"github.com/qinwen/learning-buddy-api/internal/service"
)

// monthLayout is the wire format for the optional statistics month parameter.
const monthLayout = "2006-01"

// LogSessionRequest represents the request body for recording a study session.
type LogSessionRequest struct {
	UserID          string `json:"user_id"          validate:"required"`
	Subject         string `json:"subject"          validate:"required,min=1"`
	DurationMinutes int    `json:"duration_minutes" validate:"required"`
	GoalID          string `json:"goal_id"          validate:"omitempty"`
	Notes           string `json:"notes"`
	SessionDate     string `json:"session_date"     validate:"omitempty,datetime=2006-01-02"`
}

// SessionResponse represents the response data for a study session.
type SessionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	GoalID          string    `json:"goal_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	SessionDate     string    `json:"session_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// StatisticsResponse combines windowed study statistics with the streak.
type StatisticsResponse struct {
	TotalMinutes     int                       `json:"total_minutes"`
	SubjectBreakdown []progress.SubjectMinutes `json:"subject_breakdown"`
	StudyStreakDays  int                       `json:"study_streak_days"`
}

// StudyHandler handles study session and statistics HTTP requests.
type StudyHandler struct {
	studyService service.StudyService
	aggregator   *progress.Aggregator
	validator    *validator.Validate
	// recentLimit bounds the sessions list in responses. Presentation only:
	// statistics and streaks always consume full history.
	recentLimit int
	// now supplies the reference instant for default dates and the
	// current-month statistics window; injectable for tests.
	now func() time.Time
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(
	studyService service.StudyService,
	aggregator *progress.Aggregator,
	recentLimit int,
) *StudyHandler {
	return &StudyHandler{
		studyService: studyService,
		aggregator:   aggregator,
		validator:    validator.New(),
		recentLimit:  recentLimit,
		now:          time.Now,
	}
}

// LogSession handles POST /api/study/session requests.
func (h *StudyHandler) LogSession(w http.ResponseWriter, r *http.Request) {
	var req LogSessionRequest
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

	var goalID *uuid.UUID
	if req.GoalID != "" {
		id, ok := parseUUIDParam(w, r, "goal ID", req.GoalID)
		if !ok {
			return
		}
		goalID = &id
	}

	var sessionDate *time.Time
	if req.SessionDate != "" {
		t, err := time.Parse(dateLayout, req.SessionDate)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session date")
			return
		}
		sessionDate = &t
	}

	session, err := h.studyService.LogSession(
		r.Context(),
		userID,
		req.Subject,
		req.DurationMinutes,
		goalID,
		req.Notes,
		sessionDate,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, map[string]any{
		"session": sessionToResponse(session),
	})
}

// ListSessions handles GET /api/study/sessions?user_id=… requests.
// The response list is truncated to the configured recent limit; this is a
// presentation bound, not a ledger bound.
func (h *StudyHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user ID", r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	sessions, err := h.studyService.ListSessions(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	if len(sessions) > h.recentLimit {
		sessions = sessions[:h.recentLimit]
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionToResponse(session))
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"sessions": responses,
	})
}

// Statistics handles GET /api/study/statistics?user_id=…&month=… requests.
// The optional month parameter (YYYY-MM) selects the statistics window;
// it defaults to the current calendar month. The streak is always computed
// as of the current date.
func (h *StudyHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user ID", r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	now := h.now()
	window := progress.MonthOf(now)
	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse(monthLayout, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid month")
			return
		}
		window = progress.MonthOf(t)
	}

	stats, err := h.aggregator.StudyStatistics(r.Context(), userID, window)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	streak, err := h.aggregator.StudyStreak(r.Context(), userID, now)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"statistics": StatisticsResponse{
			TotalMinutes:     stats.TotalMinutes,
			SubjectBreakdown: stats.SubjectBreakdown,
			StudyStreakDays:  streak,
		},
	})
}

// sessionToResponse converts a domain.StudySession to a SessionResponse.
func sessionToResponse(session *domain.StudySession) SessionResponse {
	resp := SessionResponse{
		ID:              session.ID.String(),
		UserID:          session.UserID.String(),
		Subject:         session.Subject,
		DurationMinutes: session.DurationMinutes,
		Notes:           session.Notes,
		SessionDate:     session.SessionDate.Format(dateLayout),
		CreatedAt:       session.CreatedAt,
	}
	if session.GoalID != nil {
		resp.GoalID = session.GoalID.String()
	}
	return resp
}
