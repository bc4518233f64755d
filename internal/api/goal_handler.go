package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/qinwen/learning-buddy-api/internal/api/shared"
	"github.com/qinwen/learning-buddy-api/internal/domain"
	"github.com/qinwen/learning-buddy-api/internal/progress"
	"github.com/qinwen/learning-buddy-api/internal/service"
)

// dateLayout is the wire format for calendar dates (target_date, session_date).
const dateLayout = "2006-01-02"

// CreateGoalRequest represents the request body for creating a new goal.
type CreateGoalRequest struct {
	UserID      string `json:"user_id"     validate:"required"`
	Title       string `json:"title"       validate:"required,min=1"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"    validate:"omitempty,min=1,max=3"`
	TargetDate  string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateGoalStatusRequest represents the request body for a goal status change.
type UpdateGoalStatusRequest struct {
	GoalID string `json:"goal_id" validate:"required"`
	Status string `json:"status"  validate:"required,oneof=active completed cancelled"`
}

// GoalResponse represents the response data for a goal.
type GoalResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	TargetDate  string    `json:"target_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	goalService service.GoalService
	aggregator  *progress.Aggregator
	validator   *validator.Validate
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService, aggregator *progress.Aggregator) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		aggregator:  aggregator,
		validator:   validator.New(),
	}
}

// CreateGoal handles POST /api/goals requests.
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
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

	var targetDate *time.Time
	if req.TargetDate != "" {
		t, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid target date")
			return
		}
		targetDate = &t
	}

	goal, err := h.goalService.CreateGoal(
		r.Context(),
		userID,
		req.Title,
		req.Description,
		req.Category,
		req.Priority,
		targetDate,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, map[string]any{
		"goal": goalToResponse(goal),
	})
}

// UpdateGoalStatus handles PUT /api/goals/status requests.
func (h *GoalHandler) UpdateGoalStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoalStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goalID, ok := parseUUIDParam(w, r, "goal ID", req.GoalID)
	if !ok {
		return
	}

	goal, err := h.goalService.UpdateGoalStatus(r.Context(), goalID, domain.GoalStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"goal": goalToResponse(goal),
	})
}

// DeleteGoal handles DELETE /api/goals?goal_id=… requests.
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := parseUUIDParam(w, r, "goal ID", r.URL.Query().Get("goal_id"))
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), goalID); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{})
}

// ListGoals handles GET /api/goals?user_id=…&status=… requests.
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user ID", r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	var status *domain.GoalStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.GoalStatus(raw)
		if !domain.IsValidGoalStatus(s) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal status")
			return
		}
		status = &s
	}

	goals, err := h.goalService.ListGoals(r.Context(), userID, status)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	responses := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, goalToResponse(goal))
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"goals": responses,
	})
}

// GoalProgress handles GET /api/goals/progress?user_id=… requests.
func (h *GoalHandler) GoalProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user ID", r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	goalProgress, err := h.aggregator.GoalProgress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"progress": goalProgress,
	})
}

// goalToResponse converts a domain.Goal to a GoalResponse.
func goalToResponse(goal *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:          goal.ID.String(),
		UserID:      goal.UserID.String(),
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		Priority:    goal.Priority,
		Status:      string(goal.Status),
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
	if goal.TargetDate != nil {
		resp.TargetDate = goal.TargetDate.Format(dateLayout)
	}
	return resp
}
