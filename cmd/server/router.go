package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qinwen/learning-buddy-api/internal/api"
	apiMiddleware "github.com/qinwen/learning-buddy-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	goalHandler := api.NewGoalHandler(app.goalService, app.aggregator)
	studyHandler := api.NewStudyHandler(
		app.studyService,
		app.aggregator,
		app.config.Progress.RecentSessionsLimit,
	)
	chatHandler := api.NewChatHandler(app.chatService, app.config.Progress.ChatHistoryLimit)

	r.Route("/api", func(r chi.Router) {
		// Goal endpoints
		r.Post("/goals", goalHandler.CreateGoal)
		r.Get("/goals", goalHandler.ListGoals)
		r.Delete("/goals", goalHandler.DeleteGoal)
		r.Put("/goals/status", goalHandler.UpdateGoalStatus)
		r.Get("/goals/progress", goalHandler.GoalProgress)

		// Study session endpoints
		r.Post("/study/session", studyHandler.LogSession)
		r.Get("/study/sessions", studyHandler.ListSessions)
		r.Get("/study/statistics", studyHandler.Statistics)

		// Chat endpoints
		r.Post("/chat", chatHandler.Chat)
		r.Get("/chat/history", chatHandler.ChatHistory)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
