package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/qinwen/learning-buddy-api/internal/config"
	"github.com/qinwen/learning-buddy-api/internal/platform/memory"
	"github.com/qinwen/learning-buddy-api/internal/platform/postgres"
	"github.com/qinwen/learning-buddy-api/internal/progress"
	"github.com/qinwen/learning-buddy-api/internal/service"
	"github.com/qinwen/learning-buddy-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the in-memory storage backend is selected.
	db *sql.DB

	goalStore    store.GoalStore
	sessionStore store.SessionStore
	chatStore    store.ChatStore

	goalService  service.GoalService
	studyService service.StudyService
	chatService  service.ChatService
	aggregator   *progress.Aggregator
}

// newApplication wires stores, services, and the aggregator according to the
// configuration. An empty database URL selects the in-memory backend, which
// is intended for local development only.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	if cfg.Database.URL != "" {
		db, err := openDatabase(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
		app.goalStore = postgres.NewPostgresGoalStore(db, log)
		app.sessionStore = postgres.NewPostgresSessionStore(db, log)
		app.chatStore = postgres.NewPostgresChatStore(db, log)
	} else {
		app.goalStore = memory.NewGoalStore()
		app.sessionStore = memory.NewSessionStore()
		app.chatStore = memory.NewChatStore()
	}

	var err error
	app.goalService, err = service.NewGoalService(app.goalStore, app.db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal service: %w", err)
	}

	app.studyService, err = service.NewStudyService(app.sessionStore, app.goalStore, app.db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	app.chatService, err = service.NewChatService(app.chatStore, newStudyTipResponder(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	app.aggregator, err = progress.NewAggregator(
		app.goalStore,
		app.sessionStore,
		cfg.Progress.MaxStreakDays,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress aggregator: %w", err)
	}

	return app, nil
}

// Close releases the application's resources.
func (app *application) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
