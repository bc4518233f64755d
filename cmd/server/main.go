// Package main implements the entry point for the Learning Buddy API
// server, which manages users' learning goals, study session ledger, chat
// history, and derived progress statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/qinwen/learning-buddy-api/internal/config"
	"github.com/qinwen/learning-buddy-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run database migrations (up, down, status) and exit",
	)
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if *migrateCmd != "" {
		if err := runMigrations(app, *migrateCmd); err != nil {
			slog.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		slog.Info("migration completed", "command", *migrateCmd)
		return
	}

	if err := app.Serve(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration, sets up logging, connects storage, and
// wires the application components together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage", storageMode(cfg))

	return newApplication(cfg, appLogger)
}

// storageMode names the selected storage backend for startup logging.
func storageMode(cfg *config.Config) string {
	if cfg.Database.URL == "" {
		return "memory"
	}
	return "postgres"
}
