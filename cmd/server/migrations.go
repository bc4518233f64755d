package main

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/qinwen/learning-buddy-api/migrations"
)

// runMigrations applies the embedded goose migrations against the
// application's database. Supported commands: up, down, status.
func runMigrations(app *application, command string) error {
	if app.db == nil {
		return fmt.Errorf("migrations require a database URL (in-memory mode selected)")
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(app.db, ".")
	case "down":
		return goose.Down(app.db, ".")
	case "status":
		return goose.Status(app.db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
