package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Progress ProgressConfig `mapstructure:"progress" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL selects the in-memory storage backend, which is intended
// for local development and tests only.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// ProgressConfig tunes the progress aggregation and presentation behavior.
type ProgressConfig struct {
	// MaxStreakDays caps the reported study streak length.
	MaxStreakDays int `mapstructure:"max_streak_days" validate:"required,gte=1"`

	// RecentSessionsLimit bounds how many sessions the sessions endpoint
	// returns. This is a presentation limit only: aggregates are always
	// computed over full history.
	RecentSessionsLimit int `mapstructure:"recent_sessions_limit" validate:"required,gte=1"`

	// ChatHistoryLimit bounds how many chat turns are returned with a
	// chat response. Presentation limit only; the log itself is unbounded.
	ChatHistoryLimit int `mapstructure:"chat_history_limit" validate:"required,gte=1"`
}
