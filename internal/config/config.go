package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"  validate:"required"`
	Deck      DeckConfig      `mapstructure:"deck"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// SchedulerConfig controls how review dates are computed.
type SchedulerConfig struct {
	// Timezone is the IANA zone whose calendar date is "today".
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`

	// SM-2 overrides. Zero keeps the classic value.
	MinEaseFactor     float64 `mapstructure:"min_ease_factor"     validate:"gte=0"`
	DefaultEaseFactor float64 `mapstructure:"default_ease_factor" validate:"gte=0"`
	FailureInterval   int     `mapstructure:"failure_interval"    validate:"gte=0"`
	FirstInterval     int     `mapstructure:"first_interval"      validate:"gte=0"`
	SecondInterval    int     `mapstructure:"second_interval"     validate:"gte=0"`
}

// DeckConfig bounds the size of a study deck.
type DeckConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"gt=0,ltefield=MaxLimit"`
	MaxLimit     int `mapstructure:"max_limit"     validate:"gt=0"`
}

// RateLimitConfig throttles review submissions per learner.
type RateLimitConfig struct {
	ReviewsPerSecond float64 `mapstructure:"reviews_per_second" validate:"gt=0"`
	Burst            int     `mapstructure:"burst"              validate:"gt=0"`
}
