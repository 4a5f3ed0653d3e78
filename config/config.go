package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"grower/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string `env:"DISCORD_TOKEN"`

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Growth configuration
	MinDailyGrowth int64 `env:"MIN_DAILY_GROWTH" envDefault:"1"`
	MaxDailyGrowth int64 `env:"MAX_DAILY_GROWTH" envDefault:"18"`

	// Challenge configuration
	MinChallengeAmount     int64         `env:"MIN_CHALLENGE_AMOUNT" envDefault:"1"`
	MaxChallengeAmount     int64         `env:"MAX_CHALLENGE_AMOUNT" envDefault:"20"`
	DefaultChallengeAmount int64         `env:"DEFAULT_CHALLENGE_AMOUNT" envDefault:"5"`
	ChallengeProposalTTL   time.Duration `env:"CHALLENGE_PROPOSAL_TTL" envDefault:"15m"`

	// Leaderboard configuration
	LeaderboardLimit int `env:"LEADERBOARD_LIMIT" envDefault:"10"`

	// Health check listener
	Port int `env:"PORT" envDefault:"10000"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

// Load parses the configuration from environment variables and validates it.
// The returned value is treated as immutable and handed to every component
// that needs it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewTestConfig returns a configuration with the default bounds, suitable for tests
func NewTestConfig() *Config {
	return &Config{
		DiscordToken:           "test-token",
		DatabaseURL:            "postgres://localhost:5432",
		MinDailyGrowth:         1,
		MaxDailyGrowth:         18,
		MinChallengeAmount:     1,
		MaxChallengeAmount:     20,
		DefaultChallengeAmount: 5,
		ChallengeProposalTTL:   15 * time.Minute,
		LeaderboardLimit:       10,
		Port:                   10000,
		LogLevel:               "info",
		Environment:            "test",
	}
}

// Validate checks required values and the consistency of all bounds
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.MinDailyGrowth < 0 {
		return fmt.Errorf("MIN_DAILY_GROWTH must not be negative, got %d", c.MinDailyGrowth)
	}
	if c.MinDailyGrowth > c.MaxDailyGrowth {
		return fmt.Errorf("MIN_DAILY_GROWTH (%d) must not exceed MAX_DAILY_GROWTH (%d)", c.MinDailyGrowth, c.MaxDailyGrowth)
	}
	if c.MinChallengeAmount < 1 {
		return fmt.Errorf("MIN_CHALLENGE_AMOUNT must be at least 1, got %d", c.MinChallengeAmount)
	}
	if c.MinChallengeAmount > c.MaxChallengeAmount {
		return fmt.Errorf("MIN_CHALLENGE_AMOUNT (%d) must not exceed MAX_CHALLENGE_AMOUNT (%d)", c.MinChallengeAmount, c.MaxChallengeAmount)
	}
	if c.DefaultChallengeAmount < c.MinChallengeAmount || c.DefaultChallengeAmount > c.MaxChallengeAmount {
		return fmt.Errorf("DEFAULT_CHALLENGE_AMOUNT (%d) must be between %d and %d", c.DefaultChallengeAmount, c.MinChallengeAmount, c.MaxChallengeAmount)
	}
	if c.ChallengeProposalTTL <= 0 {
		return fmt.Errorf("CHALLENGE_PROPOSAL_TTL must be positive")
	}
	if c.LeaderboardLimit < 1 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be at least 1, got %d", c.LeaderboardLimit)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	return nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the bot runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
