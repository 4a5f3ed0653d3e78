package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1), cfg.MinDailyGrowth)
	assert.Equal(t, int64(18), cfg.MaxDailyGrowth)
	assert.Equal(t, int64(1), cfg.MinChallengeAmount)
	assert.Equal(t, int64(20), cfg.MaxChallengeAmount)
	assert.Equal(t, int64(5), cfg.DefaultChallengeAmount)
	assert.Equal(t, 15*time.Minute, cfg.ChallengeProposalTTL)
	assert.Equal(t, 10, cfg.LeaderboardLimit)
	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("DATABASE_NAME", "grower")
	t.Setenv("MIN_DAILY_GROWTH", "3")
	t.Setenv("MAX_DAILY_GROWTH", "7")
	t.Setenv("LEADERBOARD_LIMIT", "25")
	t.Setenv("CHALLENGE_PROPOSAL_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(3), cfg.MinDailyGrowth)
	assert.Equal(t, int64(7), cfg.MaxDailyGrowth)
	assert.Equal(t, 25, cfg.LeaderboardLimit)
	assert.Equal(t, 2*time.Minute, cfg.ChallengeProposalTTL)
	assert.Equal(t, "postgres://localhost:5432/grower?sslmode=disable", cfg.GetDatabaseURL())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN is required")
}

func TestLoad_TestEnvironmentStillNeedsToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN is required")
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("MAX_DAILY_GROWTH", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"missing token", func(c *Config) { c.DiscordToken = "" }, "DISCORD_TOKEN is required"},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL is required"},
		{"growth bounds inverted", func(c *Config) { c.MinDailyGrowth = 10; c.MaxDailyGrowth = 2 }, "MIN_DAILY_GROWTH"},
		{"negative growth", func(c *Config) { c.MinDailyGrowth = -1 }, "must not be negative"},
		{"zero challenge minimum", func(c *Config) { c.MinChallengeAmount = 0 }, "at least 1"},
		{"challenge bounds inverted", func(c *Config) { c.MinChallengeAmount = 30 }, "must not exceed"},
		{"default amount outside bounds", func(c *Config) { c.DefaultChallengeAmount = 50 }, "DEFAULT_CHALLENGE_AMOUNT"},
		{"zero ttl", func(c *Config) { c.ChallengeProposalTTL = 0 }, "CHALLENGE_PROPOSAL_TTL"},
		{"zero leaderboard", func(c *Config) { c.LeaderboardLimit = 0 }, "LEADERBOARD_LIMIT"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
