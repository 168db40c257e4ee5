package user

import (
	"time"

	"github.com/joefazee/placement/models"
)

// Config represents the configuration for the user module
type Config struct {
	SymmetricKey    string        `env:"SYMMETRIC_KEY"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	InitialTokens   int64         `env:"INITIAL_TOKENS" env-default:"100000"`
	PermissionTTL   time.Duration `env:"PERMISSION_CACHE_TTL" env-default:"30m"`
	LeaderboardTTL  time.Duration `env:"LEADERBOARD_CACHE_TTL" env-default:"30s"`
	LeaderboardSize int           `env:"LEADERBOARD_SIZE" env-default:"20"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{len(c.SymmetricKey) == 32, models.ErrInvalidSymmetricKey},
		{c.TokenTTL > 0, models.ErrInvalidTokenTTL},
		{c.InitialTokens >= 0, models.ErrInvalidInitialTokens},
		{c.LeaderboardSize > 0 && c.LeaderboardSize <= 100, models.ErrInvalidLeaderboardSize},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		SymmetricKey:    "12345678901234567890123456789012",
		TokenTTL:        24 * time.Hour,
		InitialTokens:   models.DefaultTokenGrant,
		PermissionTTL:   30 * time.Minute,
		LeaderboardTTL:  30 * time.Second,
		LeaderboardSize: 20,
	}
}
