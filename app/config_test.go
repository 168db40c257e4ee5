package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/nexus"
	"github.com/joefazee/placement/models"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "placement")
	t.Setenv("SYMMETRIC_KEY", "abcdefghijklmnopqrstuvwxyz012345")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig(nexus.WithOnlyEnvironment())

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, 24*time.Hour, cfg.User.TokenTTL)
		assert.Equal(t, models.DefaultTokenGrant, cfg.User.InitialTokens)
		assert.Equal(t, 3, cfg.Betting.MaxTxRetries)
		assert.Equal(t, 8, cfg.Settlement.Concurrency)
		assert.Equal(t, cache.MemoryBackend, cfg.Cache.Backend)
		assert.False(t, cfg.Events.Enabled)
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APP_PORT", "9090")
		t.Setenv("SETTLEMENT_CONCURRENCY", "4")
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

		cfg, err := LoadConfig(nexus.WithOnlyEnvironment())

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, 4, cfg.Settlement.Concurrency)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	})

	t.Run("Missing database credentials", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_PASSWORD", "")

		_, err := LoadConfig(nexus.WithOnlyEnvironment())

		assert.ErrorIs(t, err, models.ErrDatabaseCredentialNotConfigured)
	})

	t.Run("Bad symmetric key", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SYMMETRIC_KEY", "short")

		_, err := LoadConfig(nexus.WithOnlyEnvironment())

		assert.ErrorIs(t, err, models.ErrInvalidSymmetricKey)
	})

	t.Run("Unknown environment", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APP_ENV", "moon")

		_, err := LoadConfig(nexus.WithOnlyEnvironment())

		assert.True(t, nexus.IsCode(err, nexus.ErrCodeValidation))
	})
}
