package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HISTORY_PATH", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("HISTORY_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gateway", cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.Equal(t, "aura_blueprint_history", cfg.History.Key)
	assert.Contains(t, cfg.History.Path, "history.db")
	assert.Equal(t, 45*time.Second, cfg.Client.GenerationTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "nope")
	t.Setenv("HISTORY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "-3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 0.5, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "redis", cfg.History.Backend)
	assert.Equal(t, 45*time.Second, cfg.Client.GenerationTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			AI:      AIConfig{Provider: "gateway"},
			History: HistoryConfig{Backend: "memory", Key: "k"},
		}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.AI.Provider = "openai"
	assert.Error(t, c.Validate())

	c = base()
	c.History.Backend = "redis"
	assert.ErrorContains(t, c.Validate(), "REDIS_ADDR")

	c = base()
	c.History.Backend = "s3"
	assert.Error(t, c.Validate())

	c = base()
	c.Server.Port = ""
	assert.Error(t, c.Validate())
}
