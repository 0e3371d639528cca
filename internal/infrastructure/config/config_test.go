package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should fail fast without the gemini credential", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := LoadConfig()

		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingCredential))
	})

	t.Run("should load defaults when only the credential is set", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-gemini-key")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "test-gemini-key", cfg.Gemini.APIKey)
		assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.TextModel)
		assert.Equal(t, "imagen-3.0-generate-002", cfg.Gemini.ImageModel)
		assert.Equal(t, TextProviderGemini, cfg.AI.TextProvider)
		assert.Equal(t, 90*time.Second, cfg.AI.TextTimeout)
		assert.Equal(t, 60*time.Second, cfg.AI.ImageTimeout)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, FavoritesBackendFile, cfg.Favorites.Backend)
		assert.Equal(t, "ranna-banna-favorites", cfg.Favorites.Key)
		assert.Equal(t, time.Second, cfg.DedupWindow)
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-gemini-key")
		t.Setenv("FAVORITES_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "redis:6380")
		t.Setenv("APP_AI_IMAGE_TIMEOUT", "15s")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, FavoritesBackendRedis, cfg.Favorites.Backend)
		assert.Equal(t, "redis:6380", cfg.Redis.Addr)
		assert.Equal(t, 15*time.Second, cfg.AI.ImageTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("should require the openrouter key when openrouter generates text", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-gemini-key")
		t.Setenv("AI_TEXT_PROVIDER", "openrouter")
		t.Setenv("OPENROUTER_API_KEY", "")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
	})

	t.Run("should reject an unknown favorites backend", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-gemini-key")
		t.Setenv("FAVORITES_BACKEND", "localstorage")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown favorites backend")
	})
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
