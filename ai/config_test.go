package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.BaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.TextModel)
	assert.Equal(t, "imagen-3.0", cfg.ImageModel)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("test-key"),
		WithBaseURL("https://example.test"),
		WithTextModel("gemini-2.5-pro"),
		WithImageModel("imagen-4.0"),
		WithHTTPTimeout(30*time.Second),
	)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, "gemini-2.5-pro", cfg.TextModel)
	assert.Equal(t, "imagen-4.0", cfg.ImageModel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "https://env.test")
	t.Setenv(EnvTextModel, "env-model")
	t.Setenv(EnvImageModel, "")

	cfg := FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://env.test", cfg.BaseURL)
	assert.Equal(t, "env-model", cfg.TextModel)
	// Untouched variables keep their defaults.
	assert.Equal(t, "imagen-3.0", cfg.ImageModel)

	t.Run("options override env", func(t *testing.T) {
		cfg := FromEnv(WithAPIKey("option-key"))
		assert.Equal(t, "option-key", cfg.APIKey)
	})
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("  key  "),
		WithBaseURL("https://example.test/"),
	)
	cfg.HTTPTimeout = 0

	cfg.Normalize()

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("key"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing API key is fatal", func(t *testing.T) {
		cfg := NewConfig()
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrMissingAPIKey))
	})

	t.Run("whitespace API key is missing", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("   "))
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrMissingAPIKey))
	})

	t.Run("missing base URL", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("key"), WithBaseURL(""))
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrMissingBaseURL))
	})

	t.Run("missing text model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("key"), WithTextModel(""))
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrMissingTextModel))
	})
}
