package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "GB", cfg.PhoneDefaultRegion)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.False(t, cfg.MigrateOnStart)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://cfp.example.com")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("EMAIL_PROVIDER", "sendgrid")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("CONFERENCE_NAME", "PyCon Example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000", "https://cfp.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, "sendgrid", cfg.Email.Provider)
	assert.Equal(t, "SG.key", cfg.Email.SendGridAPIKey)
	assert.Equal(t, "PyCon Example", cfg.ConferenceName)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("GO_ENV", "test")
		t.Setenv("REQUEST_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("zero timeout", func(t *testing.T) {
		t.Setenv("GO_ENV", "test")
		t.Setenv("REQUEST_TIMEOUT", "0s")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("production writes json", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "production", "info").Info("hello", "k", "v")
		assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
		assert.Contains(t, buf.String(), `"k":"v"`)
	})
	t.Run("development writes text", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "development", "info").Info("hello", "k", "v")
		assert.Contains(t, buf.String(), "k=v")
	})
	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "development", "warn")
		logger.Info("dropped")
		logger.Warn("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
