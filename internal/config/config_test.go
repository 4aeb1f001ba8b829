package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("OWNER_PASSWORD", "owner-password")
	t.Setenv("STORAGE_BACKEND", " SQLite ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "local", cfg.ArtworkBackend)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(52428800), cfg.MaxUploadBytes)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unset")
	t.Setenv("OWNER_PASSWORD", "unset")
	require.NoError(t, os.Unsetenv("SESSION_SECRET"))
	require.NoError(t, os.Unsetenv("OWNER_PASSWORD"))

	_, err := Load()
	assert.Error(t, err)
}

func TestNotifyConfigured(t *testing.T) {
	cfg := Config{NotifyEndpoint: "https://relay.example", NotifyPhone: "+100"}
	assert.False(t, cfg.NotifyConfigured())

	cfg.NotifyAPIKey = "key"
	assert.True(t, cfg.NotifyConfigured())
}

func TestSecureCookies(t *testing.T) {
	assert.False(t, (&Config{BaseURL: "http://localhost:8080"}).SecureCookies())
	assert.True(t, (&Config{BaseURL: "https://studio.example"}).SecureCookies())
	assert.True(t, (&Config{BaseURL: " HTTPS://studio.example"}).SecureCookies())
}
