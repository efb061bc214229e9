package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("FIREBASE_CREDENTIALS_JSON", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.FirebaseEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "many")
	t.Setenv("GUEST_TTL", "tomorrow")

	cfg := Load()

	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 24*time.Hour, cfg.GuestTTL)
}
