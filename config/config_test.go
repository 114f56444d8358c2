package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_DB_DSN", "host=db user=app dbname=booking")
	path := writeConfig(t, `
app:
  name: marketplace
database:
  driver: postgres
  dsn: ${TEST_DB_DSN}
  unique_booking_slots: true
auth:
  jwt_secret: s3cret
  token_ttl: 2h
booking:
  timezone: Asia/Kolkata
  enforce_slot_grid: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "marketplace", cfg.App.Name)
	assert.Equal(t, "host=db user=app dbname=booking", cfg.Database.DSN)
	assert.True(t, cfg.Database.UniqueBookingSlots)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.False(t, cfg.Booking.SlotGridEnforced())
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Schedule.HorizonDays)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/booking")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/booking", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.True(t, cfg.Booking.SlotGridEnforced())
}

func TestValidate(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	tests := []struct {
		name string
		body string
	}{
		{"missing dsn", "auth:\n  jwt_secret: x\n"},
		{"missing secret", "database:\n  dsn: file::memory:\n  driver: sqlite\n"},
		{"bad driver", "database:\n  driver: mysql\n  dsn: x\nauth:\n  jwt_secret: x\n"},
		{"bad timezone", "database:\n  dsn: x\nauth:\n  jwt_secret: x\nbooking:\n  timezone: Mars/Olympus\n"},
		{"smtp without host", "database:\n  dsn: x\nauth:\n  jwt_secret: x\nsmtp:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
