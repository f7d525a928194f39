package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata"))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "console", cfg.Server.LogFormat)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)
	require.Equal(t, "fleetcare", cfg.Database.Postgres.Database)

	require.Equal(t, "Asia/Kolkata", cfg.Engine.Timezone)
	require.Equal(t, "@every 30m", cfg.Engine.TickSpec)
	require.Equal(t, 8, cfg.Engine.Workers)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "fleetcare-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 2*time.Hour, cfg.Auth.JWT.TTL)

	require.True(t, cfg.Email.SMTP.Enabled)
	require.Equal(t, "smtp.example.com", cfg.Email.SMTP.Host)
	require.Equal(t, 2525, cfg.Email.SMTP.Port)
	require.Equal(t, "alerts@example.com", cfg.Email.SMTP.From)
	require.False(t, cfg.Email.SMTP.UseTLS)
	require.Equal(t, 3*time.Second, cfg.Email.SMTP.Timeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "json", cfg.Server.LogFormat)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/fleetcare.sqlite", cfg.Database.Path)
	require.Equal(t, "UTC", cfg.Engine.Timezone)
	require.Equal(t, "@hourly", cfg.Engine.TickSpec)
	require.Equal(t, 4, cfg.Engine.Workers)
	require.Equal(t, "fleetcare", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)
	require.False(t, cfg.Email.SMTP.Enabled)
	require.Equal(t, 587, cfg.Email.SMTP.Port)
}
