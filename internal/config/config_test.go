package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, "ahmed@clinic.com", cfg.Clinic.DefaultDoctorEmail)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("P360_PORT", "9090")
	t.Setenv("P360_STORAGE_DRIVER", StorageDriverSQLite)
	t.Setenv("P360_JWT_SECRET", "env-secret")
	t.Setenv("P360_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_UnknownDriverRejected(t *testing.T) {
	t.Setenv("P360_STORAGE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
