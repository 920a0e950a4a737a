package config_test

import (
	"testing"

	"facturador/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "/tmp/facturador/data", cfg.DataDir)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
}

func TestLoad_EntornoPisaLosDefaults(t *testing.T) {
	t.Setenv("PORT", "9095")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9095, cfg.Port)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "secreto", cfg.JWTSecret)
}
