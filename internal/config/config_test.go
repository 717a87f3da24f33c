package config_test

import (
	"testing"

	"salonpos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "0.33", cfg.ReposicionManicura.String())
	assert.Equal(t, "0.5", cfg.ReposicionPedicura.String())
	assert.Equal(t, "35", cfg.DefaultCommissionPct.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REPOSICION_PEDICURA", "0.75")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.75", cfg.ReposicionPedicura.String())
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Origins())
}

func TestLoad_InvalidDecimal(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPOSICION_MANICURA", "abc")

	_, err := config.Load()
	assert.Error(t, err)
}
