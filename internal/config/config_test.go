package config_test

import (
	"testing"
	"time"

	"go-grafik/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "test.db")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "test.db", cfg.DB.Path)
	assert.Equal(t, 10*time.Minute, cfg.Settings.GetCacheTTL())
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, 15*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REPORT_FONT_PATH", "/fonts/DejaVuSans.ttf")
	t.Setenv("SMTP_HOST", "smtp.local")
	t.Setenv("SMTP_FROM", "grafik@local")
	t.Setenv("SMTP_TIMEOUT", "3s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "25s")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.Report.FontPath)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 3*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 25*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db.driver")
}
