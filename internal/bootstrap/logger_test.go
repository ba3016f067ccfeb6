package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-grafik/internal/bootstrap"
	"go-grafik/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grafik.log")

	logger, err := bootstrap.NewLogger(config.LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewLogger_BadLevelFallsBack(t *testing.T) {
	logger, err := bootstrap.NewLogger(config.LogConfig{Level: "loud"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
