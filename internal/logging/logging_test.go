package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToDataDir(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, "debug")
	require.NoError(t, err)
	logger.Debug("collection loaded", zap.String("kind", "cart"))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"collection loaded"`)
	assert.Contains(t, string(data), `"kind":"cart"`)
}

func TestNew_LevelFilters(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(t.TempDir(), "loud")
	assert.Error(t, err)
}
