package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, err := New(path, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("generation finished", zap.String("provider", "gemini"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug entries are dropped unless verbose")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "generation finished", entry["msg"])
	assert.Equal(t, "gemini", entry["provider"])
	assert.Equal(t, "missiongen", entry["logger"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewVerboseKeepsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(path, true)
	require.NoError(t, err)

	logger.Debug("generation started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation started")
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.True(t, filepath.IsAbs(path) || strings.HasPrefix(path, os.TempDir()))
	assert.Equal(t, "missiongen.log", filepath.Base(path))
	assert.Equal(t, "missiongen", filepath.Base(filepath.Dir(path)))
}
