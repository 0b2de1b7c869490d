package logger

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

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carlot.log")
	log, err := New(Config{Level: "WARN", Format: FormatJSON, Output: path})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", zap.String("make", "Tesla"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "Tesla", entry["make"])
}

func TestNewDefaults(t *testing.T) {
	log, err := New(Config{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
	assert.False(t, log.Core().Enabled(zap.DebugLevel))

	log, err = New(Config{Output: "discard"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.ErrorLevel))
}

func TestNewBadOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "carlot.log")})
	assert.Error(t, err)
}
