package adapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "movieID", 42)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, float64(42), rec["movieID"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &LoggingConfig{Level: "debug", Format: "text"})

	logger.Debug("search complete", "results", 3)
	out := buf.String()
	assert.Contains(t, out, "search complete")
	assert.Contains(t, out, "results=3")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}
