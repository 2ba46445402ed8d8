package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, strings.ToLower(tt.in), got.String())
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Level(42).String())
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: LevelInfo, Output: &buf})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("rule applied", "rule", "h")
	require.NoError(t, logger.Close())
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"rule applied\"")
	assert.Contains(t, out, "rule=h")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: LevelDebug, Output: &buf, JSON: true})
	require.NoError(t, err)
	logger.Debug("goal", "path", "[0 1]")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "goal", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "[0 1]", rec["path"])
}

func TestQuietWithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "prove.log")
	logger, err := New(Config{Level: LevelWarn, Output: &buf, Quiet: true, File: path})
	require.NoError(t, err)
	logger.Info("ignored")
	logger.With("sequent", "A |- A").Warn("not applicable", "reason", "not-implication")
	require.NoError(t, logger.Close())

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "not applicable", rec["msg"])
	assert.Equal(t, "A |- A", rec["sequent"])
	assert.Equal(t, "not-implication", rec["reason"])
}

func TestBothOutputs(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "prove.log")
	logger, err := New(Config{Level: LevelInfo, Output: &buf, File: path})
	require.NoError(t, err)
	logger.WithGroup("session").Info("solved", "index", 2)
	require.NoError(t, logger.Close())

	assert.Contains(t, buf.String(), "session.index=2")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session":{"index":2}`)
}

func TestBadFile(t *testing.T) {
	_, err := New(Config{File: filepath.Join(t.TempDir(), "missing", "prove.log")})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
