package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_InfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", WithWriters(&buf), WithEnv("test"))

	l.Info("forecast fetched", map[string]any{"days": 5})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "forecast fetched", entries[0]["msg"])
	assert.Equal(t, "test-app", entries[0]["app_name"])
	assert.Equal(t, "test", entries[0]["app_zone"])
	assert.EqualValues(t, 5, entries[0]["days"])
	assert.Contains(t, entries[0]["caller_func"], "TestLogger_InfoWritesFields")
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", WithWriters(&buf))

	l.Error(errors.New("upstream failed"), map[string]any{"op": "geocode"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "upstream failed", entries[0]["error"])
	assert.Equal(t, "geocode", entries[0]["op"])
	assert.Contains(t, entries[0]["caller_func"], "TestLogger_ErrorIncludesCause")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("test-app", WithWriters(&buf), WithLevel(zapcore.WarnLevel))

	l.Debug("hidden")
	l.Info("hidden")
	l.Warning("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])

	l.SetLevel(zapcore.DebugLevel)
	l.Debug("now visible")
	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
