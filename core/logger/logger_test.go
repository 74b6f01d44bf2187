package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Options{Level: level, Output: &buf})
	t.Cleanup(func() { Init(Options{}) })
	return &buf
}

func TestErrorInKeyPosition(t *testing.T) {
	buf := capture(t, "info")

	Error("MeetingRepository:Create", errors.New("boom"), "meeting_id", "m1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "MeetingRepository:Create", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "m1", entry["meeting_id"])
}

func TestLevel(t *testing.T) {
	buf := capture(t, "warn")

	Info("hidden")
	assert.Zero(t, buf.Len())

	Warn("shown", "dangling")
	assert.Contains(t, buf.String(), `"detail":"dangling"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
