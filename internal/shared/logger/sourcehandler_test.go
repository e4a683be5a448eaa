package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *slog.Logger)
		levels     []slog.Level
		wantSource bool
	}{
		{"info without source", func(l *slog.Logger) { l.Info("msg") }, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn with source", func(l *slog.Logger) { l.Warn("msg") }, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error with source", func(l *slog.Logger) { l.Error("msg") }, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info in debug mode", func(l *slog.Logger) { l.Info("msg") }, []slog.Level{slog.LevelDebug, slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(slog.New(NewSourceHandler(base, tt.levels...)))

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			_, hasSource := record[slog.SourceKey]
			assert.Equal(t, tt.wantSource, hasSource)
		})
	}
}

func TestSourceHandler_WithAttrsKeepsLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	l := slog.New(NewSourceHandler(base, slog.LevelWarn)).With("component", "test")

	l.Warn("careful")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "test", record["component"])
	assert.Contains(t, record, slog.SourceKey)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
