package slogcustom

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_Attrs(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := slog.New(NewCustomHandler(&buf, slog.LevelDebug))

	log.With("component", "session").
		WithGroup("load").
		Info("questions loaded", "count", 10)

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "questions loaded")
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, "load.count=10")
}

func TestCustomHandler_Level(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := slog.New(NewCustomHandler(&buf, slog.LevelWarn))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
