package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(int(slog.LevelInfo), &buf)

	l.Debug("hidden")
	l.Info("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "key=value")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(0, &buf).With("component", "auth")

	l.Info("hello")

	assert.Contains(t, buf.String(), "component=auth")
}
