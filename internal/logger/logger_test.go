package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, VerbosityToLevel(VerbosityQuiet))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{JSON: true, Verbosity: VerbosityInfo, Output: &buf})
	l.Debug("hidden")
	l.Info("generated configuration", zap.String("basename", "Label"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated configuration", entry["msg"])
	assert.Equal(t, "Label", entry["basename"])
}

func TestNewConsoleFiltersByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	l.Info("progress")
	l.Warn("careful")
	assert.NotContains(t, buf.String(), "progress")
	assert.Contains(t, buf.String(), "careful")
}

func TestInitialize(t *testing.T) {
	prev := L()
	t.Cleanup(func() {
		mu.Lock()
		global = prev
		mu.Unlock()
	})

	var buf bytes.Buffer
	Initialize(Options{Verbosity: VerbosityDebug, Output: &buf})
	S().Debugw("loaded", "count", 3)
	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "count")
}
