package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
	assert.Equal(t, "warn", Warn.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("pretty"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestFromZap_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With(map[string]any{"component": "web"})

	log.Warn("catalog request failed", map[string]any{
		"op":    "list pets",
		"error": errors.New("boom"),
		"":      "dropped",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog request failed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "web", fields["component"])
	assert.Equal(t, "list pets", fields["op"])
	assert.Equal(t, "boom", fields["error"])
	assert.NotContains(t, fields, "")
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatJSON, App: "pet-console", Output: &buf})

	log.Info("hidden", nil)
	log.Error("shown", map[string]any{"pet_id": 3})
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "pet-console", entry["app"])
	assert.EqualValues(t, 3, entry["pet_id"])
	assert.Contains(t, entry, "ts")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("nothing", map[string]any{"k": "v"})
	assert.Same(t, log, log.With(nil))
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("APP_NAME", "pet-console")

	log := NewFromEnv()
	require.NotNil(t, log)
	log.Debug("filtered", nil)
}
