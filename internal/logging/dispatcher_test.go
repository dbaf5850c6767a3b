package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestDispatcherLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewDispatcherLogger(zerolog.New(&buf))

	l.Info("handler registered", "event", "pointer.down", "buffer", 16)

	m := logLine(t, &buf)
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "handler registered", m["message"])
	assert.Equal(t, "pointer.down", m["event"])
	assert.EqualValues(t, 16, m["buffer"])
}

func TestDispatcherLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewDispatcherLogger(zerolog.New(&buf))

	l.Debug("d")
	l.Error("e")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "error", second["level"])
}

func TestDispatcherLogger_SkipsMalformedPairs(t *testing.T) {
	var buf bytes.Buffer
	l := NewDispatcherLogger(zerolog.New(&buf))

	// A non-string key and a dangling trailing value are dropped.
	l.Info("partial", 42, "ignored", "kept", "v", "dangling")

	m := logLine(t, &buf)
	assert.Equal(t, "v", m["kept"])
	assert.NotContains(t, m, "ignored")
	assert.NotContains(t, m, "dangling")
}
