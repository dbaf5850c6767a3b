package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"TRACE", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestSetup_FileReceivesRecords(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "INFO", nil)

	out := buf.String()
	assert.Contains(t, out, "Logging initialized")
	assert.Contains(t, out, "level=INFO")

	m.Logger().Info("saved feature", "id", "f1")
	assert.Contains(t, buf.String(), "saved feature")
	assert.Contains(t, buf.String(), "id=f1")
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "WARN", nil)

	m.Logger().Info("quiet")
	m.Logger().Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestWriteLog_MapsLevelAndFunction(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "DEBUG", nil)
	buf.Reset()

	m.WriteLog("engine:createFeature", "Created polygon", "ERROR")

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "function=engine:createFeature")
	assert.Contains(t, out, "Created polygon")
}

func TestWriteLog_BeforeSetupIsNoop(t *testing.T) {
	m := NewSlogManager()
	assert.NotPanics(t, func() {
		m.WriteLog("fn", "msg", "INFO")
	})
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	require.NotNil(t, m.Logger())
}

func TestFlush_NoProvider(t *testing.T) {
	m := NewSlogManager()
	assert.NoError(t, m.Flush(context.Background()))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	mh := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		nil,
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(mh)

	logger.Info("both see enabled check, one writes")

	assert.Contains(t, a.String(), "one writes")
	assert.Empty(t, b.String())

	logger.Error("boom")
	assert.Contains(t, b.String(), "boom")
}

func TestContextHandler_InjectsAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewContextHandler(slog.NewTextHandler(&buf, nil), func() []slog.Attr {
		return []slog.Attr{slog.String("session", "s1")}
	})
	slog.New(h).Info("tick")

	out := buf.String()
	assert.Contains(t, out, "tick")
	assert.Contains(t, out, "session=s1")
}
