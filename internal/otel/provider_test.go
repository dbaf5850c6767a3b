package otel

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	p, err := New(Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Nil(t, p.LoggerProvider())
	assert.NoError(t, p.Flush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_EnabledRequiresOutput(t *testing.T) {
	_, err := New(Config{
		Enabled:     true,
		ServiceName: "annotate-test",
	})
	assert.Error(t, err)
}

func TestNew_FileExporterReceivesRecords(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(Config{
		Enabled:      true,
		ServiceName:  "annotate-test",
		BatchTimeout: time.Second,
		LogWriter:    &buf,
	})
	require.NoError(t, err)
	require.NotNil(t, p.LoggerProvider())

	logger := slog.New(otelslog.NewHandler("annotate-test",
		otelslog.WithLoggerProvider(p.LoggerProvider())))
	logger.Info("exported feature", "id", "f1")

	require.NoError(t, p.Flush(context.Background()))
	require.NoError(t, p.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "exported feature")
	assert.Contains(t, out, "annotate-test")
}
