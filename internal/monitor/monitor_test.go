package monitor

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/telemetry"
)

type fakeState struct {
	features int
	selected []string
}

func (f fakeState) Len() int            { return f.features }
func (f fakeState) Selection() []string { return f.selected }

func newBackupTelemetry(t *testing.T) (*telemetry.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telemetry.lp.gz")
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	m := telemetry.NewManager(zerolog.Nop(), path)
	m.BackupWriter = gzip.NewWriter(file)
	return m, path
}

func TestSnapshotWritesStatePoint(t *testing.T) {
	tm, path := newBackupTelemetry(t)
	svc := NewService(Dependencies{
		Engine:    fakeState{features: 4, selected: []string{"a", "b"}},
		Telemetry: tm,
	})

	svc.Snapshot()
	require.NoError(t, tm.BackupWriter.Close())

	raw, err := os.Open(path)
	require.NoError(t, err)
	defer raw.Close()
	gz, err := gzip.NewReader(raw)
	require.NoError(t, err)
	buf := make([]byte, 4096)
	n, _ := gz.Read(buf)
	line := string(buf[:n])

	assert.Contains(t, line, "engine_state")
	assert.Contains(t, line, "features=4i")
	assert.Contains(t, line, "selected=2i")
}

func TestStartStop(t *testing.T) {
	tm, _ := newBackupTelemetry(t)
	svc := NewService(Dependencies{
		Engine:    fakeState{},
		Telemetry: tm,
		Interval:  time.Hour,
	})

	assert.False(t, svc.IsRunning())
	svc.Start()
	assert.True(t, svc.IsRunning())
	svc.Start()
	svc.Stop()
	assert.False(t, svc.IsRunning())
	svc.Stop()
}
