package telemetry

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePointFallsBackToBackupFile(t *testing.T) {
	backupPath := filepath.Join(t.TempDir(), "telemetry.lp.gz")
	file, err := os.OpenFile(backupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)

	m := NewManager(zerolog.Nop(), backupPath)
	m.BackupWriter = gzip.NewWriter(file)

	point := OperationPoint("resize", "rectangle", 1, 42*time.Millisecond)
	require.NoError(t, m.WritePoint(context.Background(), "edit_operations", point))

	require.NoError(t, m.BackupWriter.Close())
	require.NoError(t, file.Close())

	raw, err := os.Open(backupPath)
	require.NoError(t, err)
	defer raw.Close()
	gz, err := gzip.NewReader(raw)
	require.NoError(t, err)
	buf := make([]byte, 4096)
	n, _ := gz.Read(buf)
	line := string(buf[:n])

	assert.Contains(t, line, "edit_operation")
	assert.Contains(t, line, "operation=resize")
	assert.Contains(t, line, "shape=rectangle")
	assert.Contains(t, line, "duration_ms=42")
}

func TestWritePointWithoutClientOrBackupFails(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	err := m.WritePoint(context.Background(), "edit_operations", SessionPoint(3, 1))
	require.Error(t, err)
}

func TestPersistPointFields(t *testing.T) {
	point := PersistPoint("sqlite", "save", 5*time.Millisecond, true)
	line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)

	assert.True(t, strings.HasPrefix(line, "backend_write,"))
	assert.Contains(t, line, "backend=sqlite")
	assert.Contains(t, line, "action=save")
	assert.Contains(t, line, "failed=true")
}
