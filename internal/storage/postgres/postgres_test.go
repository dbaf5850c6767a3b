package postgres

import (
	"path/filepath"
	"testing"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/database"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/pkg/record"
)

// newTestBackend runs the queueing backend against SQLite: the writer
// loop and batching logic are dialect-independent.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.GetSqliteDBStandalone(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	b := New(Config{DB: db, FlushInterval: 10 * time.Millisecond}, logging.NewSlogManager())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func pointRecord(id string, lng, lat float64) record.Feature {
	g, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: lng, Y: lat}, Type: geom.DimXY})
	if err != nil {
		panic(err)
	}
	return record.Feature{ID: id, Geometry: g.AsGeometry()}
}

func TestQueuedSaveFlushes(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveFeature(pointRecord("f1", 1, 2)))

	assert.Eventually(t, func() bool {
		recs, err := b.ListFeatures()
		return err == nil && len(recs) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBatchKeepsLatestSave(t *testing.T) {
	b := newTestBackend(t)

	first := pointRecord("f1", 1, 2)
	second := pointRecord("f1", 5, 6)
	second.Color = "#0000ff"
	require.NoError(t, b.SaveFeature(first))
	require.NoError(t, b.SaveFeature(second))

	assert.Eventually(t, func() bool {
		recs, err := b.ListFeatures()
		return err == nil && len(recs) == 1 && recs[0].Color == "#0000ff"
	}, time.Second, 10*time.Millisecond)
}

func TestCloseFlushesPending(t *testing.T) {
	db, err := database.GetSqliteDBStandalone(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	b := New(Config{DB: db, FlushInterval: time.Hour}, logging.NewSlogManager())
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveFeature(pointRecord("f1", 1, 2)))
	require.NoError(t, b.Close())

	recs, err := b.ListFeatures()
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
