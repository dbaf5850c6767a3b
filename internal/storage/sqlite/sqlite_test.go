package sqlitestorage

import (
	"path/filepath"
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/pkg/record"
)

func TestFileBackedBackend(t *testing.T) {
	b, err := New(Config{Path: filepath.Join(t.TempDir(), "annotations.db")}, logging.NewSlogManager())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	g, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: 13.4, Y: 52.5}, Type: geom.DimXY})
	require.NoError(t, err)
	require.NoError(t, b.SaveFeature(record.Feature{
		ID:       "f1",
		Geometry: g.AsGeometry(),
		Properties: record.Properties{
			MapElementType: "point",
		},
	}))

	recs, err := b.ListFeatures()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "f1", recs[0].ID)
}
