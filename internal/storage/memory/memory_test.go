package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/pkg/record"
)

func pointRecord(id string, lng, lat float64) record.Feature {
	g, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: lng, Y: lat}, Type: geom.DimXY})
	if err != nil {
		panic(err)
	}
	return record.Feature{
		ID:       id,
		Geometry: g.AsGeometry(),
		Color:    "#ff0000",
		Properties: record.Properties{
			MapElementType: "point",
		},
	}
}

func TestSaveListDelete(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveFeature(pointRecord("b", 1, 1)))
	require.NoError(t, b.SaveFeature(pointRecord("a", 2, 2)))

	recs, err := b.ListFeatures()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, "b", recs[1].ID)

	require.NoError(t, b.DeleteFeature("a"))
	recs, err = b.ListFeatures()
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSaveReplaces(t *testing.T) {
	b := New(config.MemoryConfig{})

	require.NoError(t, b.SaveFeature(pointRecord("a", 1, 1)))
	updated := pointRecord("a", 5, 5)
	updated.Color = "#00ff00"
	require.NoError(t, b.SaveFeature(updated))

	recs, err := b.ListFeatures()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "#00ff00", recs[0].Color)
}

func TestExportGeoJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})

	require.NoError(t, b.SaveFeature(pointRecord("a", 13.4, 52.5)))
	require.NoError(t, b.Close())

	path := b.ExportedFilePath()
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var collection struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Color          string `json:"color"`
				MapElementType string `json:"mapElementType"`
			} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &collection))

	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 1)
	f := collection.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "a", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	// GeoJSON coordinate order is [longitude, latitude].
	assert.Equal(t, []float64{13.4, 52.5}, f.Geometry.Coordinates)
	assert.Equal(t, "#ff0000", f.Properties.Color)
	assert.Equal(t, "point", f.Properties.MapElementType)
}

func TestExportCompressed(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})

	require.NoError(t, b.SaveFeature(pointRecord("a", 1, 2)))
	require.NoError(t, b.Close())

	f, err := os.Open(b.ExportedFilePath())
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var collection collectionJSON
	require.NoError(t, json.NewDecoder(gz).Decode(&collection))
	assert.Len(t, collection.Features, 1)
}
