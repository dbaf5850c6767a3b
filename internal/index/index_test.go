package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/geo"
)

func TestUpsertAndNear(t *testing.T) {
	ix := New()

	require.NoError(t, ix.Upsert("a", []geo.LatLng{
		{Lat: 0, Lng: 0}, {Lat: 0.01, Lng: 0.01},
	}))
	require.NoError(t, ix.Upsert("b", []geo.LatLng{
		{Lat: 1, Lng: 1}, {Lat: 1.01, Lng: 1.01},
	}))
	assert.Equal(t, 2, ix.Len())

	ids := ix.Near(geo.LatLng{Lat: 0.005, Lng: 0.005}, 100)
	assert.Equal(t, []string{"a"}, ids)

	ids = ix.Near(geo.LatLng{Lat: 0.5, Lng: 0.5}, 100)
	assert.Empty(t, ids)
}

func TestUpsertReplaces(t *testing.T) {
	ix := New()

	require.NoError(t, ix.Upsert("a", []geo.LatLng{{Lat: 0, Lng: 0}}))
	require.NoError(t, ix.Upsert("a", []geo.LatLng{{Lat: 5, Lng: 5}}))
	assert.Equal(t, 1, ix.Len())

	assert.Empty(t, ix.Near(geo.LatLng{Lat: 0, Lng: 0}, 100))
	assert.Equal(t, []string{"a"}, ix.Near(geo.LatLng{Lat: 5, Lng: 5}, 100))
}

func TestUpsert_RejectsEmpty(t *testing.T) {
	ix := New()
	assert.Error(t, ix.Upsert("a", nil))
}

func TestRemove(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Upsert("a", []geo.LatLng{{Lat: 0, Lng: 0}}))

	ix.Remove("a")
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.Near(geo.LatLng{Lat: 0, Lng: 0}, 100))

	// Removing an unknown id is a no-op.
	ix.Remove("missing")
}

func TestPointFeatureIndexable(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Upsert("p", []geo.LatLng{{Lat: 10, Lng: 20}}))
	assert.Equal(t, []string{"p"}, ix.Near(geo.LatLng{Lat: 10, Lng: 20}, 10))
}

func TestSearchBox(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Upsert("a", []geo.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}))
	require.NoError(t, ix.Upsert("b", []geo.LatLng{{Lat: 3, Lng: 3}, {Lat: 4, Lng: 4}}))

	ids := ix.SearchBox(geo.LatLng{Lat: -1, Lng: -1}, geo.LatLng{Lat: 2, Lng: 2})
	assert.Equal(t, []string{"a"}, ids)

	ids = ix.SearchBox(geo.LatLng{Lat: -1, Lng: -1}, geo.LatLng{Lat: 5, Lng: 5})
	assert.Len(t, ids, 2)
}

func TestClear(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Upsert("a", []geo.LatLng{{Lat: 0, Lng: 0}}))
	ix.Clear()
	assert.Equal(t, 0, ix.Len())
}
