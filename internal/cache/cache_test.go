package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
)

func newFeature(id string) *feature.Feature {
	g, err := feature.PointGeometry(geo.LatLng{Lat: 1, Lng: 2})
	if err != nil {
		panic(err)
	}
	return &feature.Feature{
		ID:       id,
		Geometry: g,
		Shape:    feature.ShapeNone,
	}
}

func TestPutGetDelete(t *testing.T) {
	c := NewFeatureCache()

	c.Put(newFeature("a"))
	f, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", f.ID)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestRekey(t *testing.T) {
	c := NewFeatureCache()
	c.Put(newFeature("tmp-1"))

	require.True(t, c.Rekey("tmp-1", "42"))
	_, ok := c.Get("tmp-1")
	assert.False(t, ok)

	f, ok := c.Get("42")
	require.True(t, ok)
	assert.Equal(t, "42", f.ID)

	assert.False(t, c.Rekey("missing", "x"))
}

func TestListAndReset(t *testing.T) {
	c := NewFeatureCache()
	c.Put(newFeature("a"))
	c.Put(newFeature("b"))

	assert.Len(t, c.List(), 2)
	assert.Equal(t, 2, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())
}

func TestTempIDs(t *testing.T) {
	var ids TempIDs

	first := ids.Next()
	second := ids.Next()
	assert.Equal(t, "tmp-1", first)
	assert.Equal(t, "tmp-2", second)

	assert.True(t, IsTemp(first))
	assert.False(t, IsTemp("42"))
	assert.False(t, IsTemp("tmp-"))
}
