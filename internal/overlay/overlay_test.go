package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/projection"
	"github.com/cartomark/annotate/internal/shape"
)

func testProjector() projection.Projector {
	return projection.NewFlat(0.1, 0)
}

func rectFixture(t *testing.T) *feature.Feature {
	t.Helper()
	proj := testProjector()
	b := shape.NewBuilder(proj, shape.Config{}, feature.Style{})
	center := geo.LatLng{Lat: 0, Lng: 0}
	// 2000m wide, 1000m tall in metric terms.
	a := center.Offset(-1000, 500)
	c := center.Offset(1000, -500)
	f, err := b.Rectangle(a, c)
	require.NoError(t, err)
	return f
}

func TestBoxHandlePoints(t *testing.T) {
	b := Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}

	tests := []struct {
		key  HandleKey
		want geo.Pixel
	}{
		{HandleNW, geo.Pixel{X: 0, Y: 0}},
		{HandleN, geo.Pixel{X: 5, Y: 0}},
		{HandleNE, geo.Pixel{X: 10, Y: 0}},
		{HandleE, geo.Pixel{X: 10, Y: 10}},
		{HandleSE, geo.Pixel{X: 10, Y: 20}},
		{HandleS, geo.Pixel{X: 5, Y: 20}},
		{HandleSW, geo.Pixel{X: 0, Y: 20}},
		{HandleW, geo.Pixel{X: 0, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := b.HandlePoint(tt.key)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, HandleSE, HandleNW.Opposite())
	assert.Equal(t, HandleNW, HandleSE.Opposite())
	assert.Equal(t, HandleS, HandleN.Opposite())
	assert.Equal(t, HandleW, HandleE.Opposite())
}

func TestComputeFrame_Unrotated(t *testing.T) {
	proj := testProjector()
	f := rectFixture(t)

	fr := ComputeFrame(proj, f)
	assert.InDelta(t, 200, fr.Box.Width(), 1)
	assert.InDelta(t, 100, fr.Box.Height(), 1)
	assert.InDelta(t, 0, fr.Center.X, 1)
	assert.InDelta(t, 0, fr.Center.Y, 1)
}

func TestComputeFrame_RotationInvariantBox(t *testing.T) {
	proj := testProjector()
	f := rectFixture(t)
	verts := f.Vertices()

	// Rotate the stored vertices by 30 degrees about the center and
	// record the angle; the unrotated box must come back unchanged.
	center := f.CenterPoint()
	pc := proj.Project(center)
	rotated := make([]geo.LatLng, len(verts))
	for i, v := range verts {
		rotated[i] = proj.Unproject(proj.Project(v).RotateAround(pc, 30))
	}
	require.NoError(t, f.SetVertices(rotated))
	f.SetAngleDeg(30)

	fr := ComputeFrame(proj, f)
	assert.InDelta(t, 200, fr.Box.Width(), 1)
	assert.InDelta(t, 100, fr.Box.Height(), 1)
}

func TestCompute_BoxHandlesAndRing(t *testing.T) {
	proj := testProjector()
	f := rectFixture(t)

	ov := Compute(proj, f, 30)
	assert.Equal(t, KindBox, ov.Kind)
	assert.Len(t, ov.Ring, 5)
	assert.Equal(t, ov.Ring[0], ov.Ring[4])

	// Rotation grip sits 30px above the north midpoint at zero angle.
	n := ov.Handles[HandleN]
	rot, ok := ov.Handles[HandleRot]
	require.True(t, ok)
	assert.InDelta(t, n.X, rot.X, 1e-6)
	assert.InDelta(t, n.Y-30, rot.Y, 1e-6)
}

func TestCompute_RotatedGripFollowsAngle(t *testing.T) {
	proj := testProjector()
	f := rectFixture(t)
	f.SetAngleDeg(90)

	ov := Compute(proj, f, 30)
	rot := ov.Handles[HandleRot]
	// At 90 degrees clockwise the grip moves to the east side.
	assert.Greater(t, rot.X, ov.Frame.Center.X)
	assert.InDelta(t, ov.Frame.Center.Y, rot.Y, 1e-6)
}

func TestCompute_PolygonHasRotationGrip(t *testing.T) {
	proj := testProjector()
	b := shape.NewBuilder(proj, shape.Config{}, feature.Style{})
	f, err := b.Polygon([]geo.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0.01, Lng: 0.01},
		{Lat: 0, Lng: 0.02},
	})
	require.NoError(t, err)

	ov := Compute(proj, f, 30)
	assert.Equal(t, KindBox, ov.Kind)
	_, hasRot := ov.Handles[HandleRot]
	assert.True(t, hasRot)
}

func TestCompute_CircleHasNoRotationGrip(t *testing.T) {
	proj := testProjector()
	b := shape.NewBuilder(proj, shape.Config{}, feature.Style{})
	center := geo.LatLng{Lat: 0, Lng: 0}
	f, err := b.Circle(center, center.Offset(500, 0))
	require.NoError(t, err)

	ov := Compute(proj, f, 30)
	assert.Equal(t, KindRadius, ov.Kind)
	_, hasRot := ov.Handles[HandleRot]
	assert.False(t, hasRot)
	assert.Len(t, ov.Handles, 8)
}

func TestCompute_LineEndpointsOnly(t *testing.T) {
	proj := testProjector()
	b := shape.NewBuilder(proj, shape.Config{}, feature.Style{})
	pts := []geo.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0.01, Lng: 0.01},
		{Lat: 0.02, Lng: 0.01},
	}
	f, err := b.Segment(pts)
	require.NoError(t, err)

	ov := Compute(proj, f, 30)
	assert.Equal(t, KindLine, ov.Kind)
	assert.Nil(t, ov.Ring)
	assert.Len(t, ov.Handles, 2)

	start := ov.Handles[HandleStart]
	end := ov.Handles[HandleEnd]
	assert.InDelta(t, proj.Project(pts[0]).X, start.X, 1e-6)
	assert.InDelta(t, proj.Project(pts[2]).Y, end.Y, 1e-6)
}

func TestCompute_PointHasNoHandles(t *testing.T) {
	proj := testProjector()
	b := shape.NewBuilder(proj, shape.Config{}, feature.Style{})
	f, err := b.Point(geo.LatLng{Lat: 1, Lng: 2})
	require.NoError(t, err)

	ov := Compute(proj, f, 30)
	assert.Equal(t, KindPoint, ov.Kind)
	assert.Empty(t, ov.Handles)
}

func TestHitTest(t *testing.T) {
	proj := testProjector()
	f := rectFixture(t)
	ov := Compute(proj, f, 30)

	se := ov.Handles[HandleSE]
	k, ok := ov.HitTest(geo.Pixel{X: se.X + 3, Y: se.Y - 3}, 8)
	require.True(t, ok)
	assert.Equal(t, HandleSE, k)

	_, ok = ov.HitTest(geo.Pixel{X: se.X + 50, Y: se.Y + 50}, 8)
	assert.False(t, ok)
}
