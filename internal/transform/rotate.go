package transform

import (
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/overlay"
	"github.com/cartomark/annotate/internal/projection"
)

// Rotate is a rotation-grip drag. The applied angle is the base angle
// plus the delta between the start and current cursor bearings about
// the frozen center, so repeated updates never compound.
type Rotate struct {
	proj       projection.Projector
	frame      overlay.Frame
	base       Result
	startAngle float64
}

// NewRotate starts a rotation drag from the cursor's press position.
func NewRotate(proj projection.Projector, f *feature.Feature, startCursor geo.Pixel) *Rotate {
	fr := overlay.ComputeFrame(proj, f)
	return &Rotate{
		proj:       proj,
		frame:      fr,
		base:       snapshotResult(f),
		startAngle: geo.AngleDeg(fr.Center, startCursor),
	}
}

// Update recomputes vertices for the cursor's current bearing.
func (r *Rotate) Update(cursor geo.Pixel) Result {
	delta := geo.AngleDeg(r.frame.Center, cursor) - r.startAngle
	angle := geo.NormalizeDeg(r.base.AngleDeg + delta)

	verts := make([]geo.LatLng, len(r.frame.Unrotated))
	for i, p := range r.frame.Unrotated {
		verts[i] = r.proj.Unproject(p.RotateAround(r.frame.Center, angle))
	}

	res := r.base
	res.Vertices = verts
	res.AngleDeg = angle
	return res
}

// FromAngle rotates f's current geometry to an absolute angle about its
// center, backing numeric angle entry.
func FromAngle(proj projection.Projector, f *feature.Feature, angleDeg float64) Result {
	fr := overlay.ComputeFrame(proj, f)
	angle := geo.NormalizeDeg(angleDeg)

	verts := make([]geo.LatLng, len(fr.Unrotated))
	for i, p := range fr.Unrotated {
		verts[i] = proj.Unproject(p.RotateAround(fr.Center, angle))
	}

	res := snapshotResult(f)
	res.Vertices = verts
	res.AngleDeg = angle
	return res
}

// EndpointDrag moves one endpoint of an open line while the interior
// vertices stay fixed.
type EndpointDrag struct {
	proj  projection.Projector
	base  Result
	index int
}

// NewEndpointDrag starts an endpoint move. handle must be HandleStart
// or HandleEnd.
func NewEndpointDrag(proj projection.Projector, f *feature.Feature, handle overlay.HandleKey) (*EndpointDrag, error) {
	verts := f.Vertices()
	if len(verts) == 0 {
		return nil, ErrNoVertices
	}
	idx := 0
	if handle == overlay.HandleEnd {
		idx = len(verts) - 1
	}
	return &EndpointDrag{proj: proj, base: snapshotResult(f), index: idx}, nil
}

// Update replaces the dragged endpoint with the cursor's coordinate.
func (e *EndpointDrag) Update(cursor geo.Pixel) Result {
	res := e.base
	res.Vertices = make([]geo.LatLng, len(e.base.Vertices))
	copy(res.Vertices, e.base.Vertices)
	res.Vertices[e.index] = e.proj.Unproject(cursor)
	return res
}
