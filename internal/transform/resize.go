package transform

import (
	"math"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/overlay"
	"github.com/cartomark/annotate/internal/projection"
	"github.com/cartomark/annotate/internal/shape"
	"github.com/cartomark/annotate/internal/util"
)

const (
	// DefaultMinScale is the floor on a per-axis resize factor.
	DefaultMinScale = 0.05

	// DefaultMinCircleRadiusMeters is the floor on a circle resize.
	DefaultMinCircleRadiusMeters = 1.0

	// degenerateExtentPx guards the scale denominator: axes thinner than
	// this at drag start resize with factor 1.
	degenerateExtentPx = 1e-6
)

// Resize is a bounding-box handle drag. The scale factors are measured
// in the unrotated frame between the dragged handle and its opposite,
// fixed anchor.
type Resize struct {
	proj    projection.Projector
	frame   overlay.Frame
	base    Result
	fixed   geo.Pixel
	start   geo.Pixel
	handle  overlay.HandleKey
	uniform bool
	min     float64
}

// NewResize starts a resize of f from the given handle. minScale <= 0
// falls back to DefaultMinScale.
func NewResize(proj projection.Projector, f *feature.Feature, handle overlay.HandleKey, minScale float64) *Resize {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	fr := overlay.ComputeFrame(proj, f)
	return &Resize{
		proj:    proj,
		frame:   fr,
		base:    snapshotResult(f),
		fixed:   fr.UnrotatedHandle(handle.Opposite()),
		start:   fr.UnrotatedHandle(handle),
		handle:  handle,
		uniform: f.Shape.UniformScale(),
		min:     minScale,
	}
}

// Update recomputes the feature state for the current cursor position.
func (r *Resize) Update(cursor geo.Pixel) Result {
	cu := cursor.RotateAround(r.frame.Center, -r.frame.AngleDeg)

	sx := axisFactor(cu.X, r.start.X, r.fixed.X, r.min)
	sy := axisFactor(cu.Y, r.start.Y, r.fixed.Y, r.min)

	// Edge handles resize a single axis.
	switch r.handle {
	case overlay.HandleN, overlay.HandleS:
		sx = 1
	case overlay.HandleE, overlay.HandleW:
		sy = 1
	}
	if r.uniform {
		var s float64
		switch r.handle {
		case overlay.HandleN, overlay.HandleS:
			s = sy
		case overlay.HandleE, overlay.HandleW:
			s = sx
		default:
			s = math.Max(sx, sy)
		}
		sx, sy = s, s
	}

	verts := make([]geo.LatLng, len(r.frame.Unrotated))
	for i, p := range r.frame.Unrotated {
		scaled := geo.Pixel{
			X: r.fixed.X + (p.X-r.fixed.X)*sx,
			Y: r.fixed.Y + (p.Y-r.fixed.Y)*sy,
		}
		verts[i] = r.proj.Unproject(scaled.RotateAround(r.frame.Center, r.frame.AngleDeg))
	}

	res := r.base
	res.Vertices = verts
	if res.HasCenter {
		res.Center = feature.BBoxCentroid(verts)
	}
	// Only uniformly scaled shapes carry a meaningful size; anything
	// else keeps its recorded size untouched.
	if r.uniform {
		res.SizeMeters = r.base.SizeMeters * sx
	}
	return res
}

func axisFactor(cursor, start, fixed, min float64) float64 {
	denom := start - fixed
	if util.NearZero(denom, degenerateExtentPx) {
		return 1
	}
	return math.Max((cursor-fixed)/denom, min)
}

// CircleResize drags any handle of a circle: the new radius is the
// metric distance from the frozen center to the cursor.
type CircleResize struct {
	proj      projection.Projector
	base      Result
	center    geo.LatLng
	segments  int
	minRadius float64
}

// NewCircleResize starts a radius drag on a circle feature.
func NewCircleResize(proj projection.Projector, f *feature.Feature, segments int, minRadius float64) *CircleResize {
	if minRadius <= 0 {
		minRadius = DefaultMinCircleRadiusMeters
	}
	return &CircleResize{
		proj:      proj,
		base:      snapshotResult(f),
		center:    f.CenterPoint(),
		segments:  segments,
		minRadius: minRadius,
	}
}

// Update regenerates the ring for the radius under the cursor.
func (c *CircleResize) Update(cursor geo.Pixel) Result {
	radius := c.proj.DistanceMeters(c.center, c.proj.Unproject(cursor))
	if radius < c.minRadius {
		radius = c.minRadius
	}

	res := c.base
	res.Vertices = shape.EllipseRing(c.center, radius, radius, c.segments)
	res.Center = c.center
	res.HasCenter = true
	res.SizeMeters = radius
	return res
}

// FromDimensions rebuilds a parametric feature's ring for explicit
// metric width and height, keeping its center and rotation. This backs
// numeric size entry as opposed to a handle drag.
func FromDimensions(f *feature.Feature, widthMeters, heightMeters float64, segments int) (Result, error) {
	ring, size, err := shape.RegenerateRing(f.Shape, f.CenterPoint(), widthMeters, heightMeters, f.AngleDeg(), segments)
	if err != nil {
		return Result{}, err
	}
	res := snapshotResult(f)
	res.Vertices = ring
	res.Center = f.CenterPoint()
	res.HasCenter = true
	res.SizeMeters = size
	return res, nil
}
