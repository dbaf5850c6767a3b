// Package feature defines the annotation data model: canonical geometry,
// display style, and the transform state that keeps resize and rotate
// operations composable.
package feature

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/cartomark/annotate/internal/geo"
)

// ErrNotFound is returned when an operation targets a feature id that is
// no longer present in the live layer set.
var ErrNotFound = errors.New("feature not found")

// Style holds display attributes passed through to the rendering surface.
type Style struct {
	Color       string  `json:"color"`
	Opacity     float64 `json:"opacity"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Feature is a single map annotation.
//
// Geometry is always the ground truth for rendering. For parametric
// shapes, Center/SizeMeters/RotationDeg form a parallel canonical
// description from which Geometry is regenerated on each transform, so
// repeated edits never accumulate more drift than one fresh regeneration.
type Feature struct {
	ID       string
	Geometry geom.Geometry
	Style    Style

	Shape   Shape
	Element ElementType

	// Center is the parametric pivot. HasCenter distinguishes a real
	// zero value from "not parametric" (manual polygons, lines).
	Center    geo.LatLng
	HasCenter bool

	// SizeMeters is the defining radius or half-extent for regular
	// shapes (square, circle, triangle).
	SizeMeters float64

	// RotationDeg is the current rotation, kept normalized to [0,360)
	// through SetAngleDeg.
	RotationDeg float64

	// Resizable marks shapes supporting axis-aware resize.
	Resizable bool
}

// AngleDeg returns the feature's rotation normalized into [0,360).
func (f *Feature) AngleDeg() float64 {
	return geo.NormalizeDeg(f.RotationDeg)
}

// SetAngleDeg writes the rotation back, normalized.
func (f *Feature) SetAngleDeg(deg float64) {
	f.RotationDeg = geo.NormalizeDeg(deg)
}

// CenterPoint returns the parametric center when present, otherwise the
// bounding-box centroid of the geometry. The fallback covers features not
// created parametrically, such as manual polygons.
func (f *Feature) CenterPoint() geo.LatLng {
	if f.HasCenter {
		return f.Center
	}
	return BBoxCentroid(f.Vertices())
}

// SetCenter records a new parametric center.
func (f *Feature) SetCenter(c geo.LatLng) {
	f.Center = c
	f.HasCenter = true
}

// IsLine reports whether the feature is an open line (endpoint anchors
// instead of bounding-box handles).
func (f *Feature) IsLine() bool {
	return f.Geometry.Type() == geom.TypeLineString
}

// IsPoint reports whether the feature is a single point.
func (f *Feature) IsPoint() bool {
	return f.Geometry.Type() == geom.TypePoint
}

// Clone returns a deep enough copy for drag-start snapshots: geometry
// values are immutable in simplefeatures, so a shallow struct copy is a
// faithful frozen state.
func (f *Feature) Clone() *Feature {
	c := *f
	return &c
}

// BBoxCentroid returns the centroid of the axis-aligned geographic
// bounding box over the given vertices.
func BBoxCentroid(vertices []geo.LatLng) geo.LatLng {
	if len(vertices) == 0 {
		return geo.LatLng{}
	}
	minLat, maxLat := vertices[0].Lat, vertices[0].Lat
	minLng, maxLng := vertices[0].Lng, vertices[0].Lng
	for _, v := range vertices[1:] {
		if v.Lat < minLat {
			minLat = v.Lat
		}
		if v.Lat > maxLat {
			maxLat = v.Lat
		}
		if v.Lng < minLng {
			minLng = v.Lng
		}
		if v.Lng > maxLng {
			maxLng = v.Lng
		}
	}
	return geo.LatLng{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2}
}
