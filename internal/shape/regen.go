package shape

import (
	"fmt"
	"math"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
)

// RegenerateRing rebuilds the canonical ring of a parametric shape from
// explicit width/height in meters, applying the rotation in the local
// metric frame. It also returns the new canonical size baseline for the
// shapes that carry one (square, circle, triangle).
//
// Per-shape interpretation of the two dimensions:
//   - square: side = min(width, height)
//   - rectangle, oval: width and height independently
//   - circle: width is the diameter (height ignored)
//   - triangle: circumradius averaged from the two candidate radii the
//     dimensions imply
func RegenerateRing(s feature.Shape, center geo.LatLng, widthMeters, heightMeters, angleDeg float64, segments int) ([]geo.LatLng, float64, error) {
	switch s {
	case feature.ShapeSquare:
		half := math.Min(widthMeters, heightMeters) / 2
		return rotatedRect(center, half, half, angleDeg), half, nil

	case feature.ShapeRectangle:
		return rotatedRect(center, widthMeters/2, heightMeters/2, angleDeg), 0, nil

	case feature.ShapeCircle:
		radius := widthMeters / 2
		return EllipseRing(center, radius, radius, segments), radius, nil

	case feature.ShapeOval:
		ring := EllipseRing(center, widthMeters/2, heightMeters/2, segments)
		return rotateRing(ring, center, angleDeg), 0, nil

	case feature.ShapeTriangle:
		// width of an equilateral point-up triangle is r√3, height 1.5r
		radius := (widthMeters/math.Sqrt(3) + heightMeters/1.5) / 2
		return rotateRing(TriangleRing(center, radius), center, angleDeg), radius, nil

	default:
		return nil, 0, fmt.Errorf("shape %s has no parametric regeneration", s)
	}
}

func rotatedRect(center geo.LatLng, halfWidth, halfHeight, angleDeg float64) []geo.LatLng {
	offsets := [][2]float64{
		{-halfWidth, halfHeight},
		{halfWidth, halfHeight},
		{halfWidth, -halfHeight},
		{-halfWidth, -halfHeight},
	}
	ring := make([]geo.LatLng, 0, len(offsets))
	for _, o := range offsets {
		east, north := geo.RotateMetric(o[0], o[1], angleDeg)
		ring = append(ring, center.Offset(east, north))
	}
	return ring
}

// rotateRing rotates metric offsets of already-generated vertices about
// the center.
func rotateRing(ring []geo.LatLng, center geo.LatLng, angleDeg float64) []geo.LatLng {
	if angleDeg == 0 {
		return ring
	}
	out := make([]geo.LatLng, 0, len(ring))
	for _, v := range ring {
		east := (v.Lng - center.Lng) * geo.MetersPerDegreeLng(center.Lat)
		north := (v.Lat - center.Lat) * geo.MetersPerDegreeLat
		east, north = geo.RotateMetric(east, north, angleDeg)
		out = append(out, center.Offset(east, north))
	}
	return out
}
