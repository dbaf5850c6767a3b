package feature

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/cartomark/annotate/internal/geo"
)

// PointGeometry builds a Point geometry from a geographic coordinate.
func PointGeometry(p geo.LatLng) (geom.Geometry, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.Lng, Y: p.Lat},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("building point: %w", err)
	}
	return pt.AsGeometry(), nil
}

// LineGeometry builds a LineString geometry from an ordered vertex list.
func LineGeometry(vertices []geo.LatLng) (geom.Geometry, error) {
	ls, err := geom.NewLineString(sequence(vertices))
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("building line: %w", err)
	}
	return ls.AsGeometry(), nil
}

// RingGeometry builds a single-ring Polygon geometry. The ring is closed
// by repeating the first vertex if the input does not already close.
func RingGeometry(vertices []geo.LatLng) (geom.Geometry, error) {
	closed := vertices
	if len(vertices) > 0 && vertices[0] != vertices[len(vertices)-1] {
		closed = make([]geo.LatLng, 0, len(vertices)+1)
		closed = append(closed, vertices...)
		closed = append(closed, vertices[0])
	}
	ring, err := geom.NewLineString(sequence(closed))
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("building ring: %w", err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("building polygon: %w", err)
	}
	return poly.AsGeometry(), nil
}

func sequence(vertices []geo.LatLng) geom.Sequence {
	flat := make([]float64, 0, len(vertices)*2)
	for _, v := range vertices {
		flat = append(flat, v.Lng, v.Lat)
	}
	return geom.NewSequence(flat, geom.DimXY)
}

// Vertices returns the feature's coordinate list as stored: the single
// point, the line vertices, or the polygon exterior ring including its
// closing vertex.
func (f *Feature) Vertices() []geo.LatLng {
	return GeometryVertices(f.Geometry)
}

// SetVertices replaces the feature's geometry with one of the same type
// built from the given vertex list. On error the stored geometry is
// left untouched.
func (f *Feature) SetVertices(vertices []geo.LatLng) error {
	switch f.Geometry.Type() {
	case geom.TypePoint:
		if len(vertices) == 0 {
			return nil
		}
		g, err := PointGeometry(vertices[0])
		if err != nil {
			return err
		}
		f.Geometry = g
	case geom.TypeLineString:
		g, err := LineGeometry(vertices)
		if err != nil {
			return err
		}
		f.Geometry = g
	case geom.TypePolygon:
		g, err := RingGeometry(vertices)
		if err != nil {
			return err
		}
		f.Geometry = g
	}
	return nil
}

// GeometryVertices extracts the coordinate list from a Point, LineString,
// or single-ring Polygon geometry.
func GeometryVertices(g geom.Geometry) []geo.LatLng {
	switch g.Type() {
	case geom.TypePoint:
		xy, ok := g.MustAsPoint().XY()
		if !ok {
			return nil
		}
		return []geo.LatLng{{Lat: xy.Y, Lng: xy.X}}
	case geom.TypeLineString:
		return sequenceVertices(g.MustAsLineString().Coordinates())
	case geom.TypePolygon:
		return sequenceVertices(g.MustAsPolygon().ExteriorRing().Coordinates())
	default:
		return nil
	}
}

func sequenceVertices(seq geom.Sequence) []geo.LatLng {
	out := make([]geo.LatLng, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		out[i] = geo.LatLng{Lat: xy.Y, Lng: xy.X}
	}
	return out
}
