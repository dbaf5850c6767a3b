package feature

import (
	"fmt"

	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/pkg/record"
)

// ToRecord converts a live feature to its persisted record shape.
func ToRecord(f *Feature) record.Feature {
	rec := record.Feature{
		ID:          f.ID,
		Geometry:    f.Geometry,
		Color:       f.Style.Color,
		Opacity:     f.Style.Opacity,
		StrokeWidth: f.Style.StrokeWidth,
		Properties: record.Properties{
			ShapeType:      f.Shape.String(),
			Size:           f.SizeMeters,
			RotationDeg:    f.AngleDeg(),
			Resizable:      f.Resizable,
			MapElementType: f.Element.String(),
		},
	}
	if f.HasCenter {
		rec.Properties.Center = []float64{f.Center.Lng, f.Center.Lat}
	}
	return rec
}

// FromRecord converts a persisted record back into a live feature.
func FromRecord(rec record.Feature) (*Feature, error) {
	shape, err := ParseShape(rec.Properties.ShapeType)
	if err != nil {
		return nil, fmt.Errorf("parsing shape type: %w", err)
	}
	element, err := ParseElementType(rec.Properties.MapElementType)
	if err != nil {
		return nil, fmt.Errorf("parsing map element type: %w", err)
	}

	f := &Feature{
		ID:       rec.ID,
		Geometry: rec.Geometry,
		Style: Style{
			Color:       rec.Color,
			Opacity:     rec.Opacity,
			StrokeWidth: rec.StrokeWidth,
		},
		Shape:      shape,
		Element:    element,
		SizeMeters: rec.Properties.Size,
		Resizable:  rec.Properties.Resizable,
	}
	f.SetAngleDeg(rec.Properties.RotationDeg)

	if len(rec.Properties.Center) >= 2 {
		center := geo.LatLng{Lat: rec.Properties.Center[1], Lng: rec.Properties.Center[0]}
		if !center.Valid() {
			return nil, geo.ErrInvalidCoordinates
		}
		f.SetCenter(center)
	}
	return f, nil
}
