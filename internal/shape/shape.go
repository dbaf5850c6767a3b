// Package shape builds canonical feature geometry from the minimal
// control parameters a pointer gesture provides: a center and a size
// reference, two corners, or an ordered list of clicks.
package shape

import (
	"errors"
	"math"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/projection"
)

// ErrInsufficientPoints is returned when a gesture finishes with fewer
// points than the requested shape needs. Callers ignore it silently: no
// feature is created for an invalid gesture.
var ErrInsufficientPoints = errors.New("not enough points for shape")

const (
	defaultEllipseSegments = 32
	defaultSmoothingPx     = 3.0
)

// Config tunes the generators.
type Config struct {
	// EllipseSegments is the vertex count for circle and oval rings.
	EllipseSegments int
	// SmoothingPx is the minimum pixel distance between kept freehand
	// vertices.
	SmoothingPx float64
}

func (c Config) withDefaults() Config {
	if c.EllipseSegments <= 0 {
		c.EllipseSegments = defaultEllipseSegments
	}
	if c.SmoothingPx <= 0 {
		c.SmoothingPx = defaultSmoothingPx
	}
	return c
}

// Builder generates features against the current projection.
type Builder struct {
	proj  projection.Projector
	cfg   Config
	style feature.Style
}

// NewBuilder creates a Builder. The style is applied to every generated
// feature.
func NewBuilder(proj projection.Projector, cfg Config, style feature.Style) *Builder {
	return &Builder{proj: proj, cfg: cfg.withDefaults(), style: style}
}

// Point creates a point annotation at the click's coordinate.
func (b *Builder) Point(p geo.LatLng) (*feature.Feature, error) {
	g, err := feature.PointGeometry(p)
	if err != nil {
		return nil, err
	}
	return &feature.Feature{
		Geometry: g,
		Style:    b.style,
		Element:  feature.ElementPoint,
	}, nil
}

// Segment creates a line annotation from an ordered vertex list.
func (b *Builder) Segment(points []geo.LatLng) (*feature.Feature, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}
	g, err := feature.LineGeometry(points)
	if err != nil {
		return nil, err
	}
	return &feature.Feature{
		Geometry: g,
		Style:    b.style,
		Element:  feature.ElementPolyline,
	}, nil
}

// Polygon creates a manually drawn polygon from 3+ click points. The
// ring is closed by repeating the first point.
func (b *Builder) Polygon(points []geo.LatLng) (*feature.Feature, error) {
	if len(points) < 3 {
		return nil, ErrInsufficientPoints
	}
	g, err := feature.RingGeometry(points)
	if err != nil {
		return nil, err
	}
	return &feature.Feature{
		Geometry: g,
		Style:    b.style,
		Shape:    feature.ShapePolygon,
		Element:  feature.ElementZone,
	}, nil
}

// Square creates an axis-aligned square from its center and a size
// reference point. The half-side is the pixel distance between center
// and reference divided by √2, expressed back as geographic offsets.
func (b *Builder) Square(center, ref geo.LatLng) (*feature.Feature, error) {
	centerPx := b.proj.Project(center)
	half := centerPx.Dist(b.proj.Project(ref)) / math.Sqrt2

	corners := []geo.LatLng{
		b.proj.Unproject(centerPx.Add(geo.Pixel{X: -half, Y: -half})),
		b.proj.Unproject(centerPx.Add(geo.Pixel{X: half, Y: -half})),
		b.proj.Unproject(centerPx.Add(geo.Pixel{X: half, Y: half})),
		b.proj.Unproject(centerPx.Add(geo.Pixel{X: -half, Y: half})),
	}

	// half-side in meters is the canonical size baseline
	edgeMid := b.proj.Unproject(centerPx.Add(geo.Pixel{X: half, Y: 0}))
	size := b.proj.DistanceMeters(center, edgeMid)

	g, err := feature.RingGeometry(corners)
	if err != nil {
		return nil, err
	}
	f := &feature.Feature{
		Geometry:   g,
		Style:      b.style,
		Shape:      feature.ShapeSquare,
		Element:    feature.ElementShape,
		SizeMeters: size,
		Resizable:  true,
	}
	f.SetCenter(center)
	return f, nil
}

// Rectangle creates a rectangle from two opposite corners.
func (b *Builder) Rectangle(a, c geo.LatLng) (*feature.Feature, error) {
	corners := []geo.LatLng{
		{Lat: a.Lat, Lng: a.Lng},
		{Lat: a.Lat, Lng: c.Lng},
		{Lat: c.Lat, Lng: c.Lng},
		{Lat: c.Lat, Lng: a.Lng},
	}
	g, err := feature.RingGeometry(corners)
	if err != nil {
		return nil, err
	}
	f := &feature.Feature{
		Geometry:  g,
		Style:     b.style,
		Shape:     feature.ShapeRectangle,
		Element:   feature.ElementShape,
		Resizable: true,
	}
	f.SetCenter(geo.LatLng{Lat: (a.Lat + c.Lat) / 2, Lng: (a.Lng + c.Lng) / 2})
	return f, nil
}

// Circle creates a circle from its center and an edge point. The circle
// is approximated as a closed ring so every zone renders as a Polygon.
func (b *Builder) Circle(center, edge geo.LatLng) (*feature.Feature, error) {
	radius := b.proj.DistanceMeters(center, edge)
	g, err := feature.RingGeometry(b.ellipseRing(center, radius, radius))
	if err != nil {
		return nil, err
	}
	f := &feature.Feature{
		Geometry:   g,
		Style:      b.style,
		Shape:      feature.ShapeCircle,
		Element:    feature.ElementShape,
		SizeMeters: radius,
		Resizable:  true,
	}
	f.SetCenter(center)
	return f, nil
}

// Triangle creates an equilateral, point-up triangle from its center and
// a size reference point: vertices at 90°, 210° and 330° from center.
func (b *Builder) Triangle(center, ref geo.LatLng) (*feature.Feature, error) {
	radius := b.proj.DistanceMeters(center, ref)
	g, err := feature.RingGeometry(TriangleRing(center, radius))
	if err != nil {
		return nil, err
	}
	f := &feature.Feature{
		Geometry:   g,
		Style:      b.style,
		Shape:      feature.ShapeTriangle,
		Element:    feature.ElementShape,
		SizeMeters: radius,
		Resizable:  true,
	}
	f.SetCenter(center)
	return f, nil
}

// Oval creates an ellipse from its center plus a height reference and a
// width reference point (the two-step gesture).
func (b *Builder) Oval(center, heightRef, widthRef geo.LatLng) (*feature.Feature, error) {
	heightRadius := b.proj.DistanceMeters(center, heightRef)
	widthRadius := b.proj.DistanceMeters(center, widthRef)
	g, err := feature.RingGeometry(b.ellipseRing(center, widthRadius, heightRadius))
	if err != nil {
		return nil, err
	}
	f := &feature.Feature{
		Geometry:  g,
		Style:     b.style,
		Shape:     feature.ShapeOval,
		Element:   feature.ElementShape,
		Resizable: true,
	}
	f.SetCenter(center)
	return f, nil
}

// ellipseRing samples an unclosed ellipse ring around center with the
// given metric radii.
func (b *Builder) ellipseRing(center geo.LatLng, widthRadius, heightRadius float64) []geo.LatLng {
	return EllipseRing(center, widthRadius, heightRadius, b.cfg.EllipseSegments)
}

// EllipseRing samples an unclosed n-vertex ellipse ring around center.
func EllipseRing(center geo.LatLng, widthRadius, heightRadius float64, segments int) []geo.LatLng {
	if segments <= 0 {
		segments = defaultEllipseSegments
	}
	ring := make([]geo.LatLng, 0, segments)
	for i := 0; i < segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		ring = append(ring, center.Offset(widthRadius*math.Sin(t), heightRadius*math.Cos(t)))
	}
	return ring
}

// TriangleRing returns the three vertices of an equilateral point-up
// triangle with the given metric circumradius.
func TriangleRing(center geo.LatLng, radius float64) []geo.LatLng {
	angles := []float64{90, 210, 330}
	ring := make([]geo.LatLng, 0, len(angles))
	for _, a := range angles {
		rad := a * math.Pi / 180
		ring = append(ring, center.Offset(radius*math.Cos(rad), radius*math.Sin(rad)))
	}
	return ring
}
