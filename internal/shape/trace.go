package shape

import (
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
)

// LineTrace accumulates a freehand line from a high-frequency
// pointer-move stream, discarding points within the smoothing distance
// of the previous kept point to bound the vertex count.
type LineTrace struct {
	b      *Builder
	points []geo.LatLng
	lastPx geo.Pixel
}

// NewTrace starts a freehand trace at the pointer-down coordinate.
func (b *Builder) NewTrace(start geo.LatLng) *LineTrace {
	return &LineTrace{
		b:      b,
		points: []geo.LatLng{start},
		lastPx: b.proj.Project(start),
	}
}

// Add offers the next pointer position. It reports whether the point was
// kept.
func (t *LineTrace) Add(p geo.LatLng) bool {
	px := t.b.proj.Project(p)
	if px.Dist(t.lastPx) < t.b.cfg.SmoothingPx {
		return false
	}
	t.points = append(t.points, p)
	t.lastPx = px
	return true
}

// Points returns the kept vertices so far.
func (t *LineTrace) Points() []geo.LatLng {
	return t.points
}

// Finish builds the line feature, or ErrInsufficientPoints when the
// trace never left the smoothing radius.
func (t *LineTrace) Finish() (*feature.Feature, error) {
	return t.b.Segment(t.points)
}

// PolygonSketch accumulates click points for a manually drawn polygon.
type PolygonSketch struct {
	b      *Builder
	points []geo.LatLng
}

// NewPolygonSketch starts an empty manual-polygon construction.
func (b *Builder) NewPolygonSketch() *PolygonSketch {
	return &PolygonSketch{b: b}
}

// Add appends a click point.
func (s *PolygonSketch) Add(p geo.LatLng) {
	s.points = append(s.points, p)
}

// Len returns the number of accumulated points.
func (s *PolygonSketch) Len() int {
	return len(s.points)
}

// Finish closes the ring and builds the polygon feature, or
// ErrInsufficientPoints with fewer than 3 points.
func (s *PolygonSketch) Finish() (*feature.Feature, error) {
	return s.b.Polygon(s.points)
}
