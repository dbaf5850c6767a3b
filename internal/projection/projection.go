// Package projection defines the boundary between the engine and the
// rendering surface's current map projection. The engine converts through
// a Projector on every use and never caches pixel positions across frames,
// since the surface recomputes the projection on each pan/zoom.
package projection

import (
	"github.com/cartomark/annotate/internal/geo"
)

// Projector converts between geographic coordinates and the screen
// pixel frame, and measures metric distances. Implementations wrap the
// rendering surface's own projection functions.
type Projector interface {
	// Project converts a geographic point to the current pixel frame.
	Project(p geo.LatLng) geo.Pixel

	// Unproject converts a pixel position back to geographic coordinates.
	Unproject(px geo.Pixel) geo.LatLng

	// DistanceMeters returns the metric distance between two geographic
	// points, using whatever distance primitive the surface provides.
	DistanceMeters(a, b geo.LatLng) float64
}

// Mercator projects through EPSG:3857 (web mercator) scaled by a
// pixels-per-meter factor, the projection web map surfaces use.
type Mercator struct {
	// PixelsPerMeter scales mercator meters to screen pixels for the
	// current zoom level.
	PixelsPerMeter float64
}

// NewMercator creates a Mercator projector for the given zoom scale.
func NewMercator(pixelsPerMeter float64) *Mercator {
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = 1
	}
	return &Mercator{PixelsPerMeter: pixelsPerMeter}
}

func (m *Mercator) Project(p geo.LatLng) geo.Pixel {
	x, y := geo.ToWebMercator(p)
	return geo.Pixel{X: x * m.PixelsPerMeter, Y: -y * m.PixelsPerMeter}
}

func (m *Mercator) Unproject(px geo.Pixel) geo.LatLng {
	return geo.FromWebMercator(px.X/m.PixelsPerMeter, -px.Y/m.PixelsPerMeter)
}

func (m *Mercator) DistanceMeters(a, b geo.LatLng) float64 {
	return geo.HaversineMeters(a, b)
}

// Flat is an equirectangular projector anchored at a reference latitude.
// It maps degrees to pixels linearly, which keeps pixel math exact for
// tests and headless use.
type Flat struct {
	// PixelsPerMeter scales ground meters at the anchor latitude to pixels.
	PixelsPerMeter float64
	// AnchorLat fixes the longitude scale.
	AnchorLat float64
}

// NewFlat creates a Flat projector anchored at the given latitude.
func NewFlat(pixelsPerMeter, anchorLat float64) *Flat {
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = 1
	}
	return &Flat{PixelsPerMeter: pixelsPerMeter, AnchorLat: anchorLat}
}

func (f *Flat) Project(p geo.LatLng) geo.Pixel {
	return geo.Pixel{
		X: p.Lng * geo.MetersPerDegreeLng(f.AnchorLat) * f.PixelsPerMeter,
		Y: -p.Lat * geo.MetersPerDegreeLat * f.PixelsPerMeter,
	}
}

func (f *Flat) Unproject(px geo.Pixel) geo.LatLng {
	return geo.LatLng{
		Lat: -px.Y / (geo.MetersPerDegreeLat * f.PixelsPerMeter),
		Lng: px.X / (geo.MetersPerDegreeLng(f.AnchorLat) * f.PixelsPerMeter),
	}
}

func (f *Flat) DistanceMeters(a, b geo.LatLng) float64 {
	return geo.HaversineMeters(a, b)
}
