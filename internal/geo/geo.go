// Package geo provides the coordinate math used by the annotation engine:
// geographic points, metric offsets at a latitude, and angle normalization.
//
// Metric conversions use a local equirectangular approximation
// (meters-per-degree at the feature's latitude). This is valid for feature
// sizes up to a few hundred kilometers and degrades above ~85° latitude,
// which is acceptable for the historical-map domain this engine serves.
package geo

import (
	"errors"
	"math"

	"github.com/wroge/wgs84"
)

// MetersPerDegreeLat is the length of one degree of latitude in meters.
const MetersPerDegreeLat = 111320.0

// earthRadiusMeters is the mean earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// ErrInvalidCoordinates is returned when coordinates are outside the valid
// latitude/longitude range.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// LatLng is a geographic point in EPSG:4326.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MetersPerDegreeLng returns the length of one degree of longitude in
// meters at the given latitude. Approaches zero near the poles.
func MetersPerDegreeLng(lat float64) float64 {
	return MetersPerDegreeLat * math.Cos(lat*math.Pi/180)
}

// Offset returns the point reached by moving the given metric distances
// east and north from p, using the meters-per-degree approximation at
// p's latitude.
func (p LatLng) Offset(eastMeters, northMeters float64) LatLng {
	return LatLng{
		Lat: p.Lat + northMeters/MetersPerDegreeLat,
		Lng: p.Lng + eastMeters/MetersPerDegreeLng(p.Lat),
	}
}

// Add returns p shifted by the given geographic delta.
func (p LatLng) Add(dLat, dLng float64) LatLng {
	return LatLng{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}

// Valid reports whether p is inside the WGS84 coordinate range.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineMeters returns the great-circle distance between a and b in
// meters. It is the engine's default metric-distance primitive; rendering
// surfaces may substitute their own via the projection layer.
func HaversineMeters(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}

// NormalizeDeg maps an angle in degrees into [0, 360).
func NormalizeDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// RotateMetric rotates an east/north metric offset clockwise (compass
// sense, matching screen-space rotation) by deg degrees.
func RotateMetric(east, north, deg float64) (rotEast, rotNorth float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return east*cos + north*sin, north*cos - east*sin
}

// ToWebMercator converts p to EPSG:3857 coordinates.
func ToWebMercator(p LatLng) (x, y float64) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ = f(p.Lng, p.Lat, 0)
	return x, y
}

// FromWebMercator converts EPSG:3857 coordinates back to a geographic point.
func FromWebMercator(x, y float64) LatLng {
	f := wgs84.EPSG().Transform(3857, 4326)
	lng, lat, _ := f(x, y, 0)
	return LatLng{Lat: lat, Lng: lng}
}
