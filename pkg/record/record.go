// Package record defines the serialized feature shape exchanged with the
// surrounding application and its persistence layer. Geometry serializes
// as a GeoJSON object with coordinates in [longitude, latitude] order.
package record

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Properties is the feature's canonical parametric description and
// classification, carried alongside the geometry.
type Properties struct {
	// ShapeType is one of square|rectangle|circle|triangle|oval|polygon,
	// or empty for non-parametric features.
	ShapeType string `json:"shapeType,omitempty"`

	// Center is the parametric pivot in [longitude, latitude] order.
	Center []float64 `json:"center,omitempty"`

	// Size is the defining radius or half-extent in meters.
	Size float64 `json:"size,omitempty"`

	// RotationDeg is normalized to [0,360).
	RotationDeg float64 `json:"rotationDeg"`

	Resizable bool `json:"resizable"`

	// MapElementType is one of point|zone|polyline|arrow|shape.
	MapElementType string `json:"mapElementType"`
}

// Feature is a single persisted annotation.
type Feature struct {
	ID          string        `json:"id"`
	Geometry    geom.Geometry `json:"geometry"`
	Color       string        `json:"color,omitempty"`
	Opacity     float64       `json:"opacity,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	Properties  Properties    `json:"properties"`
}
