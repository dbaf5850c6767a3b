package feature

import "fmt"

// Shape is the parametric shape family of a feature. Operations that
// apply shape-specific constraints (equal-axis scaling, radius-only
// resize) switch exhaustively on this type.
type Shape uint8

const (
	// ShapeNone marks features with no parametric description
	// (points, lines, manual polygons drawn click by click).
	ShapeNone Shape = iota
	ShapeSquare
	ShapeRectangle
	ShapeCircle
	ShapeTriangle
	ShapeOval
	ShapePolygon
)

var shapeNames = map[Shape]string{
	ShapeNone:      "",
	ShapeSquare:    "square",
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
	ShapeTriangle:  "triangle",
	ShapeOval:      "oval",
	ShapePolygon:   "polygon",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// ParseShape converts a serialized shapeType value to its Shape.
// The empty string maps to ShapeNone.
func ParseShape(s string) (Shape, error) {
	for shape, name := range shapeNames {
		if name == s {
			return shape, nil
		}
	}
	return ShapeNone, fmt.Errorf("unknown shape type: %q", s)
}

// Parametric reports whether the shape is regenerable from
// (center, size, rotation) alone.
func (s Shape) Parametric() bool {
	switch s {
	case ShapeSquare, ShapeRectangle, ShapeCircle, ShapeTriangle, ShapeOval:
		return true
	default:
		return false
	}
}

// UniformScale reports whether resize must keep both axes equal.
func (s Shape) UniformScale() bool {
	return s == ShapeSquare || s == ShapeCircle
}

// ElementType classifies a feature for rendering and visibility grouping.
type ElementType uint8

const (
	ElementPoint ElementType = iota
	ElementZone
	ElementPolyline
	ElementArrow
	ElementShape
)

var elementNames = map[ElementType]string{
	ElementPoint:    "point",
	ElementZone:     "zone",
	ElementPolyline: "polyline",
	ElementArrow:    "arrow",
	ElementShape:    "shape",
}

func (e ElementType) String() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return fmt.Sprintf("element(%d)", uint8(e))
}

// ParseElementType converts a serialized mapElementType value.
func ParseElementType(s string) (ElementType, error) {
	for e, name := range elementNames {
		if name == s {
			return e, nil
		}
	}
	return ElementPoint, fmt.Errorf("unknown map element type: %q", s)
}
