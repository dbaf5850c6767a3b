package geo

import "math"

// Pixel is a point in the screen-projected pixel frame (x right, y down).
// Pixel coordinates are only meaningful for the projection state they were
// computed under and are never cached across frames.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q componentwise.
func (p Pixel) Add(q Pixel) Pixel {
	return Pixel{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q componentwise.
func (p Pixel) Sub(q Pixel) Pixel {
	return Pixel{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the euclidean distance between p and q.
func (p Pixel) Dist(q Pixel) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// RotateAround rotates p about center by deg degrees in the screen frame.
// With y growing downward this is a clockwise rotation on screen.
func (p Pixel) RotateAround(center Pixel, deg float64) Pixel {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Pixel{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// AngleDeg returns the angle of the vector center→p in degrees,
// measured with atan2 in the screen frame.
func AngleDeg(center, p Pixel) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
}
