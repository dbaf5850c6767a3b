// Package overlay computes selection overlays: the rotated bounding ring
// and the handle points used for hit-testing and rendering.
//
// Bounding boxes are only meaningful in an unrotated frame, so the
// overlay is derived by un-rotating the projected vertices about the
// feature's pixel-space center, boxing them there, and rotating the
// derived handle points back.
package overlay

import (
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/projection"
)

// HandleKey identifies a draggable anchor around a selected feature.
type HandleKey string

const (
	HandleNW HandleKey = "nw"
	HandleN  HandleKey = "n"
	HandleNE HandleKey = "ne"
	HandleE  HandleKey = "e"
	HandleSE HandleKey = "se"
	HandleS  HandleKey = "s"
	HandleSW HandleKey = "sw"
	HandleW  HandleKey = "w"

	// HandleRot is the rotation grip above the north edge.
	HandleRot HandleKey = "rot"

	// HandleStart and HandleEnd are the endpoint anchors of open lines.
	HandleStart HandleKey = "start"
	HandleEnd   HandleKey = "end"
)

// BoxHandleKeys lists the eight bounding-box handles in ring order.
var BoxHandleKeys = []HandleKey{
	HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW,
}

// Corner reports whether k is one of the four corner handles.
func (k HandleKey) Corner() bool {
	switch k {
	case HandleNW, HandleNE, HandleSE, HandleSW:
		return true
	}
	return false
}

// Edge reports whether k is one of the four edge-midpoint handles.
func (k HandleKey) Edge() bool {
	switch k {
	case HandleN, HandleE, HandleS, HandleW:
		return true
	}
	return false
}

// Opposite returns the fixed anchor for a resize from k.
func (k HandleKey) Opposite() HandleKey {
	switch k {
	case HandleNW:
		return HandleSE
	case HandleNE:
		return HandleSW
	case HandleSE:
		return HandleNW
	case HandleSW:
		return HandleNE
	case HandleN:
		return HandleS
	case HandleS:
		return HandleN
	case HandleE:
		return HandleW
	case HandleW:
		return HandleE
	}
	return k
}

// Box is an axis-aligned pixel bounding box in the unrotated frame.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the box extent along x.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box extent along y.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the box midpoint.
func (b Box) Center() geo.Pixel {
	return geo.Pixel{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// HandlePoint returns the handle position on the box for k. Corners are
// the box corners, edge handles the side midpoints. North is MinY since
// pixel y grows downward.
func (b Box) HandlePoint(k HandleKey) geo.Pixel {
	midX := (b.MinX + b.MaxX) / 2
	midY := (b.MinY + b.MaxY) / 2
	switch k {
	case HandleNW:
		return geo.Pixel{X: b.MinX, Y: b.MinY}
	case HandleN:
		return geo.Pixel{X: midX, Y: b.MinY}
	case HandleNE:
		return geo.Pixel{X: b.MaxX, Y: b.MinY}
	case HandleE:
		return geo.Pixel{X: b.MaxX, Y: midY}
	case HandleSE:
		return geo.Pixel{X: b.MaxX, Y: b.MaxY}
	case HandleS:
		return geo.Pixel{X: midX, Y: b.MaxY}
	case HandleSW:
		return geo.Pixel{X: b.MinX, Y: b.MaxY}
	case HandleW:
		return geo.Pixel{X: b.MinX, Y: midY}
	}
	return b.Center()
}

// BoxFromPixels computes the bounding box over the given points.
func BoxFromPixels(pts []geo.Pixel) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Frame is a feature's unrotated pixel-space representation for the
// current projection: the frozen "frame 0" that resize and rotate
// operations derive their deltas from.
type Frame struct {
	Center    geo.Pixel
	AngleDeg  float64
	Unrotated []geo.Pixel
	Box       Box
}

// ComputeFrame projects the feature's vertices, un-rotates them by the
// negative rotation angle about the projected center, and boxes them.
func ComputeFrame(proj projection.Projector, f *feature.Feature) Frame {
	center := proj.Project(f.CenterPoint())
	angle := f.AngleDeg()

	verts := f.Vertices()
	unrotated := make([]geo.Pixel, len(verts))
	for i, v := range verts {
		unrotated[i] = proj.Project(v).RotateAround(center, -angle)
	}

	return Frame{
		Center:    center,
		AngleDeg:  angle,
		Unrotated: unrotated,
		Box:       BoxFromPixels(unrotated),
	}
}

// UnrotatedHandle returns the frame-0 position of a box handle.
func (fr Frame) UnrotatedHandle(k HandleKey) geo.Pixel {
	return fr.Box.HandlePoint(k)
}

// RotatedHandle returns the on-screen position of a box handle.
func (fr Frame) RotatedHandle(k HandleKey) geo.Pixel {
	return fr.Box.HandlePoint(k).RotateAround(fr.Center, fr.AngleDeg)
}

// BoundingRing returns the feature's rotated bounding ring, closed.
func (fr Frame) BoundingRing() []geo.Pixel {
	corners := []HandleKey{HandleNW, HandleNE, HandleSE, HandleSW}
	ring := make([]geo.Pixel, 0, len(corners)+1)
	for _, k := range corners {
		ring = append(ring, fr.RotatedHandle(k))
	}
	return append(ring, ring[0])
}
