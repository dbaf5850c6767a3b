package overlay

import (
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/projection"
)

// Kind classifies the overlay presented for a selected feature.
type Kind uint8

const (
	// KindPoint features carry no handles and support translate only.
	KindPoint Kind = iota
	// KindLine overlays expose only the two endpoint anchors.
	KindLine
	// KindBox overlays carry the full eight-handle bounding ring plus
	// the rotation grip.
	KindBox
	// KindRadius overlays are circles: eight resize handles but no
	// rotation grip, and every resize is radius-driven.
	KindRadius
)

// Overlay is the computed selection geometry for one feature under the
// current projection.
type Overlay struct {
	FeatureID string
	Kind      Kind
	Frame     Frame

	// Handles holds the on-screen handle positions keyed by HandleKey.
	// Empty for point features.
	Handles map[HandleKey]geo.Pixel

	// Ring is the rotated bounding ring (closed), nil for points and
	// lines.
	Ring []geo.Pixel
}

// Compute builds the overlay for f. rotOffsetPx is the distance of the
// rotation grip above the north edge midpoint, in pixels.
func Compute(proj projection.Projector, f *feature.Feature, rotOffsetPx float64) Overlay {
	fr := ComputeFrame(proj, f)
	ov := Overlay{FeatureID: f.ID, Frame: fr}

	switch {
	case f.IsPoint():
		ov.Kind = KindPoint
		return ov

	case f.IsLine():
		ov.Kind = KindLine
		verts := f.Vertices()
		if len(verts) == 0 {
			return ov
		}
		ov.Handles = map[HandleKey]geo.Pixel{
			HandleStart: proj.Project(verts[0]),
			HandleEnd:   proj.Project(verts[len(verts)-1]),
		}
		return ov

	case f.Shape == feature.ShapeCircle:
		ov.Kind = KindRadius
	default:
		ov.Kind = KindBox
	}

	ov.Handles = make(map[HandleKey]geo.Pixel, len(BoxHandleKeys)+1)
	for _, k := range BoxHandleKeys {
		ov.Handles[k] = fr.RotatedHandle(k)
	}
	if ov.Kind == KindBox {
		north := fr.Box.HandlePoint(HandleN)
		grip := geo.Pixel{X: north.X, Y: north.Y - rotOffsetPx}
		ov.Handles[HandleRot] = grip.RotateAround(fr.Center, fr.AngleDeg)
	}
	ov.Ring = fr.BoundingRing()
	return ov
}

// HitTest returns the handle within tolerancePx of p, preferring the
// rotation grip, then corners, then edges, then line endpoints. The
// boolean reports whether any handle matched.
func (ov Overlay) HitTest(p geo.Pixel, tolerancePx float64) (HandleKey, bool) {
	order := []HandleKey{
		HandleRot,
		HandleNW, HandleNE, HandleSE, HandleSW,
		HandleN, HandleE, HandleS, HandleW,
		HandleStart, HandleEnd,
	}
	for _, k := range order {
		h, ok := ov.Handles[k]
		if !ok {
			continue
		}
		if h.Dist(p) <= tolerancePx {
			return k, true
		}
	}
	return "", false
}
