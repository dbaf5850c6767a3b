package engine

import (
	"math"
	"time"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/overlay"
	"github.com/cartomark/annotate/internal/projection"
	"github.com/cartomark/annotate/internal/session"
	"github.com/cartomark/annotate/internal/transform"
)

// PointerDown routes a press. In select mode it opens an edit drag
// session against whatever is under the cursor; in construction modes
// it anchors the gesture.
func (e *Engine) PointerDown(at geo.Pixel) {
	switch e.mode {
	case ModeSelect:
		e.pointerDownSelect(at)
	case ModeLine:
		e.trace = e.builder().NewTrace(e.proj().Unproject(at))
		e.machine.PointerDown(session.KindCreate, "", "", at)
	case ModeSquare, ModeRectangle, ModeCircle, ModeTriangle:
		e.anchor = e.proj().Unproject(at)
		e.machine.PointerDown(session.KindCreate, "", "", at)
	default:
		// point, polygon and oval construction are click-driven
	}
}

func (e *Engine) pointerDownSelect(at geo.Pixel) {
	proj := e.proj()
	e.opStarted = time.Now()

	// handles of selected features take precedence over feature bodies
	for _, id := range e.machine.Selection.IDs() {
		f, ok := e.features.Get(id)
		if !ok {
			continue
		}
		ov := overlay.Compute(proj, f, e.cfg.RotationHandleOffsetPx)
		handle, hit := ov.HitTest(at, e.cfg.HandleHitTolerancePx)
		if !hit {
			continue
		}
		switch {
		case handle == overlay.HandleRot:
			e.rotateOp = transform.NewRotate(proj, f, at)
			e.machine.PointerDown(session.KindRotate, id, handle, at)
		case handle == overlay.HandleStart || handle == overlay.HandleEnd:
			op, err := transform.NewEndpointDrag(proj, f, handle)
			if err != nil {
				return
			}
			e.endpointOp = op
			e.machine.PointerDown(session.KindEndpoint, id, handle, at)
		case f.Shape == feature.ShapeCircle:
			e.circleOp = transform.NewCircleResize(proj, f, e.cfg.EllipseSegments, e.cfg.MinCircleRadiusM)
			e.machine.PointerDown(session.KindResize, id, handle, at)
		default:
			e.resizeOp = transform.NewResize(proj, f, handle, e.cfg.MinScale)
			e.machine.PointerDown(session.KindResize, id, handle, at)
		}
		return
	}

	id := e.hitFeature(at)
	if id == "" {
		e.machine.PointerDown(session.KindNone, "", "", at)
		return
	}
	if !e.machine.Selection.Contains(id) {
		e.machine.Selection.Set([]string{id})
	}

	feats := make([]*feature.Feature, 0, e.machine.Selection.Len())
	for _, sid := range e.machine.Selection.IDs() {
		if f, ok := e.features.Get(sid); ok {
			feats = append(feats, f)
		}
	}
	e.translateOp = transform.NewTranslate(proj, feats, at, e.cfg.ClickThresholdPx)
	e.machine.PointerDown(session.KindTranslate, id, "", at)
}

// PointerMove advances the live gesture. Updates below the click
// threshold are ignored so a twitchy click never mutates geometry.
func (e *Engine) PointerMove(at geo.Pixel) {
	if e.trace != nil {
		e.trace.Add(e.proj().Unproject(at))
		e.machine.PointerMove(at)
		return
	}

	drag, engaged := e.machine.PointerMove(at)
	if !e.machine.Active() {
		return
	}

	switch drag.Kind {
	case session.KindTranslate:
		// the translate op carries its own latch matching the machine's
		for _, m := range e.translateOp.Update(at) {
			f, ok := e.features.Get(m.ID)
			if !ok {
				continue
			}
			e.applyLiveUpdate(f, m.Result)
		}

	case session.KindResize:
		if !engaged {
			return
		}
		f, ok := e.features.Get(drag.FeatureID)
		if !ok {
			e.abortDrag()
			return
		}
		if e.circleOp != nil {
			e.applyLiveUpdate(f, e.circleOp.Update(at))
		} else if e.resizeOp != nil {
			e.applyLiveUpdate(f, e.resizeOp.Update(at))
		}

	case session.KindRotate:
		if !engaged {
			return
		}
		f, ok := e.features.Get(drag.FeatureID)
		if !ok {
			e.abortDrag()
			return
		}
		e.applyLiveUpdate(f, e.rotateOp.Update(at))

	case session.KindEndpoint:
		if !engaged {
			return
		}
		f, ok := e.features.Get(drag.FeatureID)
		if !ok {
			e.abortDrag()
			return
		}
		e.applyLiveUpdate(f, e.endpointOp.Update(at))
	}
}

// PointerUp closes the gesture: construction modes finalize their
// shape, edit drags commit their result.
func (e *Engine) PointerUp(at geo.Pixel) {
	if e.trace != nil {
		f, err := e.trace.Finish()
		e.createBuilt(f, err, "line")
		e.trace = nil
		e.machine.PointerUp()
		return
	}

	out := e.machine.PointerUp()

	if out.Kind == session.KindCreate {
		if !out.WasDrag {
			return
		}
		b := e.builder()
		release := e.proj().Unproject(at)
		switch e.mode {
		case ModeSquare:
			f, err := b.Square(e.anchor, release)
			e.createBuilt(f, err, "square")
		case ModeRectangle:
			f, err := b.Rectangle(e.anchor, release)
			e.createBuilt(f, err, "rectangle")
		case ModeCircle:
			f, err := b.Circle(e.anchor, release)
			e.createBuilt(f, err, "circle")
		case ModeTriangle:
			f, err := b.Triangle(e.anchor, release)
			e.createBuilt(f, err, "triangle")
		}
		return
	}

	if out.WasDrag {
		e.commitDrag(out)
	}
	e.clearOps()
}

func (e *Engine) commitDrag(out session.Outcome) {
	switch out.Kind {
	case session.KindTranslate:
		for _, id := range e.machine.Selection.IDs() {
			if f, ok := e.features.Get(id); ok {
				e.commitUpdate(f, "translate", e.opStarted)
			}
		}
	case session.KindResize:
		if f, ok := e.features.Get(out.FeatureID); ok {
			e.commitUpdate(f, "resize", e.opStarted)
		}
	case session.KindRotate:
		if f, ok := e.features.Get(out.FeatureID); ok {
			e.commitUpdate(f, "rotate", e.opStarted)
		}
	case session.KindEndpoint:
		if f, ok := e.features.Get(out.FeatureID); ok {
			e.commitUpdate(f, "endpoint", e.opStarted)
		}
	}
}

func (e *Engine) clearOps() {
	e.resizeOp = nil
	e.circleOp = nil
	e.rotateOp = nil
	e.endpointOp = nil
	e.translateOp = nil
}

// Click routes a click event. In select mode it drives the selection;
// in construction modes it supplies gesture points.
func (e *Engine) Click(at geo.Pixel, modifier bool) {
	switch e.mode {
	case ModeSelect:
		e.machine.Click(e.hitFeature(at), modifier)

	case ModePoint:
		f, err := e.builder().Point(e.proj().Unproject(at))
		e.createBuilt(f, err, "point")

	case ModePolygon:
		if e.sketch == nil {
			e.sketch = e.builder().NewPolygonSketch()
		}
		e.sketch.Add(e.proj().Unproject(at))

	case ModeOval:
		e.ovalPoints = append(e.ovalPoints, e.proj().Unproject(at))
		if len(e.ovalPoints) == 3 {
			f, err := e.builder().Oval(e.ovalPoints[0], e.ovalPoints[1], e.ovalPoints[2])
			e.createBuilt(f, err, "oval")
			e.ovalPoints = nil
		}
	}
}

// KeyDown handles keyboard input: Escape aborts everything in
// progress, Delete removes the selection.
func (e *Engine) KeyDown(key string) {
	switch key {
	case "Escape":
		e.sketch = nil
		e.trace = nil
		e.ovalPoints = nil
		e.clearOps()
		e.machine.Escape()

	case "Delete", "Backspace":
		for _, id := range e.machine.Delete() {
			e.deleteFeature(id)
		}
	}
}

// metersPerPixel samples the projection's local scale at the cursor.
func (e *Engine) metersPerPixel(at geo.Pixel) float64 {
	proj := e.proj()
	a := proj.Unproject(at)
	b := proj.Unproject(geo.Pixel{X: at.X + 1, Y: at.Y})
	return proj.DistanceMeters(a, b)
}

// hitFeature finds the feature under the cursor. Points and lines win
// over zones by proximity; overlapping zones resolve to the smallest
// containing box.
func (e *Engine) hitFeature(at geo.Pixel) string {
	proj := e.proj()
	margin := e.cfg.HandleHitTolerancePx * e.metersPerPixel(at)
	candidates := e.index.Near(proj.Unproject(at), margin)

	bestNear := ""
	bestNearDist := math.MaxFloat64
	bestZone := ""
	bestZoneArea := math.MaxFloat64

	for _, id := range candidates {
		f, ok := e.features.Get(id)
		if !ok {
			continue
		}
		if f.IsPoint() || f.IsLine() {
			d := e.vertexPathDist(proj, f, at)
			if d <= e.cfg.HandleHitTolerancePx && d < bestNearDist {
				bestNear, bestNearDist = id, d
			}
			continue
		}
		fr := overlay.ComputeFrame(proj, f)
		local := at.RotateAround(fr.Center, -fr.AngleDeg)
		tol := e.cfg.HandleHitTolerancePx
		if local.X >= fr.Box.MinX-tol && local.X <= fr.Box.MaxX+tol &&
			local.Y >= fr.Box.MinY-tol && local.Y <= fr.Box.MaxY+tol {
			area := fr.Box.Width() * fr.Box.Height()
			if area < bestZoneArea {
				bestZone, bestZoneArea = id, area
			}
		}
	}

	if bestNear != "" {
		return bestNear
	}
	return bestZone
}

// vertexPathDist returns the pixel distance from p to the feature's
// projected vertex path: the single point, or the nearest line segment.
func (e *Engine) vertexPathDist(proj projection.Projector, f *feature.Feature, p geo.Pixel) float64 {
	verts := f.Vertices()
	if len(verts) == 0 {
		return math.MaxFloat64
	}
	if len(verts) == 1 {
		return proj.Project(verts[0]).Dist(p)
	}
	best := math.MaxFloat64
	prev := proj.Project(verts[0])
	for _, v := range verts[1:] {
		cur := proj.Project(v)
		if d := pointSegmentDist(p, prev, cur); d < best {
			best = d
		}
		prev = cur
	}
	return best
}

func pointSegmentDist(p, a, b geo.Pixel) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return a.Dist(p)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return geo.Pixel{X: a.X + t*abx, Y: a.Y + t*aby}.Dist(p)
}
