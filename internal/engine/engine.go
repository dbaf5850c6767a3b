// Package engine is the facade the surrounding application drives: it
// owns the live feature registry, routes pointer and keyboard events
// through the selection and drag state machine, and dispatches
// committed operations to persistence.
//
// Engine methods are not safe for concurrent use. The rendering
// surface serializes all calls on its UI thread; persistence and
// telemetry are the only asynchronous paths and run behind their own
// queues.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/cartomark/annotate/internal/cache"
	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/index"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/overlay"
	"github.com/cartomark/annotate/internal/persist"
	"github.com/cartomark/annotate/internal/projection"
	"github.com/cartomark/annotate/internal/session"
	"github.com/cartomark/annotate/internal/shape"
	"github.com/cartomark/annotate/internal/transform"
	"github.com/cartomark/annotate/pkg/record"
)

// Mode selects what pointer events mean: editing existing features or
// constructing a new one of a given shape.
type Mode uint8

const (
	ModeSelect Mode = iota
	ModePoint
	ModeLine
	ModePolygon
	ModeSquare
	ModeRectangle
	ModeCircle
	ModeTriangle
	ModeOval
)

// Callbacks notify the surrounding application after committed
// operations. Nil callbacks are skipped.
type Callbacks struct {
	Created func(f *feature.Feature)
	Updated func(f *feature.Feature)
	Deleted func(id string)
}

// Dependencies holds all dependencies for the engine.
type Dependencies struct {
	Projection *projection.Context
	Persist    *persist.Service
	LogManager *logging.SlogManager
	Callbacks  Callbacks

	Interaction config.Interaction
	Style       feature.Style
}

// Engine is the annotation transform engine.
type Engine struct {
	deps Dependencies
	cfg  config.Interaction

	features *cache.FeatureCache
	tempIDs  *cache.TempIDs
	machine  *session.Machine
	index    *index.Index

	mode Mode

	// in-progress construction, at most one active
	trace      *shape.LineTrace
	sketch     *shape.PolygonSketch
	ovalPoints []geo.LatLng
	anchor     geo.LatLng

	// live drag operation matching machine.Current().Kind
	resizeOp    *transform.Resize
	circleOp    *transform.CircleResize
	rotateOp    *transform.Rotate
	endpointOp  *transform.EndpointDrag
	translateOp *transform.Translate
	opStarted   time.Time

	metrics *engineMetrics
}

// New creates an engine. Zero Interaction fields fall back to the
// configured defaults.
func New(deps Dependencies) *Engine {
	cfg := deps.Interaction
	if cfg.ClickThresholdPx <= 0 {
		cfg.ClickThresholdPx = 5
	}
	if cfg.SmoothingPx <= 0 {
		cfg.SmoothingPx = 3
	}
	if cfg.MinScale <= 0 {
		cfg.MinScale = transform.DefaultMinScale
	}
	if cfg.EllipseSegments <= 0 {
		cfg.EllipseSegments = 32
	}
	if cfg.RotationHandleOffsetPx <= 0 {
		cfg.RotationHandleOffsetPx = 30
	}
	if cfg.HandleHitTolerancePx <= 0 {
		cfg.HandleHitTolerancePx = 8
	}
	if cfg.MinCircleRadiusM <= 0 {
		cfg.MinCircleRadiusM = transform.DefaultMinCircleRadiusMeters
	}

	return &Engine{
		deps:     deps,
		cfg:      cfg,
		features: cache.NewFeatureCache(),
		tempIDs:  &cache.TempIDs{},
		machine:  session.NewMachine(cfg.ClickThresholdPx),
		index:    index.New(),
		metrics:  newEngineMetrics(),
	}
}

func (e *Engine) proj() projection.Projector {
	return e.deps.Projection.Current()
}

func (e *Engine) builder() *shape.Builder {
	return shape.NewBuilder(e.proj(), shape.Config{
		EllipseSegments: e.cfg.EllipseSegments,
		SmoothingPx:     e.cfg.SmoothingPx,
	}, e.deps.Style)
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetMode switches the interaction mode. Any in-progress multi-step
// construction is finalized synchronously first, and switching away
// from select clears the selection.
func (e *Engine) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	e.FinishConstruction()
	e.abortDrag()
	if m != ModeSelect {
		e.machine.Selection.Clear()
	}
	e.mode = m
}

// FinishConstruction finalizes any in-progress multi-step shape. A
// polygon sketch with 3+ points auto-closes; anything shorter is
// discarded without a feature.
func (e *Engine) FinishConstruction() {
	if e.sketch != nil {
		f, err := e.sketch.Finish()
		e.createBuilt(f, err, "polygon")
		e.sketch = nil
	}
	if e.trace != nil {
		f, err := e.trace.Finish()
		e.createBuilt(f, err, "line")
		e.trace = nil
	}
	e.ovalPoints = nil
}

// Get returns the live feature for id.
func (e *Engine) Get(id string) (*feature.Feature, bool) {
	return e.features.Get(id)
}

// List returns all live features.
func (e *Engine) List() []*feature.Feature {
	return e.features.List()
}

// Len returns the number of live features.
func (e *Engine) Len() int { return e.features.Len() }

// Put registers an externally supplied feature without firing
// callbacks or persistence, for hydrating from storage. Features
// without an id get a temporary one.
func (e *Engine) Put(f *feature.Feature) {
	if f.ID == "" {
		f.ID = e.tempIDs.Next()
	}
	e.features.Put(f)
	if err := e.index.Upsert(f.ID, f.Vertices()); err != nil {
		e.log("engine:Put", fmt.Sprintf("Indexing %s failed: %v", f.ID, err), "WARN")
	}
}

// Hydrate loads persisted records into the registry. Unreadable records
// are skipped with a log entry.
func (e *Engine) Hydrate(recs []record.Feature) {
	for _, rec := range recs {
		f, err := feature.FromRecord(rec)
		if err != nil {
			e.log("engine:Hydrate", fmt.Sprintf("Skipping record %s: %v", rec.ID, err), "WARN")
			continue
		}
		e.Put(f)
	}
}

// AdoptID rewrites a temporary feature id to the identifier the
// persistence layer assigned. Selection membership follows the rename.
func (e *Engine) AdoptID(tempID, realID string) bool {
	if !e.features.Rekey(tempID, realID) {
		return false
	}
	e.index.Remove(tempID)
	if f, ok := e.features.Get(realID); ok {
		if err := e.index.Upsert(realID, f.Vertices()); err != nil {
			e.log("engine:AdoptID", fmt.Sprintf("Indexing %s failed: %v", realID, err), "WARN")
		}
	}
	if e.machine.Selection.Contains(tempID) {
		e.machine.Selection.Remove(tempID)
		e.machine.Selection.Click(realID, true)
	}
	return true
}

// Selection returns the selected feature ids in sorted order.
func (e *Engine) Selection() []string {
	return e.machine.Selection.IDs()
}

// SetSelection replaces the selection, dropping ids with no live
// feature.
func (e *Engine) SetSelection(ids []string) {
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.features.Get(id); ok {
			live = append(live, id)
		}
	}
	e.machine.Selection.Set(live)
}

// Overlays computes the anchor overlays for the current selection under
// the current projection.
func (e *Engine) Overlays() []overlay.Overlay {
	proj := e.proj()
	ids := e.machine.Selection.IDs()
	out := make([]overlay.Overlay, 0, len(ids))
	for _, id := range ids {
		f, ok := e.features.Get(id)
		if !ok {
			continue
		}
		out = append(out, overlay.Compute(proj, f, e.cfg.RotationHandleOffsetPx))
	}
	return out
}

// ApplyResizeFromDimensions resizes a parametric feature to explicit
// metric dimensions, the non-drag entry point for dimension inputs.
func (e *Engine) ApplyResizeFromDimensions(id string, widthMeters, heightMeters float64) error {
	f, ok := e.features.Get(id)
	if !ok {
		return feature.ErrNotFound
	}
	started := time.Now()
	res, err := transform.FromDimensions(f, widthMeters, heightMeters, e.cfg.EllipseSegments)
	if err != nil {
		return err
	}
	if err := res.Apply(f); err != nil {
		return err
	}
	e.commitUpdate(f, "resize_dimensions", started)
	return nil
}

// ApplyRotateFromAngle rotates a feature to an absolute angle, the
// non-drag entry point for angle inputs.
func (e *Engine) ApplyRotateFromAngle(id string, angleDeg float64) error {
	f, ok := e.features.Get(id)
	if !ok {
		return feature.ErrNotFound
	}
	started := time.Now()
	res := transform.FromAngle(e.proj(), f, angleDeg)
	if err := res.Apply(f); err != nil {
		return err
	}
	e.commitUpdate(f, "rotate_angle", started)
	return nil
}

// createBuilt registers a construction result. Gestures with too few
// points produce no feature and no log; any other construction failure
// is logged and the gesture discarded.
func (e *Engine) createBuilt(f *feature.Feature, err error, op string) {
	if err != nil {
		if !errors.Is(err, shape.ErrInsufficientPoints) {
			e.log("engine:createBuilt", fmt.Sprintf("Discarding %s gesture: %v", op, err), "WARN")
		}
		return
	}
	e.createFeature(f, op)
}

// createFeature registers a newly constructed feature, fires the
// creation callback, and dispatches its save.
func (e *Engine) createFeature(f *feature.Feature, op string) {
	started := time.Now()
	f.ID = e.tempIDs.Next()
	e.features.Put(f)
	if err := e.index.Upsert(f.ID, f.Vertices()); err != nil {
		e.log("engine:createFeature", fmt.Sprintf("Indexing %s failed: %v", f.ID, err), "WARN")
	}
	if e.deps.Callbacks.Created != nil {
		e.deps.Callbacks.Created(f)
	}
	if e.deps.Persist != nil {
		e.deps.Persist.SaveAsync(f)
	}
	e.metrics.recordOp(op, time.Since(started))
}

// applyLiveUpdate writes replacement state during a drag: geometry and
// index move together, and the update callback lets the surface redraw.
func (e *Engine) applyLiveUpdate(f *feature.Feature, res transform.Result) {
	if err := res.Apply(f); err != nil {
		e.log("engine:applyLiveUpdate", fmt.Sprintf("Applying update to %s failed: %v", f.ID, err), "WARN")
		return
	}
	if err := e.index.Upsert(f.ID, f.Vertices()); err != nil {
		e.log("engine:applyLiveUpdate", fmt.Sprintf("Indexing %s failed: %v", f.ID, err), "WARN")
	}
	if e.deps.Callbacks.Updated != nil {
		e.deps.Callbacks.Updated(f)
	}
}

// commitUpdate finalizes a completed operation on an already-updated
// feature: index, callback, persistence, duration metric.
func (e *Engine) commitUpdate(f *feature.Feature, op string, started time.Time) {
	if err := e.index.Upsert(f.ID, f.Vertices()); err != nil {
		e.log("engine:commitUpdate", fmt.Sprintf("Indexing %s failed: %v", f.ID, err), "WARN")
	}
	if e.deps.Callbacks.Updated != nil {
		e.deps.Callbacks.Updated(f)
	}
	if e.deps.Persist != nil {
		e.deps.Persist.SaveAsync(f)
	}
	e.metrics.recordOp(op, time.Since(started))
}

// deleteFeature removes a feature everywhere and dispatches the delete.
func (e *Engine) deleteFeature(id string) {
	if _, ok := e.features.Get(id); !ok {
		return
	}
	e.features.Delete(id)
	e.index.Remove(id)
	e.machine.Selection.Remove(id)
	if e.deps.Callbacks.Deleted != nil {
		e.deps.Callbacks.Deleted(id)
	}
	if e.deps.Persist != nil {
		e.deps.Persist.DeleteAsync(id)
	}
}

func (e *Engine) abortDrag() {
	e.machine.Cancel()
	e.resizeOp = nil
	e.circleOp = nil
	e.rotateOp = nil
	e.endpointOp = nil
	e.translateOp = nil
}

func (e *Engine) log(functionName, data, level string) {
	if e.deps.LogManager != nil {
		e.deps.LogManager.WriteLog(functionName, data, level)
	}
}
