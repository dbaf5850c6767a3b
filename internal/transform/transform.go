// Package transform implements the drag operations applied to selected
// features: resize, rotate, endpoint moves and group translation.
//
// Every operation snapshots the feature state once at drag start and
// recomputes from that snapshot on each cursor update. Incremental
// per-event deltas are never accumulated, so a drag is free of drift
// and trivially cancellable.
package transform

import (
	"errors"

	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
)

// ErrNoVertices is returned when an operation targets a feature whose
// geometry carries no coordinates.
var ErrNoVertices = errors.New("feature has no vertices")

// Result is the outcome of one cursor update: the complete replacement
// state for the dragged feature. Operations fill every field from their
// snapshot and change only what the drag affects.
type Result struct {
	Vertices   []geo.LatLng
	Center     geo.LatLng
	HasCenter  bool
	SizeMeters float64
	AngleDeg   float64
}

// Apply writes the result back onto f, preserving its geometry type.
func (r Result) Apply(f *feature.Feature) error {
	if err := f.SetVertices(r.Vertices); err != nil {
		return err
	}
	if r.HasCenter {
		f.SetCenter(r.Center)
	} else {
		f.HasCenter = false
	}
	f.SizeMeters = r.SizeMeters
	f.SetAngleDeg(r.AngleDeg)
	return nil
}

func snapshotResult(f *feature.Feature) Result {
	return Result{
		Vertices:   f.Vertices(),
		Center:     f.Center,
		HasCenter:  f.HasCenter,
		SizeMeters: f.SizeMeters,
		AngleDeg:   f.AngleDeg(),
	}
}
