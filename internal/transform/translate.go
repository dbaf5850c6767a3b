package transform

import (
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/projection"
)

// DefaultActivationPx is the pixel distance a press must travel before
// a translate engages. Below it the gesture is still a click.
const DefaultActivationPx = 5.0

// Translate moves one or more features by the same geographic delta.
// Snapshots are taken once at press time; each update offsets every
// snapshot by the cursor's total displacement, so members of a group
// never drift apart.
type Translate struct {
	proj        projection.Projector
	startCursor geo.Pixel
	startGeo    geo.LatLng
	items       []translateItem
	threshold   float64
	engaged     bool
}

type translateItem struct {
	id   string
	base Result
}

// NewTranslate starts a (possibly group) move from the press position.
// thresholdPx <= 0 falls back to DefaultActivationPx.
func NewTranslate(proj projection.Projector, feats []*feature.Feature, startCursor geo.Pixel, thresholdPx float64) *Translate {
	if thresholdPx <= 0 {
		thresholdPx = DefaultActivationPx
	}
	items := make([]translateItem, 0, len(feats))
	for _, f := range feats {
		items = append(items, translateItem{id: f.ID, base: snapshotResult(f)})
	}
	return &Translate{
		proj:        proj,
		startCursor: startCursor,
		startGeo:    proj.Unproject(startCursor),
		items:       items,
		threshold:   thresholdPx,
	}
}

// Engaged reports whether the cursor has moved past the activation
// threshold at least once. It latches: a return under the threshold
// does not revert the gesture to a click.
func (tr *Translate) Engaged() bool { return tr.engaged }

// Moved is one feature's replacement state.
type Moved struct {
	ID string
	Result
}

// Update offsets every snapshot by the cursor displacement. It returns
// nil while the gesture is still within the click threshold.
func (tr *Translate) Update(cursor geo.Pixel) []Moved {
	if !tr.engaged {
		if cursor.Dist(tr.startCursor) < tr.threshold {
			return nil
		}
		tr.engaged = true
	}

	cur := tr.proj.Unproject(cursor)
	dLat := cur.Lat - tr.startGeo.Lat
	dLng := cur.Lng - tr.startGeo.Lng

	moved := make([]Moved, 0, len(tr.items))
	for _, it := range tr.items {
		res := it.base
		res.Vertices = make([]geo.LatLng, len(it.base.Vertices))
		for i, v := range it.base.Vertices {
			res.Vertices[i] = geo.LatLng{Lat: v.Lat + dLat, Lng: v.Lng + dLng}
		}
		if res.HasCenter {
			res.Center = geo.LatLng{Lat: it.base.Center.Lat + dLat, Lng: it.base.Center.Lng + dLng}
		}
		moved = append(moved, Moved{ID: it.id, Result: res})
	}
	return moved
}
