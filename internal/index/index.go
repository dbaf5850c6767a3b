// Package index maintains an R-tree over feature bounding boxes for
// pointer hit-testing. It returns candidate ids only; precise overlay
// handle checks happen in pixel space afterwards.
package index

import (
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/cartomark/annotate/internal/geo"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// minExtentDeg pads degenerate boxes (points, vertical lines) so
	// every entry has a valid rectangle.
	minExtentDeg = 1e-9
)

type item struct {
	id   string
	rect *rtreego.Rect
}

func (it *item) Bounds() *rtreego.Rect { return it.rect }

// Index is a thread-safe id-keyed spatial index.
type Index struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	items map[string]*item
}

// New creates an empty index.
func New() *Index {
	return &Index{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		items: make(map[string]*item),
	}
}

// Upsert replaces the entry for id with the bounding box of verts.
func (ix *Index) Upsert(id string, verts []geo.LatLng) error {
	if len(verts) == 0 {
		return fmt.Errorf("index entry %q: no vertices", id)
	}

	minLat, maxLat := verts[0].Lat, verts[0].Lat
	minLng, maxLng := verts[0].Lng, verts[0].Lng
	for _, v := range verts[1:] {
		if v.Lat < minLat {
			minLat = v.Lat
		}
		if v.Lat > maxLat {
			maxLat = v.Lat
		}
		if v.Lng < minLng {
			minLng = v.Lng
		}
		if v.Lng > maxLng {
			maxLng = v.Lng
		}
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{minLat, minLng},
		[]float64{maxLat - minLat + minExtentDeg, maxLng - minLng + minExtentDeg},
	)
	if err != nil {
		return fmt.Errorf("index entry %q: %w", id, err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if old, ok := ix.items[id]; ok {
		ix.tree.Delete(old)
	}
	it := &item{id: id, rect: rect}
	ix.items[id] = it
	ix.tree.Insert(it)
	return nil
}

// Remove drops the entry for id if present.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if it, ok := ix.items[id]; ok {
		ix.tree.Delete(it)
		delete(ix.items, id)
	}
}

// Clear empties the index.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	ix.items = make(map[string]*item)
}

// Len returns the number of indexed features.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

// Near returns the ids whose bounding box intersects a square of
// marginMeters half-extent around p.
func (ix *Index) Near(p geo.LatLng, marginMeters float64) []string {
	dLat := marginMeters / geo.MetersPerDegreeLat
	dLng := marginMeters / geo.MetersPerDegreeLng(p.Lat)
	return ix.SearchBox(
		geo.LatLng{Lat: p.Lat - dLat, Lng: p.Lng - dLng},
		geo.LatLng{Lat: p.Lat + dLat, Lng: p.Lng + dLng},
	)
}

// SearchBox returns the ids whose bounding box intersects the box
// spanned by min and max.
func (ix *Index) SearchBox(min, max geo.LatLng) []string {
	bounds, err := rtreego.NewRect(
		rtreego.Point{min.Lat, min.Lng},
		[]float64{max.Lat - min.Lat + minExtentDeg, max.Lng - min.Lng + minExtentDeg},
	)
	if err != nil {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	results := ix.tree.SearchIntersect(bounds)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if it, ok := r.(*item); ok {
			ids = append(ids, it.id)
		}
	}
	return ids
}
