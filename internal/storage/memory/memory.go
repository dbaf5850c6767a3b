// Package memory stores feature records in memory and exports them as
// a GeoJSON FeatureCollection on Close.
package memory

import (
	"sort"
	"sync"

	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/pkg/record"
)

// Backend stores annotation data in memory.
type Backend struct {
	cfg config.MemoryConfig

	mu       sync.RWMutex
	features map[string]record.Feature

	lastExportPath string
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:      cfg,
		features: make(map[string]record.Feature),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close exports the collected features to a GeoJSON file when an
// output directory is configured.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportGeoJSON()
}

// SaveFeature stores or replaces the record keyed by its id.
func (b *Backend) SaveFeature(rec record.Feature) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.features[rec.ID] = rec
	return nil
}

// DeleteFeature removes the record for id.
func (b *Backend) DeleteFeature(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.features, id)
	return nil
}

// ListFeatures returns all stored records ordered by id.
func (b *Backend) ListFeatures() ([]record.Feature, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	recs := make([]record.Feature, 0, len(b.features))
	for _, rec := range b.features {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

// ExportedFilePath returns the path of the last written export file.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
