// Package cache holds the live feature set. Transform operations read
// and write features here; persistence runs behind it asynchronously,
// so lookups during a drag never touch storage.
package cache

import (
	"fmt"
	"sync"

	"github.com/cartomark/annotate/internal/feature"
)

// FeatureCache maps feature ids to their live state.
type FeatureCache struct {
	mu       sync.RWMutex
	features map[string]*feature.Feature
}

// NewFeatureCache creates an empty cache.
func NewFeatureCache() *FeatureCache {
	return &FeatureCache{features: make(map[string]*feature.Feature)}
}

// Get retrieves a feature by id.
func (c *FeatureCache) Get(id string) (*feature.Feature, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.features[id]
	return f, ok
}

// Put stores f under its id.
func (c *FeatureCache) Put(f *feature.Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features[f.ID] = f
}

// Delete removes the feature with the given id.
func (c *FeatureCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.features, id)
}

// Rekey moves a feature from a provisional id to its adopted one. It
// reports whether the old id existed.
func (c *FeatureCache) Rekey(oldID, newID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.features[oldID]
	if !ok {
		return false
	}
	delete(c.features, oldID)
	f.ID = newID
	c.features[newID] = f
	return true
}

// List returns all live features. The slice is fresh; the features are
// the live pointers.
func (c *FeatureCache) List() []*feature.Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*feature.Feature, 0, len(c.features))
	for _, f := range c.features {
		out = append(out, f)
	}
	return out
}

// Len returns the number of live features.
func (c *FeatureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.features)
}

// Reset clears the cache.
func (c *FeatureCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features = make(map[string]*feature.Feature)
}

// TempIDs issues provisional feature ids for newly drawn features that
// have not been assigned a persistent id yet.
type TempIDs struct {
	mu sync.Mutex
	n  int
}

// Next returns the next provisional id.
func (t *TempIDs) Next() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	return fmt.Sprintf("tmp-%d", t.n)
}

// IsTemp reports whether id is provisional.
func IsTemp(id string) bool {
	return len(id) > 4 && id[:4] == "tmp-"
}
