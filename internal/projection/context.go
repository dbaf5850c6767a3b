package projection

import "sync"

// Context holds the projector for the surface's current view state.
// The rendering surface swaps it on pan/zoom; the engine reads it on
// every conversion.
type Context struct {
	mu   sync.RWMutex
	proj Projector
}

// NewContext creates a Context with the given initial projector.
func NewContext(p Projector) *Context {
	return &Context{proj: p}
}

// Current returns the projector for the current frame.
func (c *Context) Current() Projector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.proj
}

// Update replaces the projector after a view change.
func (c *Context) Update(p Projector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proj = p
}
