// Package session owns interactive state: the selection set and the
// lifecycle of a Drag Session from pointer-down to pointer-up.
//
// A Drag value is constructed on pointer-down and discarded on
// pointer-up or cancel. The Machine holds at most one; starting a new
// drag replaces any previous one, which the event order already
// guarantees was finalized.
package session

import (
	"sort"

	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/overlay"
)

// Kind classifies what a drag session operates on.
type Kind uint8

const (
	KindNone Kind = iota
	KindCreate
	KindTranslate
	KindResize
	KindRotate
	KindEndpoint
)

// Selection is the set of selected feature ids.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Contains reports membership of id.
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected features.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in sorted order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Set replaces the selection wholesale.
func (s *Selection) Set(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = make(map[string]struct{}) }

// Remove drops id from the selection if present.
func (s *Selection) Remove(id string) { delete(s.ids, id) }

// Click applies click semantics to the selection. A plain click
// replaces the selection with {id}, except that clicking the sole
// selected feature clears the selection. A modifier click toggles
// membership without touching the rest. An empty id is a background
// click: plain clears, modifier is a no-op.
func (s *Selection) Click(id string, modifier bool) {
	if id == "" {
		if !modifier {
			s.Clear()
		}
		return
	}
	if modifier {
		if s.Contains(id) {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
		return
	}
	if len(s.ids) == 1 && s.Contains(id) {
		s.Clear()
		return
	}
	s.Set([]string{id})
}

// Drag is the state of one pointer-down-to-pointer-up interaction.
type Drag struct {
	Kind      Kind
	FeatureID string
	Handle    overlay.HandleKey
	Start     geo.Pixel

	engaged bool
}

// Engaged reports whether the pointer has moved past the click
// threshold since pointer-down.
func (d Drag) Engaged() bool { return d.engaged }

// Outcome summarizes a finished drag session.
type Outcome struct {
	Kind      Kind
	FeatureID string
	Handle    overlay.HandleKey

	// WasDrag is false when the pointer never left the click
	// threshold: the gesture is a click, not a drag.
	WasDrag bool
}

// Machine is the selection and drag state machine.
type Machine struct {
	Selection *Selection

	drag          Drag
	active        bool
	suppressClick bool
	thresholdPx   float64
}

// NewMachine creates a machine with the given click-vs-drag threshold
// in pixels. A non-positive threshold uses the default.
func NewMachine(thresholdPx float64) *Machine {
	if thresholdPx <= 0 {
		thresholdPx = 5
	}
	return &Machine{Selection: NewSelection(), thresholdPx: thresholdPx}
}

// Active reports whether a drag session exists.
func (m *Machine) Active() bool { return m.active }

// Current returns the live drag session. Valid only while Active.
func (m *Machine) Current() Drag { return m.drag }

// PointerDown opens a drag session.
func (m *Machine) PointerDown(kind Kind, featureID string, handle overlay.HandleKey, at geo.Pixel) {
	m.drag = Drag{Kind: kind, FeatureID: featureID, Handle: handle, Start: at}
	m.active = true
}

// PointerMove advances the session. The boolean reports whether the
// session is (now) an engaged drag; it stays false while the cursor is
// inside the click threshold and latches once crossed.
func (m *Machine) PointerMove(at geo.Pixel) (Drag, bool) {
	if !m.active {
		return Drag{}, false
	}
	if !m.drag.engaged && at.Dist(m.drag.Start) >= m.thresholdPx {
		m.drag.engaged = true
	}
	return m.drag, m.drag.engaged
}

// PointerUp closes the session. When the gesture was a real edit drag
// the next click event is suppressed, so the mouseup-turned-click
// cannot be misread as a deselect. Creation drags do not arm the
// guard: their trailing click never reaches the selection.
func (m *Machine) PointerUp() Outcome {
	if !m.active {
		return Outcome{}
	}
	out := Outcome{
		Kind:      m.drag.Kind,
		FeatureID: m.drag.FeatureID,
		Handle:    m.drag.Handle,
		WasDrag:   m.drag.engaged,
	}
	if out.WasDrag && out.Kind != KindCreate {
		m.suppressClick = true
	}
	m.drag = Drag{}
	m.active = false
	return out
}

// Cancel aborts any live session without an outcome and disarms the
// post-drag click guard.
func (m *Machine) Cancel() {
	m.drag = Drag{}
	m.active = false
	m.suppressClick = false
}

// Click routes a click event to the selection. It returns false when
// the click was consumed by the post-drag guard.
func (m *Machine) Click(id string, modifier bool) bool {
	if m.suppressClick {
		m.suppressClick = false
		return false
	}
	m.Selection.Click(id, modifier)
	return true
}

// Escape aborts any drag and clears the selection.
func (m *Machine) Escape() {
	m.Cancel()
	m.Selection.Clear()
}

// Delete returns the selected ids for removal and clears the
// selection.
func (m *Machine) Delete() []string {
	ids := m.Selection.IDs()
	m.Selection.Clear()
	return ids
}
