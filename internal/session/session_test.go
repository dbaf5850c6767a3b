package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/overlay"
)

func TestSelection_ClickSequence(t *testing.T) {
	s := NewSelection()

	s.Click("a", false)
	assert.Equal(t, []string{"a"}, s.IDs())

	s.Click("b", false)
	assert.Equal(t, []string{"b"}, s.IDs())

	s.Click("c", true)
	assert.Equal(t, []string{"b", "c"}, s.IDs())

	s.Click("c", true)
	assert.Equal(t, []string{"b"}, s.IDs())

	// Plain click on the sole selected feature clears.
	s.Click("b", false)
	assert.Empty(t, s.IDs())
}

func TestSelection_PlainClickReplacesMulti(t *testing.T) {
	s := NewSelection()
	s.Set([]string{"a", "b"})

	// Plain click on a member of a multi-selection solos it rather
	// than clearing.
	s.Click("a", false)
	assert.Equal(t, []string{"a"}, s.IDs())
}

func TestSelection_BackgroundClick(t *testing.T) {
	s := NewSelection()
	s.Set([]string{"a", "b"})

	s.Click("", true)
	assert.Len(t, s.IDs(), 2)

	s.Click("", false)
	assert.Empty(t, s.IDs())
}

func TestMachine_ClickVsDrag(t *testing.T) {
	m := NewMachine(5)
	m.PointerDown(KindTranslate, "a", "", geo.Pixel{X: 0, Y: 0})

	_, dragging := m.PointerMove(geo.Pixel{X: 2, Y: 2})
	assert.False(t, dragging)

	out := m.PointerUp()
	assert.False(t, out.WasDrag)
	assert.Equal(t, KindTranslate, out.Kind)
	assert.False(t, m.Active())
}

func TestMachine_DragEngagesAndLatches(t *testing.T) {
	m := NewMachine(5)
	m.PointerDown(KindResize, "a", overlay.HandleSE, geo.Pixel{X: 0, Y: 0})

	_, dragging := m.PointerMove(geo.Pixel{X: 10, Y: 0})
	assert.True(t, dragging)

	// Returning inside the threshold keeps the drag engaged.
	_, dragging = m.PointerMove(geo.Pixel{X: 1, Y: 0})
	assert.True(t, dragging)

	out := m.PointerUp()
	assert.True(t, out.WasDrag)
	assert.Equal(t, overlay.HandleSE, out.Handle)
}

func TestMachine_SuppressesClickAfterDrag(t *testing.T) {
	m := NewMachine(5)
	m.Selection.Set([]string{"a"})

	m.PointerDown(KindTranslate, "a", "", geo.Pixel{})
	m.PointerMove(geo.Pixel{X: 20, Y: 0})
	m.PointerUp()

	// The click fired by the same mouseup must not deselect.
	assert.False(t, m.Click("a", false))
	assert.Equal(t, []string{"a"}, m.Selection.IDs())

	// Guard consumes exactly one click.
	assert.True(t, m.Click("a", false))
	assert.Empty(t, m.Selection.IDs())
}

func TestMachine_CreateDragDoesNotArmGuard(t *testing.T) {
	m := NewMachine(5)

	m.PointerDown(KindCreate, "", "", geo.Pixel{})
	m.PointerMove(geo.Pixel{X: 200, Y: 100})
	out := m.PointerUp()
	require.True(t, out.WasDrag)

	// The first selection click after drawing a shape must land.
	assert.True(t, m.Click("a", false))
	assert.Equal(t, []string{"a"}, m.Selection.IDs())
}

func TestMachine_CancelDisarmsGuard(t *testing.T) {
	m := NewMachine(5)

	m.PointerDown(KindTranslate, "a", "", geo.Pixel{})
	m.PointerMove(geo.Pixel{X: 20, Y: 0})
	m.PointerUp()
	m.Cancel()

	assert.True(t, m.Click("a", false))
	assert.Equal(t, []string{"a"}, m.Selection.IDs())
}

func TestMachine_CancelDropsSession(t *testing.T) {
	m := NewMachine(5)
	m.PointerDown(KindRotate, "a", overlay.HandleRot, geo.Pixel{})
	m.Cancel()

	assert.False(t, m.Active())
	out := m.PointerUp()
	assert.Equal(t, KindNone, out.Kind)
}

func TestMachine_EscapeAndDelete(t *testing.T) {
	m := NewMachine(5)
	m.Selection.Set([]string{"a", "b"})
	m.PointerDown(KindTranslate, "a", "", geo.Pixel{})

	m.Escape()
	assert.False(t, m.Active())
	assert.Empty(t, m.Selection.IDs())

	m.Selection.Set([]string{"x", "y"})
	ids := m.Delete()
	assert.Equal(t, []string{"x", "y"}, ids)
	assert.Empty(t, m.Selection.IDs())
}
