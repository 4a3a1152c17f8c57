package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/engine"
)

func TestScrollSteps(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	require.NoError(t, tab.Scroll.Down(2))
	assert.Equal(t, engine.Point{X: 0, Y: 80}, view.scrollPos)

	require.NoError(t, tab.Scroll.Up(1))
	assert.Equal(t, engine.Point{X: 0, Y: 40}, view.scrollPos)

	require.NoError(t, tab.Scroll.Right(1))
	require.NoError(t, tab.Scroll.Left(1))
	assert.Equal(t, engine.Point{X: 0, Y: 40}, view.scrollPos)
}

func TestScrollJumpEmitsBeforeJump(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	jumps := 0
	tab.Scroll.BeforeJump.Connect(func(struct{}) { jumps++ })

	require.NoError(t, tab.Scroll.Top())
	require.NoError(t, tab.Scroll.Bottom())
	require.NoError(t, tab.Scroll.ToAnchor("section-2"))
	require.NoError(t, tab.Scroll.ToPoint(engine.Point{X: 0, Y: 500}))
	require.NoError(t, tab.Scroll.Down(1))

	assert.Equal(t, 4, jumps, "deltas are not jumps")
}

func TestScrollPercChanged(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	var percs [][2]int
	tab.Scroll.PercChanged.Connect(func(p [2]int) { percs = append(percs, p) })

	view.percY = 30
	require.NoError(t, tab.Scroll.Down(1))
	view.percY = 100
	require.NoError(t, tab.Scroll.Bottom())

	assert.Equal(t, [][2]int{{0, 30}, {0, 100}}, percs)
}

func TestScrollAtEdges(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	view.percY = 0
	assert.True(t, tab.Scroll.AtTop())
	assert.False(t, tab.Scroll.AtBottom())

	view.percY = 100
	assert.False(t, tab.Scroll.AtTop())
	assert.True(t, tab.Scroll.AtBottom())

	view.percY = 55
	assert.False(t, tab.Scroll.AtTop())
	assert.False(t, tab.Scroll.AtBottom())
}

func TestScrollPositions(t *testing.T) {
	view := newFakeView()
	view.scrollPos = engine.Point{X: 12, Y: 340}
	view.percX, view.percY = 10, 60
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	pos, err := tab.Scroll.PosPx()
	require.NoError(t, err)
	assert.Equal(t, engine.Point{X: 12, Y: 340}, pos)

	x, y := tab.Scroll.PosPerc()
	assert.Equal(t, 10, x)
	assert.Equal(t, 60, y)
}
