package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/neighborlist"
)

func zoomTab(t *testing.T, cfg ZoomConfig) (*fakeView, *Tab) {
	t.Helper()
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake", Zoom: cfg})
	view.zoomCalls = nil
	return view, tab
}

func TestZoomApplyOffset(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		offset  int
		want    int
		wantTwo int // level after applying the same offset again
	}{
		{"step in from default", 0, 1, 110, 125},
		{"step out from default", 0, -1, 90, 75},
		{"snap up from off-list factor", 1.03, 1, 110, 125},
		{"snap down from off-list factor", 1.03, -1, 100, 90},
		{"edge stays at maximum", 5.0, 1, 500, 500},
		{"edge stays at minimum", 0.25, -1, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tab := zoomTab(t, ZoomConfig{})
			if tt.start != 0 {
				require.NoError(t, tab.Zoom.SetFactor(tt.start))
			}

			level, err := tab.Zoom.ApplyOffset(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
			assert.InDelta(t, float64(tt.want)/100, tab.Zoom.Factor(), 1e-9)

			level, err = tab.Zoom.ApplyOffset(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTwo, level)
		})
	}
}

func TestZoomZeroOffsetSnapsOnce(t *testing.T) {
	_, tab := zoomTab(t, ZoomConfig{})
	require.NoError(t, tab.Zoom.SetFactor(1.03))

	// Zero offset snaps onto the ladder (upward side for non-negative
	// offsets) but consumes nothing.
	level, err := tab.Zoom.ApplyOffset(0)
	require.NoError(t, err)
	assert.Equal(t, 110, level)

	// A second zero offset must not move again.
	level, err = tab.Zoom.ApplyOffset(0)
	require.NoError(t, err)
	assert.Equal(t, 110, level)
}

func TestZoomSetFactorRejectsNegative(t *testing.T) {
	view, tab := zoomTab(t, ZoomConfig{})

	err := tab.Zoom.SetFactor(-0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "Can't zoom to factor -0.5!", err.Error())

	assert.Empty(t, view.zoomCalls, "engine must not see a rejected factor")
	assert.InDelta(t, 1.0, tab.Zoom.Factor(), 1e-9)

	// Selector state untouched: stepping still starts from the default.
	level, err := tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)
	assert.Equal(t, 110, level)
}

func TestZoomSetFactorAnchorsList(t *testing.T) {
	_, tab := zoomTab(t, ZoomConfig{})

	require.NoError(t, tab.Zoom.SetFactor(2.0))
	level, err := tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)
	assert.Equal(t, 250, level)
}

func TestZoomEmptyLevelsFallBack(t *testing.T) {
	// An empty configured ladder falls back to the built-in one instead
	// of leaving the selector unusable.
	_, tab := zoomTab(t, ZoomConfig{Levels: nil, Default: 100})
	level, err := tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)
	assert.Equal(t, 110, level)
}

func TestZoomCustomLevels(t *testing.T) {
	_, tab := zoomTab(t, ZoomConfig{Levels: []int{50, 100, 200}, Default: 100})

	level, err := tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)
	assert.Equal(t, 200, level)

	level, err = tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)
	assert.Equal(t, 200, level, "must stick to the edge")

	level, err = tab.Zoom.ApplyOffset(-2)
	require.NoError(t, err)
	assert.Equal(t, 50, level)
}

func TestZoomReconfigure(t *testing.T) {
	t.Run("follows new default when untouched", func(t *testing.T) {
		_, tab := zoomTab(t, ZoomConfig{})
		require.NoError(t, tab.Zoom.Reconfigure(ZoomConfig{Levels: []int{50, 80, 120}, Default: 80}))
		assert.Equal(t, 80, tab.Zoom.Percent())
	})

	t.Run("keeps user zoom", func(t *testing.T) {
		_, tab := zoomTab(t, ZoomConfig{})
		require.NoError(t, tab.Zoom.SetFactor(1.5))

		require.NoError(t, tab.Zoom.Reconfigure(ZoomConfig{Levels: []int{50, 100, 150, 300}, Default: 100}))
		assert.Equal(t, 150, tab.Zoom.Percent())

		// Stepping continues from the preserved position.
		level, err := tab.Zoom.ApplyOffset(1)
		require.NoError(t, err)
		assert.Equal(t, 300, level)
	})

	t.Run("keeps user zoom absent from new ladder", func(t *testing.T) {
		_, tab := zoomTab(t, ZoomConfig{})
		require.NoError(t, tab.Zoom.SetFactor(1.75))

		require.NoError(t, tab.Zoom.Reconfigure(ZoomConfig{Levels: []int{100, 200}, Default: 100}))
		assert.Equal(t, 175, tab.Zoom.Percent())

		level, err := tab.Zoom.ApplyOffset(1)
		require.NoError(t, err)
		assert.Equal(t, 200, level, "stepping snaps into the new ladder")
	})
}

func TestZoomReapply(t *testing.T) {
	view, tab := zoomTab(t, ZoomConfig{})
	require.NoError(t, tab.Zoom.SetFactor(1.25))
	view.zoom = 1.0 // engine dropped the factor on navigation

	require.NoError(t, tab.Zoom.Reapply())
	assert.InDelta(t, 1.25, view.zoom, 1e-9)
}

func TestZoomFactorChangedHook(t *testing.T) {
	_, tab := zoomTab(t, ZoomConfig{})

	var got []float64
	tab.Zoom.FactorChanged.Connect(func(f float64) { got = append(got, f) })

	require.NoError(t, tab.Zoom.SetFactor(1.5))
	_, err := tab.Zoom.ApplyOffset(1)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.InDelta(t, 1.5, got[0], 1e-9)
	assert.InDelta(t, 1.75, got[1], 1e-9)
}

func TestZoomEmptyLadderReportsEmpty(t *testing.T) {
	_, tab := zoomTab(t, ZoomConfig{})
	tab.Zoom.levels = neighborlist.New[int](nil, neighborlist.ModeEdge)

	_, err := tab.Zoom.ApplyOffset(1)
	assert.ErrorIs(t, err, neighborlist.ErrEmpty)
}
