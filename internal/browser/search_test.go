package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/engine"
)

func searchTab(t *testing.T, cfg SearchConfig) (*fakeView, *Tab) {
	t.Helper()
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake", Search: cfg})
	return view, tab
}

func TestSearchSmartCase(t *testing.T) {
	tests := []struct {
		name       string
		ignoreCase string
		text       string
		want       bool
	}{
		{"smart lowercase", "smart", "foo bar", false},
		{"smart with upper", "smart", "Foo", true},
		{"smart unicode upper", "smart", "Ärger", true},
		{"always ignores", "always", "FOO", false},
		{"never ignores", "never", "foo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, tab := searchTab(t, SearchConfig{IgnoreCase: tt.ignoreCase})
			view.findResult = engine.FindResult{Found: true, Current: 1, Total: 1}

			f := tab.Search.Start(tt.text, false)
			require.True(t, f.Settled())
			assert.Equal(t, tt.want, view.findFlags.CaseSensitive)
		})
	}
}

func TestSearchStartUpdatesMatch(t *testing.T) {
	view, tab := searchTab(t, SearchConfig{IgnoreCase: "smart"})
	view.findResult = engine.FindResult{Found: true, Current: 2, Total: 7}

	var finished []bool
	var matches []SearchMatch
	tab.Search.Finished.Connect(func(found bool) { finished = append(finished, found) })
	tab.Search.MatchChanged.Connect(func(m SearchMatch) { matches = append(matches, m) })

	f := tab.Search.Start("hello", false)
	require.True(t, f.Settled())
	found, err := f.Result()
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, SearchMatch{Current: 2, Total: 7}, tab.Search.Match())
	assert.Equal(t, []bool{true}, finished)
	assert.Equal(t, []SearchMatch{{Current: 2, Total: 7}}, matches)
}

func TestSearchRepeatedTermSkipsEngine(t *testing.T) {
	view, tab := searchTab(t, SearchConfig{})
	view.findResult = engine.FindResult{Found: true, Current: 1, Total: 3}

	require.True(t, tab.Search.Start("term", false).Settled())
	callsAfterFirst := len(view.findOps)

	f := tab.Search.Start("term", false)
	require.True(t, f.Settled())
	found, err := f.Result()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, view.findOps, callsAfterFirst, "repeated identical search must not hit the engine")
}

func TestSearchNextAtLimit(t *testing.T) {
	t.Run("wrap disabled blocks at last match", func(t *testing.T) {
		view, tab := searchTab(t, SearchConfig{WrapAround: false})
		view.findResult = engine.FindResult{Found: true, Current: 3, Total: 3}
		require.True(t, tab.Search.Start("x", false).Settled())
		ops := len(view.findOps)

		f := tab.Search.Next()
		require.True(t, f.Settled())
		res, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, NavWrapPreventedBottom, res)
		assert.Len(t, view.findOps, ops, "prevented wrap must not hit the engine")
	})

	t.Run("wrap enabled reports the wrap", func(t *testing.T) {
		view, tab := searchTab(t, SearchConfig{WrapAround: true})
		view.findResult = engine.FindResult{Found: true, Current: 3, Total: 3}
		require.True(t, tab.Search.Start("x", false).Settled())

		view.findResult = engine.FindResult{Found: true, Current: 1, Total: 3}
		f := tab.Search.Next()
		require.True(t, f.Settled())
		res, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, NavWrappedBottom, res)
		assert.Equal(t, SearchMatch{Current: 1, Total: 3}, tab.Search.Match())
	})

	t.Run("prev at first match without wrap", func(t *testing.T) {
		view, tab := searchTab(t, SearchConfig{WrapAround: false})
		view.findResult = engine.FindResult{Found: true, Current: 1, Total: 3}
		require.True(t, tab.Search.Start("x", false).Settled())

		f := tab.Search.Prev()
		require.True(t, f.Settled())
		res, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, NavWrapPreventedTop, res)
	})

	t.Run("prev at first match with wrap", func(t *testing.T) {
		view, tab := searchTab(t, SearchConfig{WrapAround: true})
		view.findResult = engine.FindResult{Found: true, Current: 1, Total: 3}
		require.True(t, tab.Search.Start("x", false).Settled())

		view.findResult = engine.FindResult{Found: true, Current: 3, Total: 3}
		f := tab.Search.Prev()
		require.True(t, f.Settled())
		res, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, NavWrappedTop, res)
	})
}

func TestSearchReverseFlipsDirections(t *testing.T) {
	// With a reverse search, Next moves toward the document top, so the
	// limit to watch is the first match.
	view, tab := searchTab(t, SearchConfig{WrapAround: false})
	view.findResult = engine.FindResult{Found: true, Current: 1, Total: 4}
	require.True(t, tab.Search.Start("x", true).Settled())

	f := tab.Search.Next()
	require.True(t, f.Settled())
	res, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, NavWrapPreventedTop, res)
}

func TestSearchMidDocumentNavigation(t *testing.T) {
	view, tab := searchTab(t, SearchConfig{WrapAround: true})
	view.findResult = engine.FindResult{Found: true, Current: 2, Total: 5}
	require.True(t, tab.Search.Start("x", false).Settled())

	view.findResult = engine.FindResult{Found: true, Current: 3, Total: 5}
	f := tab.Search.Next()
	require.True(t, f.Settled())
	res, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, NavFound, res)
	assert.Equal(t, SearchMatch{Current: 3, Total: 5}, tab.Search.Match())
}

func TestSearchUnknownPositionsAlwaysNavigate(t *testing.T) {
	// Backends without match counting report 0/0; stepping must still
	// reach the engine instead of guessing about limits.
	view, tab := searchTab(t, SearchConfig{WrapAround: false})
	view.findResult = engine.FindResult{Found: true}
	require.True(t, tab.Search.Start("x", false).Settled())
	ops := len(view.findOps)

	f := tab.Search.Next()
	require.True(t, f.Settled())
	res, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, NavFound, res)
	assert.Len(t, view.findOps, ops+1)
}

func TestSearchNextWithoutSearch(t *testing.T) {
	_, tab := searchTab(t, SearchConfig{})

	f := tab.Search.Next()
	require.True(t, f.Settled())
	_, err := f.Result()
	assert.ErrorIs(t, err, engine.ErrNotReady)
}

func TestSearchNotFound(t *testing.T) {
	view, tab := searchTab(t, SearchConfig{})
	view.findResult = engine.FindResult{Found: false}

	var finished []bool
	tab.Search.Finished.Connect(func(found bool) { finished = append(finished, found) })

	f := tab.Search.Start("nope", false)
	require.True(t, f.Settled())
	found, err := f.Result()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []bool{false}, finished)
}

func TestSearchClear(t *testing.T) {
	view, tab := searchTab(t, SearchConfig{})
	view.findResult = engine.FindResult{Found: true, Current: 1, Total: 2}
	require.True(t, tab.Search.Start("x", false).Settled())

	cleared := 0
	tab.Search.Cleared.Connect(func(struct{}) { cleared++ })

	require.NoError(t, tab.Search.Clear())
	assert.Equal(t, 1, cleared)
	assert.Empty(t, tab.Search.Text())
	assert.True(t, tab.Search.Match().IsNull())
	assert.Contains(t, view.findOps, "clear")

	// Clearing again is a no-op.
	require.NoError(t, tab.Search.Clear())
	assert.Equal(t, 1, cleared)
}
