package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaretMovesAssembleScriptCalls(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	tab.Caret.Enable()
	tab.Caret.MoveToNextLine(3)
	tab.Caret.MoveToPrevWord(1)
	tab.Caret.MoveToEndOfDocument()

	require.Len(t, view.jsCalls, 4)
	assert.Contains(t, view.jsCalls[0], "setInitialCursor")
	assert.Contains(t, view.jsCalls[1], "moveDown")
	assert.Contains(t, view.jsCalls[1], "3")
	assert.Contains(t, view.jsCalls[2], "moveToPreviousWord")
	assert.Contains(t, view.jsCalls[3], "moveToEndOfDocument")
	assert.True(t, tab.Caret.Enabled())
}

func TestCaretSelectionToggle(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	var states []SelectionState
	tab.Caret.SelectionToggled.Connect(func(s SelectionState) { states = append(states, s) })

	tab.Caret.ToggleSelection(false)
	assert.Equal(t, SelectionNormal, tab.Caret.SelectionState())

	tab.Caret.ToggleSelection(false)
	assert.Equal(t, SelectionNone, tab.Caret.SelectionState())

	tab.Caret.ToggleSelection(true)
	assert.Equal(t, SelectionLine, tab.Caret.SelectionState())

	tab.Caret.DropSelection()
	assert.Equal(t, SelectionNone, tab.Caret.SelectionState())

	// Dropping with nothing selected is silent.
	tab.Caret.DropSelection()

	assert.Equal(t, []SelectionState{
		SelectionNormal, SelectionNone, SelectionLine, SelectionNone,
	}, states)
}

func TestCaretSelection(t *testing.T) {
	view := newFakeView()
	view.jsResults["getSelection"] = "chosen words"
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	f := tab.Caret.Selection()
	require.True(t, f.Settled())
	text, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, "chosen words", text)
}

func TestCaretFollowSelected(t *testing.T) {
	view := newFakeView()
	view.jsResults["selectedLink"] = "http://example.org/followed"
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	done := 0
	tab.Caret.FollowDone.Connect(func(struct{}) { done++ })

	tab.Caret.FollowSelected(false)
	assert.Equal(t, []string{"http://example.org/followed"}, view.loads)
	assert.Equal(t, 1, done)
}

func TestCaretFollowSelectedIntoTab(t *testing.T) {
	view := newFakeView()
	view.jsResults["selectedLink"] = "http://example.org/followed"
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	var newTabs []string
	view.Events().NewTabRequested.Connect(func(u string) { newTabs = append(newTabs, u) })

	tab.Caret.FollowSelected(true)
	assert.Empty(t, view.loads)
	assert.Equal(t, []string{"http://example.org/followed"}, newTabs)
}

func TestCaretFollowSelectedNoLink(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	done := 0
	tab.Caret.FollowDone.Connect(func(struct{}) { done++ })

	tab.Caret.FollowSelected(false)
	assert.Empty(t, view.loads)
	assert.Equal(t, 0, done, "no navigation means no follow event")
}

func TestCaretDisableClearsSelection(t *testing.T) {
	view := newFakeView()
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	tab.Caret.Enable()
	tab.Caret.ToggleSelection(false)
	tab.Caret.Disable()

	assert.False(t, tab.Caret.Enabled())
	assert.Equal(t, SelectionNone, tab.Caret.SelectionState())
}
