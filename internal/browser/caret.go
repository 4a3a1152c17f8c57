package browser

import (
	"fmt"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/engine/script"
	"github.com/skiff-browser/skiff/internal/event"
	"github.com/skiff-browser/skiff/internal/promise"
)

// SelectionState tells whether and how caret selection is active.
type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionNormal
	SelectionLine
)

func (s SelectionState) String() string {
	switch s {
	case SelectionNone:
		return "none"
	case SelectionNormal:
		return "normal"
	case SelectionLine:
		return "line"
	default:
		return fmt.Sprintf("SelectionState(%d)", int(s))
	}
}

// Caret moves a text cursor through the page via the injected caret
// script module. Moves are fire-and-forget; reads return futures.
type Caret struct {
	tab     *Tab
	enabled bool
	state   SelectionState

	// SelectionToggled fires when selection mode changes.
	SelectionToggled *event.Hook[SelectionState]
	// FollowDone fires after a followed selection triggered navigation.
	FollowDone *event.Hook[struct{}]
}

func newCaret(tab *Tab) *Caret {
	return &Caret{
		tab:              tab,
		SelectionToggled: event.NewHook[SelectionState]("caret-selection-toggled"),
		FollowDone:       event.NewHook[struct{}]("caret-follow-done"),
	}
}

func (c *Caret) call(fn string, args ...any) {
	code := script.Assemble("caret", fn, args...)
	c.tab.view.RunJS(code, engine.WorldApp).Then(func(_ any, err error) {
		if err != nil {
			c.tab.log.Debug().Err(err).Str("fn", fn).Msg("Caret call failed")
		}
	})
}

// Enable places the caret at the top of the viewport.
func (c *Caret) Enable() {
	c.enabled = true
	c.call("setInitialCursor")
}

// Disable removes the caret and any selection.
func (c *Caret) Disable() {
	c.enabled = false
	if c.state != SelectionNone {
		c.state = SelectionNone
		c.SelectionToggled.Emit(c.state)
	}
	c.call("disableCaret")
}

func (c *Caret) Enabled() bool { return c.enabled }

func (c *Caret) MoveToNextLine(count int)  { c.call("moveDown", count) }
func (c *Caret) MoveToPrevLine(count int)  { c.call("moveUp", count) }
func (c *Caret) MoveToNextChar(count int)  { c.call("moveRight", count) }
func (c *Caret) MoveToPrevChar(count int)  { c.call("moveLeft", count) }
func (c *Caret) MoveToEndOfWord(count int) { c.call("moveToEndOfWord", count) }
func (c *Caret) MoveToNextWord(count int)  { c.call("moveToNextWord", count) }
func (c *Caret) MoveToPrevWord(count int)  { c.call("moveToPreviousWord", count) }

func (c *Caret) MoveToStartOfLine() { c.call("moveToStartOfLine") }
func (c *Caret) MoveToEndOfLine()   { c.call("moveToEndOfLine") }

func (c *Caret) MoveToStartOfNextBlock(count int) { c.call("moveToStartOfNextBlock", count) }
func (c *Caret) MoveToStartOfPrevBlock(count int) { c.call("moveToStartOfPrevBlock", count) }
func (c *Caret) MoveToEndOfNextBlock(count int)   { c.call("moveToEndOfNextBlock", count) }
func (c *Caret) MoveToEndOfPrevBlock(count int)   { c.call("moveToEndOfPrevBlock", count) }

func (c *Caret) MoveToStartOfDocument() { c.call("moveToStartOfDocument") }
func (c *Caret) MoveToEndOfDocument()   { c.call("moveToEndOfDocument") }

// ToggleSelection switches between no selection and character or line
// selection. Toggling while a selection is active drops it.
func (c *Caret) ToggleSelection(line bool) {
	if c.state == SelectionNone {
		if line {
			c.state = SelectionLine
			c.call("toggleSelectionLine")
		} else {
			c.state = SelectionNormal
			c.call("toggleSelection")
		}
	} else {
		c.state = SelectionNone
		c.call("dropSelection")
	}
	c.SelectionToggled.Emit(c.state)
}

// DropSelection clears the selection but keeps the caret position.
func (c *Caret) DropSelection() {
	if c.state == SelectionNone {
		return
	}
	c.state = SelectionNone
	c.call("dropSelection")
	c.SelectionToggled.Emit(c.state)
}

func (c *Caret) SelectionState() SelectionState { return c.state }

// Selection resolves with the currently selected text.
func (c *Caret) Selection() *promise.Future[string] {
	out := promise.NewFuture[string](c.tab.post)
	code := script.Assemble("caret", "getSelection")
	c.tab.view.RunJS(code, engine.WorldApp).Then(func(v any, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		s, _ := v.(string)
		out.Resolve(s)
	})
	return out
}

// ReverseSelection swaps anchor and focus of the selection.
func (c *Caret) ReverseSelection() { c.call("reverseSelection") }

// FollowSelected navigates to the link under the selection or caret.
// With tab set, the link opens through the tab's NewTabRequested hook
// instead of the current view.
func (c *Caret) FollowSelected(tab bool) {
	if c.tab.Search.Text() != "" {
		// A search selection is not a caret selection.
		_ = c.tab.Search.Clear()
	}

	code := script.Assemble("caret", "selectedLink")
	c.tab.view.RunJS(code, engine.WorldApp).Then(func(v any, err error) {
		if err != nil {
			c.tab.log.Debug().Err(err).Msg("Follow selected failed")
			return
		}
		href, _ := v.(string)
		if href == "" {
			return
		}
		if tab {
			c.tab.view.Events().NewTabRequested.Emit(href)
		} else if err := c.tab.Load(href); err != nil {
			c.tab.log.Debug().Err(err).Msg("Follow selected load failed")
		}
		c.FollowDone.Emit(struct{}{})
	})
}
