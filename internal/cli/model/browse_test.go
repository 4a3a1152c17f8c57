package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/browser"
	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/messaging"
)

// testBrowse builds a model with a dispatch that records queued work
// without running it, since no real tab is attached.
func testBrowse(t *testing.T) (BrowseModel, *int) {
	t.Helper()
	queued := 0
	m := NewBrowse(BrowseOptions{
		Theme:    styles.NewTheme(),
		Dispatch: func(func()) { queued++ },
	})
	return m, &queued
}

func updateBrowse(t *testing.T, m BrowseModel, msg tea.Msg) BrowseModel {
	t.Helper()
	res, _ := m.Update(msg)
	out, ok := res.(BrowseModel)
	require.True(t, ok)
	return out
}

func TestBrowseOpenEntersAddressMode(t *testing.T) {
	m, _ := testBrowse(t)
	require.Equal(t, modeNormal, m.mode)

	m = updateBrowse(t, m, keyMsg("o"))
	assert.Equal(t, modeAddress, m.mode)

	m = updateBrowse(t, m, escMsg())
	assert.Equal(t, modeNormal, m.mode)
}

func TestBrowseAddressSubmitCallsOpen(t *testing.T) {
	var opened string
	m := NewBrowse(BrowseOptions{
		Theme:    styles.NewTheme(),
		Dispatch: func(func()) {},
		Open:     func(input string) { opened = input },
	})

	m = updateBrowse(t, m, keyMsg("o"))
	m = updateBrowse(t, m, keyMsg("example.org"))
	m = updateBrowse(t, m, enterMsg())

	assert.Equal(t, "example.org", opened)
	assert.Equal(t, modeNormal, m.mode)
}

func TestBrowseEmptyAddressSubmitIsNoop(t *testing.T) {
	opened := false
	m := NewBrowse(BrowseOptions{
		Theme:    styles.NewTheme(),
		Dispatch: func(func()) {},
		Open:     func(string) { opened = true },
	})

	m = updateBrowse(t, m, keyMsg("o"))
	m = updateBrowse(t, m, enterMsg())

	assert.False(t, opened)
	assert.Equal(t, modeNormal, m.mode)
}

func TestBrowseNavigationKeysDispatchWork(t *testing.T) {
	m, queued := testBrowse(t)

	for _, k := range []string{"H", "L", "r", "R", "j", "k", "g", "G", "+", "-", "0", "m", "p", "i"} {
		m = updateBrowse(t, m, keyMsg(k))
	}

	assert.Equal(t, 14, *queued, "every navigation key posts exactly one closure")
}

func TestBrowsePageStateReachesView(t *testing.T) {
	m, _ := testBrowse(t)

	m = updateBrowse(t, m, PageStateMsg{
		URL:         "https://example.org/docs",
		Title:       "Example Docs",
		Status:      engine.LoadStatusSuccessHTTPS,
		ZoomPercent: 125,
		Backend:     "webkit",
	})

	out := m.View()
	require.Contains(t, out, "Example Docs")
	require.Contains(t, out, "example.org/docs")
	require.Contains(t, out, "125%")
	require.Contains(t, out, "webkit")
}

func TestBrowseLoadingShowsProgress(t *testing.T) {
	m, _ := testBrowse(t)

	m = updateBrowse(t, m, PageStateMsg{
		URL:      "https://example.org",
		Loading:  true,
		Progress: 42,
		Status:   engine.LoadStatusLoading,
	})

	require.Contains(t, m.View(), "42%")
}

func TestBrowseBridgeMessagesShowAndClear(t *testing.T) {
	m, _ := testBrowse(t)

	m = updateBrowse(t, m, BridgeMsg{Message: messaging.Message{Level: messaging.LevelError, Text: "renderer crashed"}})
	require.Contains(t, m.View(), "renderer crashed")

	m = updateBrowse(t, m, BridgeClearedMsg{})
	assert.NotContains(t, m.View(), "renderer crashed")
}

func TestBrowseQuestionOpensAndClosesPrompt(t *testing.T) {
	m, _ := testBrowse(t)

	q := mustQuestion(t, messaging.QuestionOpts{
		Title: "Leaving",
		Text:  "Leave this page?",
		Mode:  messaging.PromptYesNo,
	})

	m = updateBrowse(t, m, QuestionMsg{Question: q})
	require.Equal(t, modePrompt, m.mode)
	require.Contains(t, m.View(), "Leave this page?")

	// Resolved elsewhere, e.g. the tab closed underneath the prompt.
	m = updateBrowse(t, m, QuestionDoneMsg{})
	assert.Equal(t, modeNormal, m.mode)
}

func TestBrowsePromptAnswerReturnsToNormalMode(t *testing.T) {
	m, _ := testBrowse(t)
	m.dispatch = runInline

	q := mustQuestion(t, messaging.QuestionOpts{
		Text: "Continue?",
		Mode: messaging.PromptYesNo,
	})

	m = updateBrowse(t, m, QuestionMsg{Question: q})
	m = updateBrowse(t, m, enterMsg())

	assert.Equal(t, modeNormal, m.mode)
	assert.False(t, q.IsPending())
}

func TestBrowseSearchMatchInStatus(t *testing.T) {
	m, _ := testBrowse(t)

	m = updateBrowse(t, m, SearchMatchMsg{Current: 2, Total: 17})
	require.Contains(t, m.View(), "match 2/17")
}

func TestBrowseYankWithoutURLWarns(t *testing.T) {
	m, _ := testBrowse(t)

	m = updateBrowse(t, m, keyMsg("y"))
	require.Contains(t, m.View(), "Nothing to yank")
}

func TestMergeMessageReplacesSlot(t *testing.T) {
	list := mergeMessage(nil, messaging.Message{Text: "one", Replace: "status"}, 3)
	list = mergeMessage(list, messaging.Message{Text: "unrelated"}, 3)
	list = mergeMessage(list, messaging.Message{Text: "two", Replace: "status"}, 3)

	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Text)
	assert.Equal(t, "unrelated", list[1].Text)
}

func TestMergeMessageCapsLength(t *testing.T) {
	var list []messaging.Message
	for _, text := range []string{"a", "b", "c", "d"} {
		list = mergeMessage(list, messaging.Message{Text: text}, 3)
	}

	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].Text)
	assert.Equal(t, "d", list[2].Text)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "", wrapText(browser.NavFound))
	assert.Equal(t, "Search hit BOTTOM, continuing at TOP", wrapText(browser.NavWrappedBottom))
	assert.Equal(t, "Search hit TOP, continuing at BOTTOM", wrapText(browser.NavWrappedTop))
	assert.Equal(t, "Search hit BOTTOM", wrapText(browser.NavWrapPreventedBottom))
	assert.Equal(t, "No more matches", wrapText(browser.NavNotFound))
}
