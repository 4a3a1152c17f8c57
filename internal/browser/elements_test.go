package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/promise"
)

// finderView is a fakeView with native element lookup.
type finderView struct {
	*fakeView
	elements  []engine.ElementData
	selectors []string
}

func (v *finderView) FindElements(selector string) *promise.Future[[]engine.ElementData] {
	v.selectors = append(v.selectors, selector)
	return promise.Resolved(nil, v.elements)
}

func TestElementsNativeFinder(t *testing.T) {
	view := &finderView{
		fakeView: newFakeView(),
		elements: []engine.ElementData{
			{ID: 1, Tag: "A", Attributes: map[string]string{"href": "/x"}, Visible: true},
			{ID: 2, Tag: "a", Attributes: map[string]string{"href": "/y"}, Visible: false},
		},
	}
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	f := tab.Elements.FindCSS("a", false)
	require.True(t, f.Settled())
	elems, err := f.Result()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, "a", elems[0].Tag(), "tags are normalized to lower case")
	assert.Equal(t, []string{"a"}, view.selectors)
	assert.Empty(t, view.jsCalls, "native finder must bypass script injection")

	f = tab.Elements.FindCSS("a", true)
	require.True(t, f.Settled())
	elems, err = f.Result()
	require.NoError(t, err)
	require.Len(t, elems, 1, "only visible elements survive the filter")
	assert.Equal(t, uint64(1), elems[0].Data().ID)
}

func TestElementsScriptFallback(t *testing.T) {
	view := newFakeView()
	view.jsResults["findCss"] = []any{
		map[string]any{"id": float64(7), "tag": "input", "attributes": map[string]any{"type": "text"}, "visible": true},
	}
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	f := tab.Elements.FindCSS("input", false)
	require.True(t, f.Settled())
	elems, err := f.Result()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, uint64(7), elems[0].Data().ID)
	assert.True(t, elems[0].IsEditable())
	require.Len(t, view.jsCalls, 1)
	assert.Contains(t, view.jsCalls[0], "findCss")
}

func TestElementsFindFocused(t *testing.T) {
	view := newFakeView()
	view.jsResults["findFocused"] = map[string]any{
		"id": float64(3), "tag": "textarea", "visible": true,
	}
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	f := tab.Elements.FindFocused()
	require.True(t, f.Settled())
	elem, err := f.Result()
	require.NoError(t, err)
	require.NotNil(t, elem)
	assert.Equal(t, "textarea", elem.Tag())
	assert.True(t, elem.IsEditable())
}

func TestElementsFindFocusedNone(t *testing.T) {
	view := newFakeView() // RunJS resolves nil by default
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	f := tab.Elements.FindFocused()
	require.True(t, f.Settled())
	elem, err := f.Result()
	require.NoError(t, err)
	assert.Nil(t, elem)
}

func TestElementEditable(t *testing.T) {
	tests := []struct {
		name string
		data engine.ElementData
		want bool
	}{
		{"text input", engine.ElementData{Tag: "input", Attributes: map[string]string{"type": "text"}}, true},
		{"typeless input", engine.ElementData{Tag: "input"}, true},
		{"checkbox", engine.ElementData{Tag: "input", Attributes: map[string]string{"type": "checkbox"}}, false},
		{"textarea", engine.ElementData{Tag: "TEXTAREA"}, true},
		{"contenteditable div", engine.ElementData{Tag: "div", Attributes: map[string]string{"contenteditable": "true"}}, true},
		{"contenteditable false", engine.ElementData{Tag: "div", Attributes: map[string]string{"contenteditable": "false"}}, false},
		{"plain div", engine.ElementData{Tag: "div"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Element{data: tt.data}
			assert.Equal(t, tt.want, e.IsEditable())
		})
	}
}

func TestElementResolvedHref(t *testing.T) {
	view := newFakeView()
	view.url = "https://example.org/dir/page.html"
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	e := &Element{tab: tab, data: engine.ElementData{
		Tag: "a", Attributes: map[string]string{"href": "../other"},
	}}
	assert.Equal(t, "https://example.org/other", e.ResolvedHref())

	abs := &Element{tab: tab, data: engine.ElementData{
		Tag: "a", Attributes: map[string]string{"href": "https://else.example/"},
	}}
	assert.Equal(t, "https://else.example/", abs.ResolvedHref())

	none := &Element{tab: tab, data: engine.ElementData{Tag: "a"}}
	assert.Empty(t, none.ResolvedHref())
}

func TestElementClickTargets(t *testing.T) {
	view := newFakeView()
	view.url = "https://example.org/"
	_, tab := newTestTab(t, view, Options{Backend: "fake"})

	var newTabs []string
	view.Events().NewTabRequested.Connect(func(u string) { newTabs = append(newTabs, u) })

	link := &Element{tab: tab, data: engine.ElementData{
		ID: 4, Tag: "a", Attributes: map[string]string{"href": "/next"},
	}}

	require.NoError(t, link.Click(TargetNormal))
	require.Len(t, view.jsCalls, 1)
	assert.Contains(t, view.jsCalls[0], "click")
	assert.Empty(t, newTabs)

	require.NoError(t, link.Click(TargetTab))
	assert.Equal(t, []string{"https://example.org/next"}, newTabs)

	plain := &Element{tab: tab, data: engine.ElementData{ID: 5, Tag: "div"}}
	err := plain.Click(TargetTab)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAttrSelector(t *testing.T) {
	assert.Equal(t, `[id="plain"]`, attrSelector("id", "plain"))
	assert.Equal(t, `[id="with\"quote"]`, attrSelector("id", `with"quote`))
}
