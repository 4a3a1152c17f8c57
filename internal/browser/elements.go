package browser

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/engine/script"
	"github.com/skiff-browser/skiff/internal/promise"
)

// Element is a snapshot of one DOM element, resolved through the engine.
// It does not track the live element; attributes reflect lookup time.
type Element struct {
	tab  *Tab
	data engine.ElementData
}

func (e *Element) Data() engine.ElementData { return e.data }

func (e *Element) Tag() string { return strings.ToLower(e.data.Tag) }

func (e *Element) Text() string { return e.data.Text }

func (e *Element) Value() string { return e.data.Value }

func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.data.Attributes[name]
	return v, ok
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.data.Attributes[name]
	return ok
}

func (e *Element) Visible() bool { return e.data.Visible }

// Rect returns the first client rect, zero when geometry is unknown.
func (e *Element) Rect() engine.Rect {
	if len(e.data.Rects) == 0 {
		return engine.Rect{}
	}
	return e.data.Rects[0]
}

// IsLink reports whether following the element would navigate.
func (e *Element) IsLink() bool {
	switch e.Tag() {
	case "a", "area":
		return e.HasAttribute("href")
	default:
		return false
	}
}

// textInputTypes are input types edited with a text cursor.
var textInputTypes = map[string]bool{
	"": true, "text": true, "email": true, "url": true, "tel": true,
	"number": true, "password": true, "search": true,
}

// IsEditable reports whether the element accepts keyboard text input.
func (e *Element) IsEditable() bool {
	if v, ok := e.Attribute("contenteditable"); ok && v != "false" {
		return true
	}
	switch e.Tag() {
	case "textarea", "select":
		return true
	case "input":
		typ, _ := e.Attribute("type")
		return textInputTypes[strings.ToLower(typ)]
	default:
		return false
	}
}

// ResolvedHref resolves the element's href against the tab's URL.
// Empty when the element has no usable href.
func (e *Element) ResolvedHref() string {
	href, ok := e.Attribute("href")
	if !ok || href == "" {
		return ""
	}
	base, err := url.Parse(e.tab.URL())
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// Click activates the element. TargetNormal clicks in place through the
// element script module; the tab targets route a link's resolved href
// through NewTabRequested instead.
func (e *Element) Click(target ClickTarget) error {
	switch target {
	case TargetNormal:
		code := script.Assemble("webelem", "click", e.data.ID)
		e.tab.view.RunJS(code, engine.WorldApp).Then(func(_ any, err error) {
			if err != nil {
				e.tab.log.Debug().Err(err).Uint64("elem", e.data.ID).Msg("Element click failed")
			}
		})
		return nil
	case TargetTab, TargetTabBg, TargetWindow:
		href := e.ResolvedHref()
		if href == "" {
			return invalidArgument("element is not a link")
		}
		e.tab.view.Events().NewTabRequested.Emit(href)
		return nil
	case TargetHover:
		code := script.Assemble("webelem", "hover", e.data.ID)
		e.tab.view.RunJS(code, engine.WorldApp).Then(func(any, error) {})
		return nil
	default:
		return invalidArgument("unknown click target %v", target)
	}
}

// Elements finds DOM elements in one tab. Backends that resolve
// elements natively are used directly; everything else goes through the
// injected element script module.
type Elements struct {
	tab *Tab
}

func newElements(tab *Tab) *Elements {
	return &Elements{tab: tab}
}

// FindCSS resolves all elements matching a CSS selector. With
// onlyVisible set, elements without visible geometry are dropped.
func (e *Elements) FindCSS(selector string, onlyVisible bool) *promise.Future[[]*Element] {
	out := promise.NewFuture[[]*Element](e.tab.post)

	if finder, ok := e.tab.view.(engine.NativeElementFinder); ok {
		finder.FindElements(selector).Then(func(data []engine.ElementData, err error) {
			if err != nil {
				out.Reject(err)
				return
			}
			out.Resolve(e.wrap(data, onlyVisible))
		})
		return out
	}

	code := script.Assemble("webelem", "findCss", selector, onlyVisible)
	e.tab.view.RunJS(code, engine.WorldApp).Then(func(v any, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		data, err := decodeElements(v)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(e.wrap(data, onlyVisible))
	})
	return out
}

// FindID resolves the element with the given id attribute, nil when
// there is none.
func (e *Elements) FindID(id string) *promise.Future[*Element] {
	return e.first(e.FindCSS(attrSelector("id", id), false))
}

// FindFocused resolves the currently focused element, nil when focus is
// not on an element.
func (e *Elements) FindFocused() *promise.Future[*Element] {
	out := promise.NewFuture[*Element](e.tab.post)
	code := script.Assemble("webelem", "findFocused")
	e.tab.view.RunJS(code, engine.WorldApp).Then(func(v any, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		data, err := decodeElements(v)
		if err != nil {
			out.Reject(err)
			return
		}
		wrapped := e.wrap(data, false)
		if len(wrapped) == 0 {
			out.Resolve(nil)
			return
		}
		out.Resolve(wrapped[0])
	})
	return out
}

// FindAtPos resolves the topmost element at a viewport position, nil
// when the position is empty.
func (e *Elements) FindAtPos(p engine.Point) *promise.Future[*Element] {
	out := promise.NewFuture[*Element](e.tab.post)
	code := script.Assemble("webelem", "findAtPos", p.X, p.Y)
	e.tab.view.RunJS(code, engine.WorldApp).Then(func(v any, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		data, err := decodeElements(v)
		if err != nil {
			out.Reject(err)
			return
		}
		wrapped := e.wrap(data, false)
		if len(wrapped) == 0 {
			out.Resolve(nil)
			return
		}
		out.Resolve(wrapped[0])
	})
	return out
}

func (e *Elements) first(f *promise.Future[[]*Element]) *promise.Future[*Element] {
	out := promise.NewFuture[*Element](e.tab.post)
	f.Then(func(elems []*Element, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		if len(elems) == 0 {
			out.Resolve(nil)
			return
		}
		out.Resolve(elems[0])
	})
	return out
}

func (e *Elements) wrap(data []engine.ElementData, onlyVisible bool) []*Element {
	elems := make([]*Element, 0, len(data))
	for _, d := range data {
		if onlyVisible && !d.Visible {
			continue
		}
		elems = append(elems, &Element{tab: e.tab, data: d})
	}
	return elems
}

// decodeElements converts a JSON-decoded script result back into
// element data. A nil result means no elements.
func decodeElements(v any) ([]engine.ElementData, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// Single objects come back from the focused/position lookups.
	if len(raw) > 0 && raw[0] == '{' {
		var one engine.ElementData
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, err
		}
		return []engine.ElementData{one}, nil
	}
	var many []engine.ElementData
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// attrSelector builds a CSS attribute selector with a quoted value.
func attrSelector(attr, value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `[` + attr + `="` + value + `"]`
}
