package lite

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/promise"
)

// FindElements resolves a CSS selector against the parsed document.
// goquery evaluates the selector directly, so no script injection is
// needed.
func (v *view) FindElements(selector string) *promise.Future[[]engine.ElementData] {
	out := promise.NewFuture[[]engine.ElementData](v.post)
	v.dispatch(func() {
		v.mu.RLock()
		closed := v.closed
		doc := v.doc
		v.mu.RUnlock()

		if closed {
			out.Reject(engine.ErrViewClosed)
			return
		}
		if doc == nil {
			out.Reject(engine.ErrNotReady)
			return
		}

		var elems []engine.ElementData
		var id uint64
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			id++
			elems = append(elems, snapshotElement(id, sel))
		})
		out.Resolve(elems)
	})
	return out
}

// snapshotElement captures one matched node. Without a layout engine
// there is no geometry; visibility falls back to attribute heuristics.
func snapshotElement(id uint64, sel *goquery.Selection) engine.ElementData {
	data := engine.ElementData{
		ID:      id,
		Tag:     goquery.NodeName(sel),
		Text:    strings.TrimSpace(sel.Text()),
		Visible: elementVisible(sel),
	}

	if node := sel.Get(0); node != nil && node.Type == html.ElementNode {
		for _, attr := range node.Attr {
			if data.Attributes == nil {
				data.Attributes = make(map[string]string, len(node.Attr))
			}
			data.Attributes[attr.Key] = attr.Val
		}
	}
	if val, ok := sel.Attr("value"); ok {
		data.Value = val
	}
	return data
}

func elementVisible(sel *goquery.Selection) bool {
	if _, hidden := sel.Attr("hidden"); hidden {
		return false
	}
	if typ, ok := sel.Attr("type"); ok && strings.EqualFold(typ, "hidden") {
		return false
	}
	if style, ok := sel.Attr("style"); ok {
		compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden") {
			return false
		}
	}
	return true
}
