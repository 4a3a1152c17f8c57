package browser

import (
	"errors"
	"html"
	"os"

	"github.com/skiff-browser/skiff/internal/promise"
)

// Action bundles one-shot page operations that do not deserve their own
// facade.
type Action struct {
	tab *Tab
}

func newAction(tab *Tab) *Action {
	return &Action{tab: tab}
}

// ErrAlreadyViewingSource is returned when source view is requested for
// a tab that already shows source.
var ErrAlreadyViewingSource = errors.New("already viewing source")

// ExitFullscreen leaves page-requested fullscreen.
func (a *Action) ExitFullscreen() {
	a.tab.setFullscreen(false)
}

// SavePage serializes the current DOM into a file at path and resolves
// with the path.
func (a *Action) SavePage(path string) *promise.Future[string] {
	out := promise.NewFuture[string](a.tab.post)
	a.tab.view.DumpHTML().Then(func(dump string, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
			out.Reject(err)
			return
		}
		a.tab.log.Debug().Str("path", path).Msg("Page saved")
		out.Resolve(path)
	})
	return out
}

// ShowSource replaces the page with its own serialized source. The tab
// is marked as viewing source; requesting source again fails.
func (a *Action) ShowSource() error {
	if a.tab.Data.ViewingSource {
		return &taggedError{msg: "Already viewing source!", kind: ErrAlreadyViewingSource}
	}

	src := a.tab.URL()
	a.tab.view.DumpHTML().Then(func(dump string, err error) {
		if err != nil {
			a.tab.log.Error().Err(err).Msg("Source dump failed")
			a.tab.session.Bridge().Error("Failed to dump page source")
			return
		}
		page := "<html><head><title>Source of " + html.EscapeString(src) +
			"</title></head><body><pre>" + html.EscapeString(dump) + "</pre></body></html>"
		if err := a.tab.view.LoadHTML(page, src); err != nil {
			a.tab.log.Error().Err(err).Msg("Source load failed")
			return
		}
		a.tab.Data.ViewingSource = true
	})
	return nil
}
