package browser

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/event"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/promise"
)

// Tab is the engine-neutral face of one web view. It owns the
// sub-facades for history, zoom, search, scrolling, caret browsing,
// elements, audio, printing and the inspector, and translates raw
// engine events into browser-level state such as the load status.
//
// A tab lives on the session's loop goroutine. Futures returned by its
// methods settle there too.
type Tab struct {
	ID uint64

	session *Session
	view    engine.View
	ctx     context.Context
	log     zerolog.Logger
	post    func(func())

	Data     *TabData
	Hist     *History
	Zoom     *Zoom
	Search   *Search
	Scroll   *Scroll
	Caret    *Caret
	Elements *Elements
	Audio    *Audio
	Printing *Printing
	Action   *Action

	// LoadStatusChanged fires when the classified load status changes.
	LoadStatusChanged *event.Hook[engine.LoadStatus]
	// FullscreenChanged fires when the tab enters or leaves
	// page-requested fullscreen.
	FullscreenChanged *event.Hook[bool]
	// PinnedChanged fires when the pinned flag flips.
	PinnedChanged *event.Hook[bool]

	loadStatus engine.LoadStatus
	closed     bool
}

func newTab(ctx context.Context, s *Session, id uint64, view engine.View) *Tab {
	log := logging.FromContext(ctx).With().
		Uint64("tab_id", id).
		Str("backend", view.Backend()).
		Logger()

	t := &Tab{
		ID:      id,
		session: s,
		view:    view,
		ctx:     ctx,
		log:     log,
		post:    s.loop.Post,

		Data: &TabData{},

		LoadStatusChanged: event.NewHook[engine.LoadStatus]("tab-load-status-changed"),
		FullscreenChanged: event.NewHook[bool]("tab-fullscreen-changed"),
		PinnedChanged:     event.NewHook[bool]("tab-pinned-changed"),
	}

	t.Hist = newHistory(t)
	t.Zoom = newZoom(t, s.opts.Zoom)
	t.Search = newSearch(t, s.opts.Search)
	t.Scroll = newScroll(t)
	t.Caret = newCaret(t)
	t.Elements = newElements(t)
	t.Audio = newAudio(t)
	t.Printing = newPrinting(t)
	t.Action = newAction(t)

	t.connectEvents()
	t.connectZoomStore()

	if err := t.Zoom.ApplyDefault(); err != nil {
		log.Debug().Err(err).Msg("Applying default zoom failed")
	}

	return t
}

// View exposes the underlying engine view for shell code that needs
// backend-specific capabilities. Facade state is not synced for calls
// made directly on it.
func (t *Tab) View() engine.View { return t.view }

func (t *Tab) Session() *Session { return t.session }

func (t *Tab) Events() *engine.Events { return t.view.Events() }

func (t *Tab) Backend() string { return t.view.Backend() }

func (t *Tab) URL() string { return t.view.URL() }

// Title returns the page title, falling back to the URL while no title
// is known yet.
func (t *Tab) Title() string {
	if title := t.view.Title(); title != "" {
		return title
	}
	return t.view.URL()
}

func (t *Tab) Icon() []byte { return t.view.Icon() }

func (t *Tab) Progress() int { return t.view.LoadProgress() }

func (t *Tab) IsLoading() bool { return t.view.IsLoading() }

func (t *Tab) LoadStatus() engine.LoadStatus { return t.loadStatus }

// Load starts loading a URL. Pinned tabs refuse navigation when the
// session is configured to freeze them.
func (t *Tab) Load(rawURL string) error {
	if t.closed {
		return engine.ErrViewClosed
	}
	if t.Data.Pinned && t.session.opts.PinnedFrozen {
		return invalidArgument("Tab is pinned!")
	}

	t.Data.LastNavigation = Navigation{URL: rawURL, When: time.Now()}
	t.Data.ViewingSource = false
	t.log.Debug().Str("url", rawURL).Msg("Loading")
	return t.view.Load(rawURL)
}

// LoadHTML renders markup directly, as if served from baseURL.
func (t *Tab) LoadHTML(html, baseURL string) error {
	if t.closed {
		return engine.ErrViewClosed
	}
	return t.view.LoadHTML(html, baseURL)
}

func (t *Tab) Reload(bypassCache bool) error {
	if t.closed {
		return engine.ErrViewClosed
	}
	t.Data.ViewingSource = false
	return t.view.Reload(bypassCache)
}

func (t *Tab) Stop() error { return t.view.Stop() }

// RunJS executes JavaScript in the given world and resolves with the
// JSON-decoded result.
func (t *Tab) RunJS(code string, world engine.World) *promise.Future[any] {
	return t.view.RunJS(code, world)
}

// DumpHTML resolves with the serialized DOM of the current page.
func (t *Tab) DumpHTML() *promise.Future[string] {
	return t.view.DumpHTML()
}

func (t *Tab) Settings() engine.Settings { return t.view.Settings() }

// SetPinned flips the pinned flag. Navigation freezing is applied on
// the next Load.
func (t *Tab) SetPinned(pinned bool) {
	if t.Data.Pinned == pinned {
		return
	}
	t.Data.Pinned = pinned
	t.PinnedChanged.Emit(pinned)
}

func (t *Tab) IsFullscreen() bool { return t.Data.Fullscreen }

func (t *Tab) setFullscreen(on bool) {
	if t.Data.Fullscreen == on {
		return
	}
	t.Data.Fullscreen = on
	t.FullscreenChanged.Emit(on)
}

// Close shuts the tab down. The inspector closes first, then the view;
// pending futures reject with engine.ErrViewClosed.
func (t *Tab) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if insp := t.Data.Inspector; insp != nil && insp.Visible() {
		if err := insp.Hide(); err != nil {
			t.log.Debug().Err(err).Msg("Closing inspector failed")
		}
	}
	t.log.Debug().Msg("Tab closing")
	return t.view.Close()
}

func (t *Tab) connectEvents() {
	ev := t.view.Events()

	ev.LoadStarted.Connect(func(struct{}) {
		t.setLoadStatus(engine.LoadStatusLoading)
		if t.Data.KeepIcon {
			t.Data.KeepIcon = false
		} else {
			// Tell the shell to drop the previous page's favicon.
			ev.IconChanged.Emit(nil)
		}
	})

	ev.LoadFinished.Connect(func(ok bool) {
		t.setLoadStatus(t.classifyLoad(ok))
		if err := t.Zoom.Reapply(); err != nil {
			t.log.Debug().Err(err).Msg("Zoom reapply failed")
		}
		t.applyDomainZoom()
		if ok {
			t.recordVisit()
		}
	})

	ev.URLChanged.Connect(func(u string) {
		t.log.Debug().Str("url", u).Msg("URL changed")
	})

	ev.RendererTerminated.Connect(func(term engine.Termination) {
		t.onRendererTerminated(term)
	})

	ev.FullscreenRequested.Connect(func(on bool) {
		t.setFullscreen(on)
	})
}

func (t *Tab) setLoadStatus(status engine.LoadStatus) {
	if status == t.loadStatus {
		return
	}
	t.loadStatus = status
	t.log.Debug().Str("status", status.String()).Msg("Load status changed")
	t.LoadStatusChanged.Emit(status)
}

// classifyLoad turns the engine's ok/failed outcome into the
// user-facing load status. HTTPS origins whose certificate errors were
// accepted earlier degrade to Warn.
func (t *Tab) classifyLoad(ok bool) engine.LoadStatus {
	if !ok {
		return engine.LoadStatusError
	}
	u, err := url.Parse(t.view.URL())
	if err != nil || u.Scheme != "https" {
		return engine.LoadStatusSuccess
	}
	if t.session.IsInsecureHost(u.Hostname()) {
		return engine.LoadStatusWarn
	}
	return engine.LoadStatusSuccessHTTPS
}

func (t *Tab) onRendererTerminated(term engine.Termination) {
	msg := "Renderer process "
	switch term.Status {
	case engine.TerminationAbnormal:
		msg += "exited abnormally"
	case engine.TerminationCrashed:
		msg += "crashed"
	case engine.TerminationKilled:
		msg += "was killed"
	default:
		msg += "did not start"
	}
	if term.Code != 0 {
		msg += fmt.Sprintf(" (status %d)", term.Code)
	}

	t.log.Error().
		Str("status", term.Status.String()).
		Int("code", term.Code).
		Msg("Renderer terminated")
	t.session.Bridge().Error(msg)
	t.setLoadStatus(engine.LoadStatusError)
}

func (t *Tab) recordVisit() {
	if t.session.visits == nil {
		return
	}
	u := t.view.URL()
	if u == "" {
		return
	}
	t.session.visits.Record(t.ctx, u, t.view.Title())
}

// connectZoomStore wires per-domain zoom persistence when the session
// has a zoom store.
func (t *Tab) connectZoomStore() {
	if t.session.zooms == nil {
		return
	}
	t.Zoom.FactorChanged.Connect(func(factor float64) {
		host := t.currentHost()
		if host == "" {
			return
		}
		if err := t.session.zooms.SetZoomLevel(t.ctx, host, factor); err != nil {
			t.log.Debug().Err(err).Str("host", host).Msg("Saving zoom failed")
		}
	})
}

// applyDomainZoom restores a previously saved zoom for the page's host.
func (t *Tab) applyDomainZoom() {
	if t.session.zooms == nil {
		return
	}
	host := t.currentHost()
	if host == "" {
		return
	}
	factor, ok, err := t.session.zooms.ZoomLevel(t.ctx, host)
	if err != nil || !ok {
		return
	}
	if factor == t.Zoom.Factor() {
		return
	}
	if err := t.Zoom.SetFactor(factor); err != nil {
		t.log.Debug().Err(err).Str("host", host).Msg("Restoring zoom failed")
	}
}

func (t *Tab) currentHost() string {
	u, err := url.Parse(t.view.URL())
	if err != nil {
		return ""
	}
	return u.Hostname()
}
