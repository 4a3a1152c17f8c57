package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/browser"
	cdpcore "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/engine/script"
	"github.com/skiff-browser/skiff/internal/promise"
)

const (
	zoomMin = 0.25
	zoomMax = 5.0
)

const startTimeout = 30 * time.Second

var viewIDCounter uint64

// view drives one browser tab over the DevTools protocol. Protocol
// calls block on the websocket, so future-returning operations run on
// their own goroutines and settle through post.
type view struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	post   func(func())
	log    zerolog.Logger

	events   *engine.Events
	settings *engine.MemSettings

	mu          sync.Mutex
	closed      bool
	url         string
	title       string
	loading     bool
	progress    int
	zoom        float64
	mainFrame   cdpcore.FrameID
	worlds      map[engine.World]runtime.ExecutionContextID
	findText    string
	findFlags   engine.FindFlags
	findTotal   int
	findCurrent int
}

func newView(ctx context.Context, allocCtx context.Context, opts engine.Options) (*view, error) {
	id := atomic.AddUint64(&viewIDCounter, 1)
	log := zerolog.Ctx(ctx).With().
		Str("component", "cdp").
		Uint64("view_id", id).
		Logger()

	tabCtx, cancel := chromedp.NewContext(allocCtx)

	v := &view{
		id:       id,
		ctx:      tabCtx,
		cancel:   cancel,
		post:     opts.Post,
		log:      log,
		events:   engine.NewEvents(),
		settings: engine.NewMemSettings(opts.Config),
		url:      "about:blank",
		zoom:     1.0,
		worlds:   make(map[engine.World]runtime.ExecutionContextID),
	}

	chromedp.ListenTarget(tabCtx, v.onEvent)

	startCtx, stop := context.WithTimeout(tabCtx, startTimeout)
	defer stop()
	if err := chromedp.Run(startCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	v.settings.OnApply(v.applySetting)
	v.logEngineVersion(startCtx)
	log.Debug().Msg("tab attached")
	return v, nil
}

// logEngineVersion asks the browser for its user agent and logs the
// parsed engine tokens. Failure only costs the log line.
func (v *view) logEngineVersion(ctx context.Context) {
	var ua string
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		_, _, _, ua, _, err = browser.GetVersion().Do(ctx)
		return err
	}))
	if err != nil {
		return
	}
	parsed, err := engine.ParseUserAgent(ua)
	if err != nil {
		v.log.Debug().Str("user_agent", ua).Msg("unrecognized user agent shape")
		return
	}
	v.log.Debug().
		Str("webkit", parsed.WebKitVersion).
		Str("upstream", parsed.UpstreamBrowser+"/"+parsed.UpstreamVersion).
		Msg("engine identified")
}

func (v *view) ID() uint64      { return v.id }
func (v *view) Backend() string { return BackendName }

func (v *view) dispatch(fn func()) {
	if v.post == nil {
		fn()
		return
	}
	v.post(fn)
}

func (v *view) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// onEvent translates protocol events into view hooks. Handlers run on
// chromedp's event goroutine and hop onto the owning loop via dispatch.
func (v *view) onEvent(ev any) {
	switch e := ev.(type) {
	case *page.EventFrameStartedLoading:
		v.mu.Lock()
		known := v.mainFrame != ""
		main := !known || e.FrameID == v.mainFrame
		if main {
			v.loading = true
			v.progress = 0
		}
		v.mu.Unlock()
		if main {
			v.dispatch(func() {
				v.events.LoadStarted.Emit(struct{}{})
				v.events.LoadProgress.Emit(0)
			})
		}
	case *page.EventFrameNavigated:
		if e.Frame.ParentID != "" {
			return
		}
		v.mu.Lock()
		v.mainFrame = e.Frame.ID
		v.url = e.Frame.URL
		// Isolated worlds die with the old document.
		v.worlds = make(map[engine.World]runtime.ExecutionContextID)
		v.mu.Unlock()
		v.dispatch(func() { v.events.URLChanged.Emit(e.Frame.URL) })
	case *page.EventLoadEventFired:
		v.mu.Lock()
		v.loading = false
		v.progress = 100
		v.mu.Unlock()
		v.dispatch(func() {
			v.events.LoadProgress.Emit(100)
			v.events.LoadFinished.Emit(true)
		})
		go v.refreshTitle()
	case *page.EventWindowOpen:
		url := e.URL
		v.dispatch(func() { v.events.NewTabRequested.Emit(url) })
	case *inspector.EventTargetCrashed:
		v.dispatch(func() {
			v.events.RendererTerminated.Emit(engine.Termination{Status: engine.TerminationCrashed})
		})
	}
}

func (v *view) refreshTitle() {
	var title string
	if err := chromedp.Run(v.ctx, chromedp.Title(&title)); err != nil {
		return
	}
	v.mu.Lock()
	changed := title != v.title
	v.title = title
	v.mu.Unlock()
	if changed {
		v.dispatch(func() { v.events.TitleChanged.Emit(title) })
	}
}

// run executes protocol actions against this tab.
func (v *view) run(actions ...chromedp.Action) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	return chromedp.Run(v.ctx, actions...)
}

func (v *view) Load(url string) error {
	if url == "" {
		return fmt.Errorf("cdp: refusing to load an empty URL")
	}
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, errText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
		if errText != "" {
			return fmt.Errorf("navigation to %s refused: %s", url, errText)
		}
		return nil
	}))
}

func (v *view) LoadHTML(html, baseURL string) error {
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to get frame tree: %w", err)
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	}))
}

func (v *view) Reload(bypassCache bool) error {
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Reload().WithIgnoreCache(bypassCache).Do(ctx)
	}))
}

func (v *view) Stop() error {
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		return page.StopLoading().Do(ctx)
	}))
}

func (v *view) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *view) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// Icon is not plumbed through the protocol; favicon fetching is left to
// the shell.
func (v *view) Icon() []byte { return nil }

func (v *view) LoadProgress() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.progress
}

func (v *view) IsLoading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *view) history() ([]*page.NavigationEntry, int, error) {
	var entries []*page.NavigationEntry
	var current int
	err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		idx, list, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to get navigation history: %w", err)
		}
		entries = list
		current = int(idx)
		return nil
	}))
	return entries, current, err
}

func (v *view) History() ([]engine.NavEntry, int, error) {
	entries, current, err := v.history()
	if err != nil {
		return nil, -1, err
	}
	out := make([]engine.NavEntry, len(entries))
	for i, e := range entries {
		out[i] = engine.NavEntry{URL: e.URL, OriginalURL: e.UserTypedURL, Title: e.Title}
	}
	return out, current, nil
}

func (v *view) GoToIndex(i int) error {
	entries, _, err := v.history()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(entries) {
		return fmt.Errorf("cdp: history index %d out of range [0, %d)", i, len(entries))
	}
	return v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		return page.NavigateToHistoryEntry(entries[i].ID).Do(ctx)
	}))
}

type historyState struct {
	Entries []engine.NavEntry `json:"entries"`
	Index   int               `json:"index"`
}

func (v *view) SerializeHistory() ([]byte, error) {
	entries, idx, err := v.History()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(historyState{Entries: entries, Index: idx})
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// RestoreHistory cannot rebuild the browser-side entry list; it
// navigates to the captured current entry and drops the rest.
func (v *view) RestoreHistory(data []byte) error {
	var st historyState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("failed to decode history: %w", err)
	}
	if st.Index < 0 || st.Index >= len(st.Entries) {
		return fmt.Errorf("cdp: history index %d out of range for %d entries", st.Index, len(st.Entries))
	}
	if len(st.Entries) > 1 {
		v.log.Debug().Int("dropped", len(st.Entries)-1).Msg("history restore flattens to current entry")
	}
	return v.Load(st.Entries[st.Index].URL)
}

func (v *view) ZoomFactor() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

// SetZoomFactor approximates zoom with CSS; the protocol has no
// viewport zoom of its own.
func (v *view) SetZoomFactor(factor float64) error {
	if factor < zoomMin {
		factor = zoomMin
	}
	if factor > zoomMax {
		factor = zoomMax
	}
	js := fmt.Sprintf("document.documentElement.style.zoom = %g", factor)
	if err := v.run(chromedp.Evaluate(js, nil)); err != nil {
		return err
	}
	v.mu.Lock()
	v.zoom = factor
	v.mu.Unlock()
	return nil
}

func (v *view) ScrollToPoint(p engine.Point) error {
	return v.run(chromedp.Evaluate(script.Call("window.scrollTo", p.X, p.Y), nil))
}

func (v *view) ScrollToAnchor(name string) error {
	if name == "" {
		return fmt.Errorf("cdp: empty anchor name")
	}
	js := fmt.Sprintf("location.hash = %s", script.Quote("#"+name))
	return v.run(chromedp.Evaluate(js, nil))
}

func (v *view) ScrollDelta(dx, dy int) error {
	return v.run(chromedp.Evaluate(script.Call("window.scrollBy", dx, dy), nil))
}

func (v *view) ScrollDeltaPage(px, py float64) error {
	js := fmt.Sprintf("window.scrollBy(window.innerWidth * %g, window.innerHeight * %g)", px, py)
	return v.run(chromedp.Evaluate(js, nil))
}

func (v *view) ScrollToPerc(x, y float64) error {
	jsX := "window.scrollX"
	if x != engine.PercKeep {
		jsX = fmt.Sprintf("(document.documentElement.scrollWidth - window.innerWidth) * %g / 100", x)
	}
	jsY := "window.scrollY"
	if y != engine.PercKeep {
		jsY = fmt.Sprintf("(document.documentElement.scrollHeight - window.innerHeight) * %g / 100", y)
	}
	return v.run(chromedp.Evaluate(fmt.Sprintf("window.scrollTo(%s, %s)", jsX, jsY), nil))
}

func (v *view) ScrollPosition() (engine.Point, error) {
	var pos []float64
	if err := v.run(chromedp.Evaluate("[window.scrollX, window.scrollY]", &pos)); err != nil {
		return engine.Point{}, err
	}
	if len(pos) != 2 {
		return engine.Point{}, fmt.Errorf("cdp: unexpected scroll position %v", pos)
	}
	return engine.Point{X: int(pos[0]), Y: int(pos[1])}, nil
}

func (v *view) ScrollPercentage() (int, int) {
	js := `(function() {
	var d = document.documentElement;
	var mx = d.scrollWidth - window.innerWidth;
	var my = d.scrollHeight - window.innerHeight;
	return [mx > 0 ? Math.round(window.scrollX * 100 / mx) : 0,
	        my > 0 ? Math.round(window.scrollY * 100 / my) : 0];
})()`
	var perc []int
	if err := v.run(chromedp.Evaluate(js, &perc)); err != nil || len(perc) != 2 {
		return 0, 0
	}
	return perc[0], perc[1]
}

// findSnippet highlights via window.find and counts occurrences in the
// page text so match totals can be reported.
const findSnippet = `(function(text, caseSensitive, backward, wrap) {
	var hay = document.body ? document.body.innerText : "";
	var needle = caseSensitive ? text : text.toLowerCase();
	var h = caseSensitive ? hay : hay.toLowerCase();
	var total = 0;
	if (needle.length > 0) {
		var idx = h.indexOf(needle);
		while (idx !== -1) { total++; idx = h.indexOf(needle, idx + needle.length); }
	}
	var found = window.find(text, caseSensitive, backward, wrap, false, false, false);
	return {found: found, total: total};
})(%s, %t, %t, %t)`

func (v *view) Find(text string, flags engine.FindFlags) *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	go func() {
		js := fmt.Sprintf(findSnippet, script.Quote(text), flags.CaseSensitive, flags.Backward, flags.WrapAround)
		var res struct {
			Found bool `json:"found"`
			Total int  `json:"total"`
		}
		if err := chromedp.Run(v.ctx, chromedp.Evaluate(js, &res)); err != nil {
			fut.Reject(fmt.Errorf("failed to search page: %w", err))
			return
		}

		v.mu.Lock()
		v.findText = text
		v.findFlags = flags
		v.findTotal = res.Total
		v.findCurrent = 0
		if res.Found && res.Total > 0 {
			v.findCurrent = 1
		}
		cur := v.findCurrent
		v.mu.Unlock()

		fut.Resolve(engine.FindResult{Found: res.Found, Current: cur, Total: res.Total})
	}()
	return fut
}

func (v *view) findStep(forward bool) *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	v.mu.Lock()
	text := v.findText
	flags := v.findFlags
	v.mu.Unlock()
	if text == "" {
		fut.Resolve(engine.FindResult{})
		return fut
	}

	go func() {
		backward := !forward
		if flags.Backward {
			backward = forward
		}
		js := fmt.Sprintf("window.find(%s, %t, %t, %t, false, false, false)",
			script.Quote(text), flags.CaseSensitive, backward, flags.WrapAround)
		var found bool
		if err := chromedp.Run(v.ctx, chromedp.Evaluate(js, &found)); err != nil {
			fut.Reject(fmt.Errorf("failed to step search: %w", err))
			return
		}

		v.mu.Lock()
		if found && v.findTotal > 0 {
			step := 1
			if !forward {
				step = -1
			}
			v.findCurrent += step
			if v.findCurrent > v.findTotal {
				v.findCurrent = 1
			}
			if v.findCurrent < 1 {
				v.findCurrent = v.findTotal
			}
		}
		res := engine.FindResult{Found: found, Current: v.findCurrent, Total: v.findTotal}
		v.mu.Unlock()

		fut.Resolve(res)
	}()
	return fut
}

func (v *view) FindNext() *promise.Future[engine.FindResult] {
	return v.findStep(true)
}

func (v *view) FindPrev() *promise.Future[engine.FindResult] {
	return v.findStep(false)
}

func (v *view) ClearFind() error {
	v.mu.Lock()
	v.findText = ""
	v.findTotal = 0
	v.findCurrent = 0
	v.mu.Unlock()
	return v.run(chromedp.Evaluate("window.getSelection().removeAllRanges()", nil))
}

// worldContext resolves the execution context for a world, creating the
// isolated world on first use per document.
func (v *view) worldContext(ctx context.Context, world engine.World) (runtime.ExecutionContextID, error) {
	if world == engine.WorldMain {
		return 0, nil
	}

	v.mu.Lock()
	id, ok := v.worlds[world]
	frame := v.mainFrame
	v.mu.Unlock()
	if ok {
		return id, nil
	}

	if frame == "" {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get frame tree: %w", err)
		}
		frame = tree.Frame.ID
		v.mu.Lock()
		v.mainFrame = frame
		v.mu.Unlock()
	}

	name := "SkiffApp"
	if world == engine.WorldUser {
		name = "SkiffUser"
	}
	id, err := page.CreateIsolatedWorld(frame).WithWorldName(name).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create isolated world: %w", err)
	}

	v.mu.Lock()
	v.worlds[world] = id
	v.mu.Unlock()
	return id, nil
}

func (v *view) evaluate(code string, world engine.World) (any, error) {
	var decoded any
	err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		ctxID, err := v.worldContext(ctx, world)
		if err != nil {
			return err
		}

		eval := runtime.Evaluate(code).WithReturnByValue(true)
		if ctxID != 0 {
			eval = eval.WithContextID(ctxID)
		}
		res, exc, err := eval.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to evaluate script: %w", err)
		}
		if exc != nil {
			return exc
		}
		if res != nil && len(res.Value) > 0 {
			if err := json.Unmarshal(res.Value, &decoded); err != nil {
				return fmt.Errorf("failed to decode script result: %w", err)
			}
		}
		return nil
	}))
	return decoded, err
}

func (v *view) RunJS(code string, world engine.World) *promise.Future[any] {
	fut := promise.NewFuture[any](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	go func() {
		res, err := v.evaluate(code, world)
		if err != nil {
			fut.Reject(err)
			return
		}
		fut.Resolve(res)
	}()
	return fut
}

func (v *view) RunJSSync(code string, world engine.World) (any, error) {
	if v.isClosed() {
		return nil, engine.ErrViewClosed
	}
	return v.evaluate(code, world)
}

// IsMuted always reports false; the protocol exposes no per-tab mute.
func (v *view) IsMuted() bool { return false }

func (v *view) SetMuted(muted bool) error {
	return fmt.Errorf("tab muting: %w", engine.ErrUnsupported)
}

func (v *view) DumpHTML() *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	go func() {
		var html string
		if err := chromedp.Run(v.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
			fut.Reject(fmt.Errorf("failed to dump HTML: %w", err))
			return
		}
		fut.Resolve(html)
	}()
	return fut
}

func (v *view) PrintToPDF(path string) *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	go func() {
		var data []byte
		err := chromedp.Run(v.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().Do(ctx)
			if err != nil {
				return err
			}
			data = buf
			return nil
		}))
		if err != nil {
			fut.Reject(fmt.Errorf("failed to render PDF: %w", err))
			return
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fut.Reject(fmt.Errorf("failed to write PDF: %w", err))
			return
		}
		fut.Resolve(path)
	}()
	return fut
}

// ShowInspector is unsupported; this backend is itself a DevTools
// client and cannot open the browser's own frontend.
func (v *view) ShowInspector() error {
	return fmt.Errorf("inspector: %w", engine.ErrUnsupported)
}

func (v *view) CloseInspector() error {
	return fmt.Errorf("inspector: %w", engine.ErrUnsupported)
}

// applySetting pushes one bookkeeping value down through the protocol.
// Only script execution and the user agent have protocol-level knobs.
func (v *view) applySetting(name string) {
	switch name {
	case engine.SettingJavaScriptEnabled:
		on, _ := v.settings.Attribute(name)
		err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetScriptExecutionDisabled(!on).Do(ctx)
		}))
		if err != nil {
			v.log.Warn().Err(err).Msg("failed to toggle script execution")
		}
	case "user_agent":
		ua := v.settings.UserAgent()
		if ua == "" {
			return
		}
		err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(ua).Do(ctx)
		}))
		if err != nil {
			v.log.Warn().Err(err).Msg("failed to override user agent")
		}
	default:
		v.log.Debug().Str("setting", name).Msg("setting tracked without protocol support")
	}
}

func (v *view) Settings() engine.Settings { return v.settings }
func (v *view) Events() *engine.Events    { return v.events }

func (v *view) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	v.mu.Unlock()

	v.cancel()
	v.log.Debug().Msg("tab closed")
	return nil
}
