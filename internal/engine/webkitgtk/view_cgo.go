//go:build webkit_cgo

package webkitgtk

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	jsc "github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/engine/script"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/promise"
)

var viewIDCounter uint64

func (factory) NewView(ctx context.Context, opts engine.Options) (engine.View, error) {
	ensureInit()

	id := atomic.AddUint64(&viewIDCounter, 1)
	log := logging.FromContext(ctx).With().
		Str("component", "webkitgtk").
		Uint64("view_id", id).
		Logger()

	wk := webkit.NewWebView()
	if wk == nil {
		return nil, fmt.Errorf("failed to create WebKit view: %w", engine.ErrNotReady)
	}

	win := gtk.NewWindow()
	win.SetDefaultSize(1280, 800)
	win.SetChild(wk)

	v := &nativeView{
		id:     id,
		post:   opts.Post,
		log:    log,
		events: engine.NewEvents(),
		wk:     wk,
		win:    win,
	}
	if v.post == nil {
		v.post = RunOnNativeThread
	}

	v.settings = engine.NewMemSettings(opts.Config)
	v.settings.OnApply(v.applySetting)
	v.applyConfig(opts.Config)
	v.connectSignals()

	win.Present()
	log.Debug().Msg("native view created")
	return v, nil
}

// nativeView drives a WebKitGTK WebView hosted in its own window. All
// methods must run on the GTK main thread, which is also the owning
// loop in native builds.
type nativeView struct {
	id     uint64
	post   func(func())
	log    zerolog.Logger
	events *engine.Events

	wk  *webkit.WebView
	win *gtk.Window

	settings *engine.MemSettings

	mu      sync.Mutex
	closed  bool
	scroll  engine.Point
	findFut *promise.Future[engine.FindResult]
	muted   bool
}

func (v *nativeView) ID() uint64      { return v.id }
func (v *nativeView) Backend() string { return BackendName }

func (v *nativeView) applyConfig(cfg engine.Config) {
	s := v.wk.Settings()
	if s == nil {
		return
	}
	s.SetEnableJavascript(cfg.EnableJavaScript)
	s.SetAutoLoadImages(cfg.AutoLoadImages)
	if cfg.DefaultFontSize > 0 {
		s.SetDefaultFontSize(uint32(cfg.DefaultFontSize))
	}
	if cfg.MinimumFontSize > 0 {
		s.SetMinimumFontSize(uint32(cfg.MinimumFontSize))
	}
	if cfg.UserAgent != "" {
		s.SetUserAgent(cfg.UserAgent)
	}
	if cfg.Muted {
		v.wk.SetIsMuted(true)
		v.muted = true
	}
}

// applySetting pushes one bookkeeping value down to the real WebKit
// settings object.
func (v *nativeView) applySetting(name string) {
	s := v.wk.Settings()
	if s == nil {
		return
	}
	switch name {
	case engine.SettingJavaScriptEnabled:
		on, _ := v.settings.Attribute(name)
		s.SetEnableJavascript(on)
	case engine.SettingAutoLoadImages:
		on, _ := v.settings.Attribute(name)
		s.SetAutoLoadImages(on)
	case engine.SettingWebGL:
		on, _ := v.settings.Attribute(name)
		s.SetEnableWebgl(on)
	case engine.SettingLocalStorage:
		on, _ := v.settings.Attribute(name)
		s.SetEnableHTML5LocalStorage(on)
	case engine.SettingSizeDefault:
		px, _ := v.settings.FontSize(name)
		s.SetDefaultFontSize(uint32(px))
	case engine.SettingSizeDefaultFixed:
		px, _ := v.settings.FontSize(name)
		s.SetDefaultMonospaceFontSize(uint32(px))
	case engine.SettingSizeMinimum:
		px, _ := v.settings.FontSize(name)
		s.SetMinimumFontSize(uint32(px))
	case engine.SettingFamilyStandard:
		fam, _ := v.settings.FontFamily(name)
		if fam != "" {
			s.SetDefaultFontFamily(fam)
		}
	case engine.SettingFamilyFixed:
		fam, _ := v.settings.FontFamily(name)
		if fam != "" {
			s.SetMonospaceFontFamily(fam)
		}
	case engine.SettingFamilySerif:
		fam, _ := v.settings.FontFamily(name)
		if fam != "" {
			s.SetSerifFontFamily(fam)
		}
	case engine.SettingFamilySansSerif:
		fam, _ := v.settings.FontFamily(name)
		if fam != "" {
			s.SetSansSerifFontFamily(fam)
		}
	case "user_agent":
		s.SetUserAgent(v.settings.UserAgent())
	}
}

func (v *nativeView) connectSignals() {
	v.wk.Connect("notify::title", func() {
		v.events.TitleChanged.Emit(v.wk.Title())
	})
	v.wk.Connect("notify::uri", func() {
		v.events.URLChanged.Emit(v.wk.URI())
	})
	v.wk.Connect("notify::estimated-load-progress", func() {
		v.events.LoadProgress.Emit(int(v.wk.EstimatedLoadProgress() * 100))
	})
	v.wk.Connect("notify::favicon", func() {
		v.events.IconChanged.Emit(v.Icon())
	})

	v.wk.ConnectLoadChanged(func(event webkit.LoadEvent) {
		switch event {
		case webkit.LoadStarted:
			v.events.LoadStarted.Emit(struct{}{})
		case webkit.LoadFinished:
			v.events.LoadFinished.Emit(true)
		}
	})
	v.wk.ConnectLoadFailed(func(event webkit.LoadEvent, failingURI string, err error) bool {
		v.log.Debug().Str("url", failingURI).Err(err).Msg("load failed")
		v.events.LoadFinished.Emit(false)
		return false
	})

	v.wk.ConnectWebProcessTerminated(func(reason webkit.WebProcessTerminationReason) {
		v.events.RendererTerminated.Emit(engine.Termination{
			Status: terminationStatus(reason),
		})
	})

	v.wk.ConnectEnterFullscreen(func() bool {
		v.events.FullscreenRequested.Emit(true)
		return false
	})
	v.wk.ConnectLeaveFullscreen(func() bool {
		v.events.FullscreenRequested.Emit(false)
		return false
	})

	fc := v.wk.FindController()
	fc.ConnectFoundText(func(matchCount uint) {
		v.settleFind(engine.FindResult{Found: true, Total: int(matchCount)})
	})
	fc.ConnectFailedToFindText(func() {
		v.settleFind(engine.FindResult{})
	})
}

func terminationStatus(reason webkit.WebProcessTerminationReason) engine.TerminationStatus {
	switch reason {
	case webkit.WebProcessCrashed:
		return engine.TerminationCrashed
	case webkit.WebProcessExceededMemoryLimit:
		return engine.TerminationKilled
	case webkit.WebProcessTerminatedByAPI:
		return engine.TerminationNormal
	default:
		return engine.TerminationUnknown
	}
}

func (v *nativeView) Load(url string) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	if url == "" {
		return fmt.Errorf("webkitgtk: refusing to load an empty URL")
	}
	v.wk.LoadURI(url)
	return nil
}

func (v *nativeView) LoadHTML(html, baseURL string) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.wk.LoadHTML(html, baseURL)
	return nil
}

func (v *nativeView) Reload(bypassCache bool) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	if bypassCache {
		v.wk.ReloadBypassCache()
	} else {
		v.wk.Reload()
	}
	return nil
}

func (v *nativeView) Stop() error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.wk.StopLoading()
	return nil
}

func (v *nativeView) URL() string   { return v.wk.URI() }
func (v *nativeView) Title() string { return v.wk.Title() }

func (v *nativeView) Icon() []byte {
	tex := v.wk.Favicon()
	if tex == nil {
		return nil
	}
	bytes := tex.SaveToPNGBytes()
	if bytes == nil {
		return nil
	}
	return bytes.Data()
}

func (v *nativeView) LoadProgress() int {
	return int(v.wk.EstimatedLoadProgress() * 100)
}

func (v *nativeView) IsLoading() bool { return v.wk.IsLoading() }

func navEntryFromItem(item *webkit.BackForwardListItem) engine.NavEntry {
	return engine.NavEntry{
		URL:         item.URI(),
		OriginalURL: item.OriginalURI(),
		Title:       item.Title(),
	}
}

func (v *nativeView) History() ([]engine.NavEntry, int, error) {
	if v.isClosed() {
		return nil, -1, engine.ErrViewClosed
	}
	bfl := v.wk.BackForwardList()
	back := bfl.BackList()
	fwd := bfl.ForwardList()

	entries := make([]engine.NavEntry, 0, len(back)+len(fwd)+1)
	// The back list arrives newest first.
	for i := len(back) - 1; i >= 0; i-- {
		entries = append(entries, navEntryFromItem(back[i]))
	}
	idx := -1
	if cur := bfl.CurrentItem(); cur != nil {
		idx = len(entries)
		entries = append(entries, navEntryFromItem(cur))
	}
	for _, item := range fwd {
		entries = append(entries, navEntryFromItem(item))
	}
	return entries, idx, nil
}

func (v *nativeView) GoToIndex(i int) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	_, cur, err := v.History()
	if err != nil {
		return err
	}
	// The list indexes items relative to the current one.
	item := v.wk.BackForwardList().NthItem(i - cur)
	if item == nil {
		return fmt.Errorf("webkitgtk: history index %d out of range", i)
	}
	v.wk.GoToBackForwardListItem(item)
	return nil
}

func (v *nativeView) SerializeHistory() ([]byte, error) {
	if v.isClosed() {
		return nil, engine.ErrViewClosed
	}
	state := v.wk.SessionState()
	if state == nil {
		return nil, fmt.Errorf("webkitgtk: no session state available")
	}
	bytes := state.Serialize()
	if bytes == nil {
		return nil, fmt.Errorf("webkitgtk: failed to serialize session state")
	}
	return bytes.Data(), nil
}

func (v *nativeView) RestoreHistory(data []byte) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	state := webkit.NewWebViewSessionState(glib.NewBytes(data))
	if state == nil {
		return fmt.Errorf("webkitgtk: failed to decode session state")
	}
	v.wk.RestoreSessionState(state)
	return nil
}

func (v *nativeView) ZoomFactor() float64 { return v.wk.ZoomLevel() }

func (v *nativeView) SetZoomFactor(factor float64) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.wk.SetZoomLevel(factor)
	return nil
}

func (v *nativeView) runScroll(js string, update func(*engine.Point)) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.RunJS(js, engine.WorldApp)
	v.mu.Lock()
	update(&v.scroll)
	v.mu.Unlock()
	return nil
}

func (v *nativeView) ScrollToPoint(p engine.Point) error {
	return v.runScroll(script.Call("window.scrollTo", p.X, p.Y), func(s *engine.Point) {
		*s = p
	})
}

func (v *nativeView) ScrollToAnchor(name string) error {
	if name == "" {
		return fmt.Errorf("webkitgtk: empty anchor name")
	}
	js := fmt.Sprintf("location.hash = %s", script.Quote("#"+name))
	return v.runScroll(js, func(*engine.Point) {})
}

func (v *nativeView) ScrollDelta(dx, dy int) error {
	return v.runScroll(script.Call("window.scrollBy", dx, dy), func(s *engine.Point) {
		s.X += dx
		s.Y += dy
	})
}

func (v *nativeView) ScrollDeltaPage(px, py float64) error {
	js := fmt.Sprintf("window.scrollBy(window.innerWidth * %g, window.innerHeight * %g)", px, py)
	return v.runScroll(js, func(*engine.Point) {})
}

func (v *nativeView) ScrollToPerc(x, y float64) error {
	jsX := "window.scrollX"
	if x != engine.PercKeep {
		jsX = fmt.Sprintf("(document.documentElement.scrollWidth - window.innerWidth) * %g / 100", x)
	}
	jsY := "window.scrollY"
	if y != engine.PercKeep {
		jsY = fmt.Sprintf("(document.documentElement.scrollHeight - window.innerHeight) * %g / 100", y)
	}
	return v.runScroll(fmt.Sprintf("window.scrollTo(%s, %s)", jsX, jsY), func(*engine.Point) {})
}

// ScrollPosition reports the last commanded position. WebKitGTK has no
// synchronous way to read the live offset from the UI process.
func (v *nativeView) ScrollPosition() (engine.Point, error) {
	if v.isClosed() {
		return engine.Point{}, engine.ErrViewClosed
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scroll, nil
}

func (v *nativeView) ScrollPercentage() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	// Best effort from the cached position; the document size is not
	// known synchronously.
	x := 0
	if v.scroll.X > 0 {
		x = 100
	}
	y := 0
	if v.scroll.Y > 0 {
		y = 100
	}
	return x, y
}

func (v *nativeView) settleFind(res engine.FindResult) {
	v.mu.Lock()
	fut := v.findFut
	v.findFut = nil
	v.mu.Unlock()
	if fut != nil {
		fut.Resolve(res)
	}
}

func findOptions(flags engine.FindFlags) webkit.FindOptions {
	var opts webkit.FindOptions
	if !flags.CaseSensitive {
		opts |= webkit.FindOptionsCaseInsensitive
	}
	if flags.Backward {
		opts |= webkit.FindOptionsBackwards
	}
	if flags.WrapAround {
		opts |= webkit.FindOptionsWrapAround
	}
	return opts
}

func (v *nativeView) Find(text string, flags engine.FindFlags) *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	v.mu.Lock()
	if prev := v.findFut; prev != nil {
		v.findFut = nil
		prev.Resolve(engine.FindResult{})
	}
	v.findFut = fut
	v.mu.Unlock()

	v.wk.FindController().Search(text, uint32(findOptions(flags)), math.MaxUint32)
	return fut
}

func (v *nativeView) findStep(step func(*webkit.FindController)) *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	v.mu.Lock()
	v.findFut = fut
	v.mu.Unlock()

	step(v.wk.FindController())
	return fut
}

func (v *nativeView) FindNext() *promise.Future[engine.FindResult] {
	return v.findStep(func(fc *webkit.FindController) { fc.SearchNext() })
}

func (v *nativeView) FindPrev() *promise.Future[engine.FindResult] {
	return v.findStep(func(fc *webkit.FindController) { fc.SearchPrevious() })
}

func (v *nativeView) ClearFind() error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.wk.FindController().SearchFinish()
	return nil
}

// RunJS evaluates code asynchronously. The blocking binding call runs
// on its own goroutine; the GLib loop delivers the completion there.
func (v *nativeView) RunJS(code string, world engine.World) *promise.Future[any] {
	fut := promise.NewFuture[any](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	go func() {
		val, err := v.wk.EvaluateJavascript(context.Background(), code, len(code), worldName(world), "")
		if err != nil {
			fut.Reject(fmt.Errorf("failed to evaluate script: %w", err))
			return
		}
		fut.Resolve(jscToGo(val))
	}()
	return fut
}

func (v *nativeView) RunJSSync(code string, world engine.World) (any, error) {
	return nil, fmt.Errorf("synchronous script execution: %w", engine.ErrUnsupported)
}

// jscToGo converts a JavaScriptCore value into plain Go data.
func jscToGo(val *jsc.Value) any {
	switch {
	case val == nil, val.IsNull(), val.IsUndefined():
		return nil
	case val.IsBoolean():
		return val.ToBoolean()
	case val.IsNumber():
		return val.ToDouble()
	case val.IsString():
		return val.ToString()
	default:
		var decoded any
		if err := json.Unmarshal([]byte(val.ToJSON(0)), &decoded); err != nil {
			return val.ToString()
		}
		return decoded
	}
}

func (v *nativeView) IsMuted() bool { return v.wk.IsMuted() }

func (v *nativeView) SetMuted(muted bool) error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	v.wk.SetIsMuted(muted)
	v.mu.Lock()
	v.muted = muted
	v.mu.Unlock()
	return nil
}

func (v *nativeView) DumpHTML() *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	v.RunJS("document.documentElement.outerHTML", engine.WorldApp).Then(func(res any, err error) {
		if err != nil {
			fut.Reject(err)
			return
		}
		html, ok := res.(string)
		if !ok {
			fut.Reject(fmt.Errorf("webkitgtk: unexpected HTML dump result %T", res))
			return
		}
		fut.Resolve(html)
	})
	return fut
}

func (v *nativeView) PrintToPDF(path string) *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)
	if v.isClosed() {
		fut.Reject(engine.ErrViewClosed)
		return fut
	}

	op := webkit.NewPrintOperation(v.wk)
	settings := gtk.NewPrintSettings()
	settings.Set("output-file-format", "pdf")
	settings.Set("output-uri", "file://"+path)
	op.SetPrintSettings(settings)

	op.ConnectFinished(func() { fut.Resolve(path) })
	op.ConnectFailed(func(err error) {
		fut.Reject(fmt.Errorf("failed to print to PDF: %w", err))
	})
	op.Print()
	return fut
}

func (v *nativeView) ShowInspector() error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	insp := v.wk.Inspector()
	if insp == nil {
		return fmt.Errorf("inspector unavailable: %w", engine.ErrUnsupported)
	}
	insp.Show()
	return nil
}

func (v *nativeView) CloseInspector() error {
	if v.isClosed() {
		return engine.ErrViewClosed
	}
	insp := v.wk.Inspector()
	if insp == nil {
		return fmt.Errorf("inspector unavailable: %w", engine.ErrUnsupported)
	}
	insp.Close()
	return nil
}

func (v *nativeView) Settings() engine.Settings { return v.settings }
func (v *nativeView) Events() *engine.Events    { return v.events }

func (v *nativeView) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *nativeView) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	fut := v.findFut
	v.findFut = nil
	v.mu.Unlock()

	if fut != nil {
		fut.Reject(engine.ErrViewClosed)
	}
	v.wk.StopLoading()
	v.win.Close()
	v.log.Debug().Msg("native view closed")
	return nil
}
