package lite

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/promise"
)

// Logical page geometry. Without a layout engine the document height is
// estimated from the amount of visible text, so longer pages scroll
// further.
const (
	viewportSpan = 1000
	charsPerLine = 80
	lineHeight   = 16
)

const (
	zoomMin = 0.25
	zoomMax = 5.0
)

const (
	maxIconBytes   = 256 << 10
	scriptTimeout  = 5 * time.Second
	defaultTimeout = 30 * time.Second
)

var viewIDCounter uint64

func (factory) NewView(ctx context.Context, opts engine.Options) (engine.View, error) {
	id := atomic.AddUint64(&viewIDCounter, 1)
	log := logging.FromContext(ctx).With().
		Str("component", "lite").
		Uint64("view_id", id).
		Logger()

	timeout := opts.Config.FetchTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.Config.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("Upgrade-Insecure-Requests", "1")

	v := &view{
		id:       id,
		cfg:      opts.Config,
		post:     opts.Post,
		log:      log,
		client:   client,
		events:   engine.NewEvents(),
		settings: engine.NewMemSettings(opts.Config),
		zoom:     1.0,
		muted:    opts.Config.Muted,
		histIdx:  -1,
	}
	return v, nil
}

// view fetches pages with a plain HTTP client and keeps a parsed DOM
// snapshot. Fetches run on their own goroutines; everything else is
// guarded by mu and events fire through the post option.
type view struct {
	id       uint64
	cfg      engine.Config
	post     func(func())
	log      zerolog.Logger
	client   *resty.Client
	events   *engine.Events
	settings *engine.MemSettings

	mu       sync.RWMutex
	closed   bool
	loading  bool
	loadSeq  uint64
	progress int
	url      string
	title    string
	html     string
	text     string
	doc      *goquery.Document
	icon     []byte
	zoom     float64
	muted    bool
	scroll   engine.Point
	hist     []engine.NavEntry
	histIdx  int

	findText  string
	findFlags engine.FindFlags
	findIdx   int
	findTotal int

	vmMu sync.Mutex
	vm   *sobek.Runtime
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

func (v *view) Load(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("lite: refusing to load an empty URL")
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.progress = 10
	v.url = rawURL
	v.title = ""
	// A new load drops the forward part of the history.
	v.hist = append(v.hist[:v.histIdx+1], engine.NavEntry{URL: rawURL, OriginalURL: rawURL})
	v.histIdx = len(v.hist) - 1
	v.mu.Unlock()

	v.log.Debug().Str("url", rawURL).Msg("fetch started")
	v.dispatch(func() {
		v.events.LoadStarted.Emit(struct{}{})
		v.events.URLChanged.Emit(rawURL)
		v.events.LoadProgress.Emit(10)
	})

	go v.fetch(seq, rawURL)
	return nil
}

// fetch retrieves a page and applies it. It runs off-loop; the result
// is applied back on the loop, where a stale sequence number means a
// newer navigation won and this result is dropped.
func (v *view) fetch(seq uint64, rawURL string) {
	resp, err := v.client.R().Get(rawURL)

	v.dispatch(func() {
		v.mu.Lock()
		if v.closed || v.loadSeq != seq {
			v.mu.Unlock()
			return
		}
		v.mu.Unlock()

		if err != nil {
			v.log.Debug().Err(err).Str("url", rawURL).Msg("fetch failed")
			v.finishLoad(seq, false)
			return
		}

		finalURL := rawURL
		if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
			finalURL = raw.Request.URL.String()
		}
		v.applyDocument(seq, finalURL, resp.String())
		go v.fetchIcon(seq, finalURL)
	})
}

// applyDocument parses body, installs it as the current page and
// finishes the load. Must run on the loop.
func (v *view) applyDocument(seq uint64, finalURL, body string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		v.log.Debug().Err(err).Msg("parse failed")
		v.finishLoad(seq, false)
		return
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := flattenText(doc)

	v.mu.Lock()
	if v.closed || v.loadSeq != seq {
		v.mu.Unlock()
		return
	}
	urlChanged := v.url != finalURL
	v.url = finalURL
	v.title = title
	v.html = body
	v.text = text
	v.doc = doc
	v.scroll = engine.Point{}
	v.resetFindLocked()
	if v.histIdx >= 0 && v.histIdx < len(v.hist) {
		v.hist[v.histIdx].URL = finalURL
		v.hist[v.histIdx].Title = title
	}
	v.mu.Unlock()

	if urlChanged {
		v.events.URLChanged.Emit(finalURL)
	}
	if title != "" {
		v.events.TitleChanged.Emit(title)
	}
	v.finishLoad(seq, true)
}

// finishLoad flips the loading state and emits the final events. Must
// run on the loop.
func (v *view) finishLoad(seq uint64, ok bool) {
	v.mu.Lock()
	if v.closed || v.loadSeq != seq {
		v.mu.Unlock()
		return
	}
	v.loading = false
	v.progress = 100
	v.mu.Unlock()

	v.events.LoadProgress.Emit(100)
	v.events.LoadFinished.Emit(ok)
}

// fetchIcon resolves the page's favicon and emits it. Runs off-loop.
func (v *view) fetchIcon(seq uint64, pageURL string) {
	iconURL := v.iconURL(pageURL)
	if iconURL == "" {
		return
	}

	resp, err := v.client.R().Get(iconURL)
	if err != nil || resp.StatusCode() != 200 {
		return
	}
	data := resp.Body()
	if len(data) == 0 || len(data) > maxIconBytes {
		return
	}

	v.dispatch(func() {
		v.mu.Lock()
		if v.closed || v.loadSeq != seq {
			v.mu.Unlock()
			return
		}
		v.icon = data
		v.mu.Unlock()
		v.events.IconChanged.Emit(data)
	})
}

// iconURL picks the page's declared icon, or the conventional
// /favicon.ico fallback.
func (v *view) iconURL(pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return ""
	}

	v.mu.RLock()
	doc := v.doc
	v.mu.RUnlock()

	href := ""
	if doc != nil {
		doc.Find(`link[rel~="icon"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if h, ok := sel.Attr("href"); ok && h != "" {
				href = h
				return false
			}
			return true
		})
	}
	if href == "" {
		href = "/favicon.ico"
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func (v *view) LoadHTML(html, baseURL string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.url = baseURL
	v.hist = append(v.hist[:v.histIdx+1], engine.NavEntry{URL: baseURL, OriginalURL: baseURL})
	v.histIdx = len(v.hist) - 1
	v.mu.Unlock()

	v.dispatch(func() {
		v.events.LoadStarted.Emit(struct{}{})
		if baseURL != "" {
			v.events.URLChanged.Emit(baseURL)
		}
		v.applyDocument(seq, baseURL, html)
	})
	return nil
}

func (v *view) Reload(bypassCache bool) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	current := v.url
	if current == "" {
		v.mu.Unlock()
		return nil
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.progress = 10
	v.mu.Unlock()

	v.log.Debug().Str("url", current).Bool("bypass_cache", bypassCache).Msg("reload")
	v.dispatch(func() {
		v.events.LoadStarted.Emit(struct{}{})
		v.events.LoadProgress.Emit(10)
	})

	go func() {
		req := v.client.R()
		if bypassCache {
			req.SetHeader("Cache-Control", "no-cache")
		}
		resp, err := req.Get(current)
		v.dispatch(func() {
			v.mu.Lock()
			if v.closed || v.loadSeq != seq {
				v.mu.Unlock()
				return
			}
			v.mu.Unlock()
			if err != nil {
				v.finishLoad(seq, false)
				return
			}
			v.applyDocument(seq, current, resp.String())
		})
	}()
	return nil
}

// Stop abandons the in-flight fetch; its result will arrive with a
// stale sequence number and be dropped.
func (v *view) Stop() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	wasLoading := v.loading
	v.loadSeq++
	v.loading = false
	v.mu.Unlock()

	if wasLoading {
		v.dispatch(func() { v.events.LoadFinished.Emit(false) })
	}
	return nil
}

func (v *view) URL() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.url
}

func (v *view) Title() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.title
}

func (v *view) Icon() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.icon
}

func (v *view) LoadProgress() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.progress
}

func (v *view) IsLoading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

func (v *view) History() ([]engine.NavEntry, int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return nil, -1, engine.ErrViewClosed
	}
	entries := make([]engine.NavEntry, len(v.hist))
	copy(entries, v.hist)
	return entries, v.histIdx, nil
}

func (v *view) GoToIndex(i int) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	if i < 0 || i >= len(v.hist) {
		v.mu.Unlock()
		return fmt.Errorf("lite: history index %d out of range", i)
	}
	v.loadSeq++
	seq := v.loadSeq
	v.histIdx = i
	target := v.hist[i].URL
	v.url = target
	v.loading = true
	v.progress = 10
	v.mu.Unlock()

	v.dispatch(func() {
		v.events.LoadStarted.Emit(struct{}{})
		v.events.URLChanged.Emit(target)
	})
	go v.fetch(seq, target)
	return nil
}

func (v *view) SerializeHistory() ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return encodeHistory(v.hist, v.histIdx)
}

func (v *view) RestoreHistory(data []byte) error {
	st, err := decodeHistory(data)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	v.hist = st.Entries
	v.histIdx = st.Index
	v.mu.Unlock()

	if st.Index >= 0 {
		return v.GoToIndex(st.Index)
	}
	return nil
}

func (v *view) ZoomFactor() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zoom
}

func (v *view) SetZoomFactor(factor float64) error {
	if factor < zoomMin {
		factor = zoomMin
	}
	if factor > zoomMax {
		factor = zoomMax
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.zoom = factor
	return nil
}

// docHeight estimates the page height from the text length. Held lock
// required.
func (v *view) docHeightLocked() int {
	h := len(v.text) / charsPerLine * lineHeight
	if h < viewportSpan {
		return viewportSpan
	}
	return h
}

func (v *view) maxScrollLocked() int {
	return v.docHeightLocked() - viewportSpan
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func (v *view) ScrollToPoint(p engine.Point) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.scroll = engine.Point{X: 0, Y: clamp(p.Y, 0, v.maxScrollLocked())}
	return nil
}

func (v *view) ScrollToAnchor(name string) error {
	if name == "" {
		return fmt.Errorf("lite: empty anchor")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	if v.doc == nil {
		return engine.ErrNotReady
	}

	sel := v.doc.Find(`[id="` + name + `"], a[name="` + name + `"]`).First()
	if sel.Length() == 0 {
		return fmt.Errorf("lite: anchor %q not found", name)
	}

	// Estimate the anchor's position by where its text sits in the
	// flattened page text.
	y := 0
	if anchorText := strings.TrimSpace(sel.Text()); anchorText != "" && len(v.text) > 0 {
		if off := strings.Index(v.text, anchorText); off >= 0 {
			y = off * v.docHeightLocked() / len(v.text)
		}
	}
	v.scroll = engine.Point{X: 0, Y: clamp(y, 0, v.maxScrollLocked())}
	return nil
}

func (v *view) ScrollDelta(dx, dy int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.scroll = engine.Point{X: 0, Y: clamp(v.scroll.Y+dy, 0, v.maxScrollLocked())}
	return nil
}

func (v *view) ScrollDeltaPage(px, py float64) error {
	return v.ScrollDelta(int(px*viewportSpan), int(py*viewportSpan))
}

func (v *view) ScrollToPerc(x, y float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	if y == engine.PercKeep {
		return nil
	}
	if y < 0 {
		y = 0
	}
	if y > 100 {
		y = 100
	}
	v.scroll.Y = int(y * float64(v.maxScrollLocked()) / 100)
	return nil
}

func (v *view) ScrollPosition() (engine.Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return engine.Point{}, engine.ErrViewClosed
	}
	return v.scroll, nil
}

func (v *view) ScrollPercentage() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	maxY := v.maxScrollLocked()
	if maxY == 0 {
		return 0, 0
	}
	return 0, v.scroll.Y * 100 / maxY
}

func countMatches(text, needle string, caseSensitive bool) int {
	if needle == "" {
		return 0
	}
	if !caseSensitive {
		text = strings.ToLower(text)
		needle = strings.ToLower(needle)
	}
	return strings.Count(text, needle)
}

func (v *view) resetFindLocked() {
	v.findText = ""
	v.findIdx = 0
	v.findTotal = 0
}

func (v *view) Find(text string, flags engine.FindFlags) *promise.Future[engine.FindResult] {
	out := promise.NewFuture[engine.FindResult](v.post)
	v.dispatch(func() {
		v.mu.Lock()
		if v.closed {
			v.mu.Unlock()
			out.Reject(engine.ErrViewClosed)
			return
		}
		total := countMatches(v.text, text, flags.CaseSensitive)
		v.findText = text
		v.findFlags = flags
		v.findTotal = total
		switch {
		case total == 0:
			v.findIdx = 0
		case flags.Backward:
			v.findIdx = total
		default:
			v.findIdx = 1
		}
		res := engine.FindResult{Found: total > 0, Current: v.findIdx, Total: total}
		v.mu.Unlock()
		out.Resolve(res)
	})
	return out
}

func (v *view) FindNext() *promise.Future[engine.FindResult] {
	return v.stepFind(1)
}

func (v *view) FindPrev() *promise.Future[engine.FindResult] {
	return v.stepFind(-1)
}

// stepFind moves the active match by dir in document order, honoring
// the search's backward flag and wrap setting.
func (v *view) stepFind(dir int) *promise.Future[engine.FindResult] {
	out := promise.NewFuture[engine.FindResult](v.post)
	v.dispatch(func() {
		v.mu.Lock()
		if v.closed {
			v.mu.Unlock()
			out.Reject(engine.ErrViewClosed)
			return
		}
		if v.findText == "" || v.findTotal == 0 {
			res := engine.FindResult{}
			v.mu.Unlock()
			out.Resolve(res)
			return
		}

		step := dir
		if v.findFlags.Backward {
			step = -dir
		}
		next := v.findIdx + step
		found := true
		switch {
		case next < 1:
			if v.findFlags.WrapAround {
				next = v.findTotal
			} else {
				next = v.findIdx
				found = false
			}
		case next > v.findTotal:
			if v.findFlags.WrapAround {
				next = 1
			} else {
				next = v.findIdx
				found = false
			}
		}
		v.findIdx = next
		res := engine.FindResult{Found: found, Current: v.findIdx, Total: v.findTotal}
		v.mu.Unlock()
		out.Resolve(res)
	})
	return out
}

func (v *view) ClearFind() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.resetFindLocked()
	return nil
}

// RunJS executes code in the embedded interpreter on a worker
// goroutine and settles on the loop.
func (v *view) RunJS(code string, world engine.World) *promise.Future[any] {
	out := promise.NewFuture[any](v.post)
	go func() {
		res, err := v.RunJSSync(code, world)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(res)
	}()
	return out
}

// RunJSSync executes code and waits. The lite interpreter has no world
// isolation; the world hint is ignored.
func (v *view) RunJSSync(code string, world engine.World) (any, error) {
	v.mu.RLock()
	closed := v.closed
	enabled := v.cfg.EnableJavaScript
	v.mu.RUnlock()
	if closed {
		return nil, engine.ErrViewClosed
	}
	if !enabled {
		return nil, fmt.Errorf("lite: JavaScript is disabled: %w", engine.ErrUnsupported)
	}

	v.vmMu.Lock()
	defer v.vmMu.Unlock()

	vm := v.ensureVM()
	v.refreshGlobals(vm)

	timer := time.AfterFunc(scriptTimeout, func() {
		vm.Interrupt("execution timeout exceeded")
	})
	defer func() {
		timer.Stop()
		// An interrupt that raced the end of the run would poison the
		// next script otherwise.
		vm.ClearInterrupt()
	}()

	val, err := vm.RunString(code)
	if err != nil {
		return nil, fmt.Errorf("lite: script failed: %w", err)
	}
	if val == nil || sobek.IsUndefined(val) || sobek.IsNull(val) {
		return nil, nil
	}
	return val.Export(), nil
}

// ensureVM builds the interpreter on first use. Callers hold vmMu.
func (v *view) ensureVM() *sobek.Runtime {
	if v.vm != nil {
		return v.vm
	}

	vm := sobek.New()
	log := v.log
	console := map[string]any{
		"log":   func(args ...any) { log.Debug().Interface("args", args).Msg("console.log") },
		"warn":  func(args ...any) { log.Warn().Interface("args", args).Msg("console.warn") },
		"error": func(args ...any) { log.Error().Interface("args", args).Msg("console.error") },
	}
	_ = vm.Set("console", console)
	_ = vm.Set("window", vm.GlobalObject())

	v.vm = vm
	return vm
}

// refreshGlobals exposes a snapshot of the current page to scripts.
// Callers hold vmMu.
func (v *view) refreshGlobals(vm *sobek.Runtime) {
	v.mu.RLock()
	title, pageURL := v.title, v.url
	v.mu.RUnlock()

	_ = vm.Set("document", map[string]any{
		"title":      title,
		"URL":        pageURL,
		"readyState": "complete",
	})
	_ = vm.Set("location", map[string]any{"href": pageURL})
}

func (v *view) IsMuted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.muted
}

func (v *view) SetMuted(muted bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.muted = muted
	return nil
}

func (v *view) DumpHTML() *promise.Future[string] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return promise.Failed[string](v.post, engine.ErrViewClosed)
	}
	return promise.Resolved(v.post, v.html)
}

// PrintToPDF is not supported without a renderer.
func (v *view) PrintToPDF(path string) *promise.Future[string] {
	return promise.Failed[string](v.post, fmt.Errorf("lite: cannot render PDFs: %w", engine.ErrUnsupported))
}

func (v *view) ShowInspector() error {
	return fmt.Errorf("lite: no inspector: %w", engine.ErrUnsupported)
}

func (v *view) CloseInspector() error {
	return fmt.Errorf("lite: no inspector: %w", engine.ErrUnsupported)
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
	v.loadSeq++
	v.doc = nil
	v.mu.Unlock()

	v.log.Debug().Msg("view closed")
	return nil
}

// flattenText collapses the page's visible text into one
// whitespace-normalized string for find and scrolling estimates.
func flattenText(doc *goquery.Document) string {
	body := doc.Find("body")
	var raw string
	if body.Length() > 0 {
		raw = body.Text()
	} else {
		raw = doc.Text()
	}
	return strings.Join(strings.Fields(raw), " ")
}
