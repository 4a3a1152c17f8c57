//go:build !webkit_cgo

package webkitgtk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/promise"
)

// Logical page geometry backing the stand-in scroller. The document is
// a fixed square and the viewport a fixed window into it, which keeps
// pixel and percentage reporting consistent for tests.
const (
	documentSpan = 10000
	viewportSpan = 1000
	maxScroll    = documentSpan - viewportSpan
)

const (
	zoomMin = 0.25
	zoomMax = 5.0
)

var viewIDCounter uint64

func (factory) NewView(ctx context.Context, opts engine.Options) (engine.View, error) {
	id := atomic.AddUint64(&viewIDCounter, 1)
	log := logging.FromContext(ctx).With().
		Str("component", "webkitgtk").
		Uint64("view_id", id).
		Logger()
	log.Warn().Msg("native WebKitGTK not compiled in, view state is logical only")

	v := &stubView{
		id:       id,
		cfg:      opts.Config,
		post:     opts.Post,
		log:      log,
		events:   engine.NewEvents(),
		settings: engine.NewMemSettings(opts.Config),
		zoom:     1.0,
		muted:    opts.Config.Muted,
		histIdx:  -1,
	}
	return v, nil
}

// stubView keeps the full logical state of a web view without a
// renderer behind it. Loads complete immediately and scrolling moves
// over a fixed-size pretend document.
type stubView struct {
	id       uint64
	cfg      engine.Config
	post     func(func())
	log      zerolog.Logger
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
	icon     []byte
	zoom     float64
	muted    bool
	scroll   engine.Point
	hist     []engine.NavEntry
	histIdx  int
	findText string
	findCase bool
	inspOpen bool
}

func (v *stubView) ID() uint64      { return v.id }
func (v *stubView) Backend() string { return BackendName }

func (v *stubView) dispatch(fn func()) {
	if v.post == nil {
		fn()
		return
	}
	v.post(fn)
}

func (v *stubView) Load(url string) error {
	if url == "" {
		return fmt.Errorf("webkitgtk: refusing to load an empty URL")
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.progress = 0
	v.url = url
	v.title = ""
	// A new load drops the forward part of the history.
	v.hist = append(v.hist[:v.histIdx+1], engine.NavEntry{URL: url, OriginalURL: url})
	v.histIdx = len(v.hist) - 1
	v.mu.Unlock()

	v.log.Debug().Str("url", url).Msg("load started")
	v.completeLoad(seq, url)
	return nil
}

// completeLoad finishes the pretend load on the owning loop.
func (v *stubView) completeLoad(seq uint64, url string) {
	v.dispatch(func() {
		v.mu.Lock()
		if v.closed || v.loadSeq != seq {
			v.mu.Unlock()
			return
		}
		v.mu.Unlock()
		v.events.LoadStarted.Emit(struct{}{})
		v.events.URLChanged.Emit(url)
		v.events.LoadProgress.Emit(100)

		v.mu.Lock()
		if v.closed || v.loadSeq != seq {
			v.mu.Unlock()
			return
		}
		v.loading = false
		v.progress = 100
		v.mu.Unlock()
		v.events.LoadFinished.Emit(true)
	})
}

func (v *stubView) LoadHTML(html, baseURL string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.html = html
	v.url = baseURL
	v.mu.Unlock()

	v.completeLoad(seq, baseURL)
	return nil
}

func (v *stubView) Reload(bypassCache bool) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	url := v.url
	if url == "" {
		v.mu.Unlock()
		return nil
	}
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.progress = 0
	v.mu.Unlock()

	v.log.Debug().Str("url", url).Bool("bypass_cache", bypassCache).Msg("reload")
	v.completeLoad(seq, url)
	return nil
}

func (v *stubView) Stop() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	wasLoading := v.loading
	v.loading = false
	v.loadSeq++
	v.mu.Unlock()

	if wasLoading {
		v.dispatch(func() { v.events.LoadFinished.Emit(false) })
	}
	return nil
}

func (v *stubView) URL() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.url
}

func (v *stubView) Title() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.title
}

func (v *stubView) Icon() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.icon
}

func (v *stubView) LoadProgress() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.progress
}

func (v *stubView) IsLoading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

func (v *stubView) History() ([]engine.NavEntry, int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return nil, -1, engine.ErrViewClosed
	}
	entries := make([]engine.NavEntry, len(v.hist))
	copy(entries, v.hist)
	return entries, v.histIdx, nil
}

func (v *stubView) GoToIndex(i int) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return engine.ErrViewClosed
	}
	if i < 0 || i >= len(v.hist) {
		v.mu.Unlock()
		return fmt.Errorf("webkitgtk: history index %d out of range [0, %d)", i, len(v.hist))
	}
	v.histIdx = i
	url := v.hist[i].URL
	v.url = url
	v.title = v.hist[i].Title
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.mu.Unlock()

	v.completeLoad(seq, url)
	return nil
}

func (v *stubView) SerializeHistory() ([]byte, error) {
	entries, idx, err := v.History()
	if err != nil {
		return nil, err
	}
	return encodeHistory(entries, idx)
}

func (v *stubView) RestoreHistory(data []byte) error {
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
	var url string
	if st.Index >= 0 {
		url = st.Entries[st.Index].URL
		v.url = url
		v.title = st.Entries[st.Index].Title
	}
	v.loadSeq++
	seq := v.loadSeq
	v.mu.Unlock()

	if url != "" {
		v.completeLoad(seq, url)
	}
	return nil
}

func (v *stubView) ZoomFactor() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zoom
}

func (v *stubView) SetZoomFactor(factor float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	if factor < zoomMin {
		factor = zoomMin
	}
	if factor > zoomMax {
		factor = zoomMax
	}
	v.zoom = factor
	return nil
}

func clampScroll(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxScroll {
		return maxScroll
	}
	return n
}

func (v *stubView) ScrollToPoint(p engine.Point) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.scroll = engine.Point{X: clampScroll(p.X), Y: clampScroll(p.Y)}
	return nil
}

func (v *stubView) ScrollToAnchor(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	if name == "" {
		return fmt.Errorf("webkitgtk: empty anchor name")
	}
	// No DOM to resolve the anchor against; jump to the top like an
	// unknown fragment would.
	v.scroll = engine.Point{}
	return nil
}

func (v *stubView) ScrollDelta(dx, dy int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.scroll = engine.Point{X: clampScroll(v.scroll.X + dx), Y: clampScroll(v.scroll.Y + dy)}
	return nil
}

func (v *stubView) ScrollDeltaPage(px, py float64) error {
	return v.ScrollDelta(int(px*viewportSpan), int(py*viewportSpan))
}

func (v *stubView) ScrollToPerc(x, y float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	if x != engine.PercKeep {
		v.scroll.X = clampScroll(int(x / 100 * maxScroll))
	}
	if y != engine.PercKeep {
		v.scroll.Y = clampScroll(int(y / 100 * maxScroll))
	}
	return nil
}

func (v *stubView) ScrollPosition() (engine.Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return engine.Point{}, engine.ErrViewClosed
	}
	return v.scroll, nil
}

func (v *stubView) ScrollPercentage() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scroll.X * 100 / maxScroll, v.scroll.Y * 100 / maxScroll
}

func (v *stubView) findResult(text string, caseSensitive bool) engine.FindResult {
	if text == "" {
		return engine.FindResult{}
	}
	haystack := v.html
	needle := text
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	// WebKit reports found-or-not without match counts.
	return engine.FindResult{Found: strings.Contains(haystack, needle)}
}

func (v *stubView) Find(text string, flags engine.FindFlags) *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		fut.Reject(engine.ErrViewClosed)
		return fut
	}
	v.findText = text
	v.findCase = flags.CaseSensitive
	res := v.findResult(text, flags.CaseSensitive)
	v.mu.Unlock()

	fut.Resolve(res)
	return fut
}

func (v *stubView) FindNext() *promise.Future[engine.FindResult] {
	fut := promise.NewFuture[engine.FindResult](v.post)

	v.mu.RLock()
	if v.closed {
		v.mu.RUnlock()
		fut.Reject(engine.ErrViewClosed)
		return fut
	}
	res := v.findResult(v.findText, v.findCase)
	v.mu.RUnlock()

	fut.Resolve(res)
	return fut
}

func (v *stubView) FindPrev() *promise.Future[engine.FindResult] {
	return v.FindNext()
}

func (v *stubView) ClearFind() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.findText = ""
	return nil
}

func (v *stubView) RunJS(code string, world engine.World) *promise.Future[any] {
	fut := promise.NewFuture[any](v.post)
	fut.Reject(fmt.Errorf("script execution needs the native build: %w", engine.ErrUnsupported))
	return fut
}

func (v *stubView) RunJSSync(code string, world engine.World) (any, error) {
	return nil, fmt.Errorf("synchronous script execution: %w", engine.ErrUnsupported)
}

func (v *stubView) IsMuted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.muted
}

func (v *stubView) SetMuted(muted bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.muted = muted
	return nil
}

func (v *stubView) DumpHTML() *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)

	v.mu.RLock()
	if v.closed {
		v.mu.RUnlock()
		fut.Reject(engine.ErrViewClosed)
		return fut
	}
	html := v.html
	v.mu.RUnlock()

	fut.Resolve(html)
	return fut
}

func (v *stubView) PrintToPDF(path string) *promise.Future[string] {
	fut := promise.NewFuture[string](v.post)
	fut.Reject(fmt.Errorf("PDF printing needs the native build: %w", engine.ErrUnsupported))
	return fut
}

func (v *stubView) ShowInspector() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.inspOpen = true
	return nil
}

func (v *stubView) CloseInspector() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return engine.ErrViewClosed
	}
	v.inspOpen = false
	return nil
}

func (v *stubView) Settings() engine.Settings { return v.settings }
func (v *stubView) Events() *engine.Events    { return v.events }

func (v *stubView) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.loadSeq++
	v.log.Debug().Msg("view closed")
	return nil
}
