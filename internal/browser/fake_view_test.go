package browser

import (
	"context"
	"strings"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/promise"
	"github.com/skiff-browser/skiff/internal/ui/mainloop"
)

// fakeView is a fully scripted engine.View. Futures settle inline so
// facade tests stay synchronous.
type fakeView struct {
	id       uint64
	url      string
	title    string
	icon     []byte
	loading  bool
	progress int
	closed   bool

	entries []engine.NavEntry
	histIdx int
	gotoMax bool // reject GoToIndex outside entries

	zoom      float64
	zoomCalls []float64

	scrollPos    engine.Point
	percX, percY int

	muted bool

	findResult engine.FindResult
	findErr    error
	findFlags  engine.FindFlags
	findOps    []string

	jsResults map[string]any
	jsErr     error
	jsCalls   []string

	html     string
	printErr error

	inspectorShown  int
	inspectorClosed int

	loads     []string
	htmlLoads []string
	reloads   int
	stops     int

	settings engine.Settings
	events   *engine.Events
}

func newFakeView() *fakeView {
	return &fakeView{
		id:        1,
		zoom:      1.0,
		histIdx:   -1,
		jsResults: map[string]any{},
		settings:  engine.NewMemSettings(engine.DefaultConfig()),
		events:    engine.NewEvents(),
	}
}

// setHistory seeds n entries with the current one at idx.
func (v *fakeView) setHistory(idx int, urls ...string) {
	v.entries = nil
	for _, u := range urls {
		v.entries = append(v.entries, engine.NavEntry{URL: u, OriginalURL: u, Title: u})
	}
	v.histIdx = idx
	if idx >= 0 && idx < len(urls) {
		v.url = urls[idx]
	}
}

func (v *fakeView) ID() uint64      { return v.id }
func (v *fakeView) Backend() string { return "fake" }

func (v *fakeView) Load(url string) error {
	v.loads = append(v.loads, url)
	v.url = url
	return nil
}

func (v *fakeView) LoadHTML(html, baseURL string) error {
	v.htmlLoads = append(v.htmlLoads, html)
	v.html = html
	v.url = baseURL
	return nil
}

func (v *fakeView) Reload(bypassCache bool) error { v.reloads++; return nil }
func (v *fakeView) Stop() error                   { v.stops++; return nil }

func (v *fakeView) URL() string       { return v.url }
func (v *fakeView) Title() string     { return v.title }
func (v *fakeView) Icon() []byte      { return v.icon }
func (v *fakeView) LoadProgress() int { return v.progress }
func (v *fakeView) IsLoading() bool   { return v.loading }

func (v *fakeView) History() ([]engine.NavEntry, int, error) {
	return v.entries, v.histIdx, nil
}

func (v *fakeView) GoToIndex(i int) error {
	if i < 0 || i >= len(v.entries) {
		return engine.ErrNotReady
	}
	v.histIdx = i
	v.url = v.entries[i].URL
	return nil
}

func (v *fakeView) SerializeHistory() ([]byte, error) { return []byte("history"), nil }
func (v *fakeView) RestoreHistory(data []byte) error  { return nil }

func (v *fakeView) ZoomFactor() float64 { return v.zoom }

func (v *fakeView) SetZoomFactor(factor float64) error {
	v.zoom = factor
	v.zoomCalls = append(v.zoomCalls, factor)
	return nil
}

func (v *fakeView) ScrollToPoint(p engine.Point) error { v.scrollPos = p; return nil }
func (v *fakeView) ScrollToAnchor(name string) error   { return nil }

func (v *fakeView) ScrollDelta(dx, dy int) error {
	v.scrollPos.X += dx
	v.scrollPos.Y += dy
	return nil
}

func (v *fakeView) ScrollDeltaPage(px, py float64) error { return nil }
func (v *fakeView) ScrollToPerc(x, y float64) error      { return nil }
func (v *fakeView) ScrollPosition() (engine.Point, error) {
	return v.scrollPos, nil
}
func (v *fakeView) ScrollPercentage() (int, int) { return v.percX, v.percY }

func (v *fakeView) Find(text string, flags engine.FindFlags) *promise.Future[engine.FindResult] {
	v.findOps = append(v.findOps, "find:"+text)
	v.findFlags = flags
	if v.findErr != nil {
		return promise.Failed[engine.FindResult](nil, v.findErr)
	}
	return promise.Resolved(nil, v.findResult)
}

func (v *fakeView) FindNext() *promise.Future[engine.FindResult] {
	v.findOps = append(v.findOps, "next")
	if v.findErr != nil {
		return promise.Failed[engine.FindResult](nil, v.findErr)
	}
	return promise.Resolved(nil, v.findResult)
}

func (v *fakeView) FindPrev() *promise.Future[engine.FindResult] {
	v.findOps = append(v.findOps, "prev")
	if v.findErr != nil {
		return promise.Failed[engine.FindResult](nil, v.findErr)
	}
	return promise.Resolved(nil, v.findResult)
}

func (v *fakeView) ClearFind() error {
	v.findOps = append(v.findOps, "clear")
	return nil
}

func (v *fakeView) RunJS(code string, world engine.World) *promise.Future[any] {
	v.jsCalls = append(v.jsCalls, code)
	if v.jsErr != nil {
		return promise.Failed[any](nil, v.jsErr)
	}
	for key, res := range v.jsResults {
		if strings.Contains(code, key) {
			return promise.Resolved[any](nil, res)
		}
	}
	return promise.Resolved[any](nil, nil)
}

func (v *fakeView) RunJSSync(code string, world engine.World) (any, error) {
	return nil, engine.ErrUnsupported
}

func (v *fakeView) IsMuted() bool { return v.muted }

func (v *fakeView) SetMuted(muted bool) error {
	v.muted = muted
	return nil
}

func (v *fakeView) DumpHTML() *promise.Future[string] {
	return promise.Resolved(nil, v.html)
}

func (v *fakeView) PrintToPDF(path string) *promise.Future[string] {
	if v.printErr != nil {
		return promise.Failed[string](nil, v.printErr)
	}
	return promise.Resolved(nil, path)
}

func (v *fakeView) ShowInspector() error  { v.inspectorShown++; return nil }
func (v *fakeView) CloseInspector() error { v.inspectorClosed++; return nil }

func (v *fakeView) Settings() engine.Settings { return v.settings }
func (v *fakeView) Events() *engine.Events    { return v.events }

func (v *fakeView) Close() error { v.closed = true; return nil }

// fakeFactory builds fake views, or hands out a prepared one.
type fakeFactory struct {
	name string
	view engine.View
}

func (f *fakeFactory) Name() string    { return f.name }
func (f *fakeFactory) Available() bool { return true }

func (f *fakeFactory) NewView(ctx context.Context, opts engine.Options) (engine.View, error) {
	if f.view != nil {
		return f.view, nil
	}
	return newFakeView(), nil
}

// memStateStore is an in-memory StateStore for inspector tests.
type memStateStore struct {
	values map[[2]string]string
	sets   int
}

func newMemStateStore() *memStateStore {
	return &memStateStore{values: map[[2]string]string{}}
}

func (m *memStateStore) State(ctx context.Context, section, key string) (string, bool, error) {
	v, ok := m.values[[2]string{section, key}]
	return v, ok, nil
}

func (m *memStateStore) SetState(ctx context.Context, section, key, value string) error {
	m.sets++
	m.values[[2]string{section, key}] = value
	return nil
}

// memZoomStore is an in-memory ZoomStore.
type memZoomStore struct {
	levels map[string]float64
}

func newMemZoomStore() *memZoomStore {
	return &memZoomStore{levels: map[string]float64{}}
}

func (m *memZoomStore) ZoomLevel(ctx context.Context, host string) (float64, bool, error) {
	f, ok := m.levels[host]
	return f, ok, nil
}

func (m *memZoomStore) SetZoomLevel(ctx context.Context, host string, factor float64) error {
	m.levels[host] = factor
	return nil
}

// newTestTab builds a session plus tab around a fake view, bypassing the
// registry. The loop is not running; tests pump it when needed.
func newTestTab(t testingT, view engine.View, opts Options, extra ...SessionOption) (*Session, *Tab) {
	t.Helper()
	loop := mainloop.New()
	s := NewSession(context.Background(), loop, opts, extra...)
	tab := newTab(context.Background(), s, 1, view)
	return s, tab
}

// testingT is the subset of *testing.T newTestTab needs.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
