// Package engine defines the contract between the browser shell and the
// web-rendering backends, plus the registry that selects one at
// startup. Everything above this package talks to a View and never to a
// concrete engine.
package engine

import (
	"context"

	"github.com/skiff-browser/skiff/internal/promise"
)

// View is one embedded web view. Implementations live in the backend
// packages and are driven from the owning loop goroutine; only the
// Events hooks and futures cross goroutines, and those settle through
// the Post option.
//
// Operations a backend cannot perform return ErrUnsupported, or a
// future rejected with it. Driving a view after Close returns
// ErrViewClosed.
type View interface {
	// ID is unique among views of one process.
	ID() uint64
	// Backend names the implementation, matching its Factory.
	Backend() string

	// Load starts loading the given URL.
	Load(url string) error
	// LoadHTML renders the given markup as if served from baseURL.
	LoadHTML(html, baseURL string) error
	// Reload reloads the current page, skipping caches when asked.
	Reload(bypassCache bool) error
	// Stop cancels the current load.
	Stop() error

	URL() string
	Title() string
	// Icon returns the current favicon bytes, nil when there is none.
	Icon() []byte
	// LoadProgress reports load progress in percent, 0 to 100.
	LoadProgress() int
	IsLoading() bool

	// History returns the session history and the index of the current
	// entry, -1 when the history is empty.
	History() ([]NavEntry, int, error)
	// GoToIndex navigates to the history entry at index i.
	GoToIndex(i int) error
	// SerializeHistory captures the session history for later restore.
	SerializeHistory() ([]byte, error)
	// RestoreHistory replaces the session history with captured data.
	RestoreHistory(data []byte) error

	ZoomFactor() float64
	SetZoomFactor(factor float64) error

	// ScrollToPoint scrolls to an absolute pixel position.
	ScrollToPoint(p Point) error
	// ScrollToAnchor scrolls to the named anchor or element id.
	ScrollToAnchor(name string) error
	// ScrollDelta scrolls by a pixel delta.
	ScrollDelta(dx, dy int) error
	// ScrollDeltaPage scrolls by a multiple of the viewport size.
	ScrollDeltaPage(px, py float64) error
	// ScrollToPerc scrolls to a percentage of the scrollable range per
	// axis; pass PercKeep to leave an axis alone.
	ScrollToPerc(x, y float64) error
	// ScrollPosition reports the current scroll offset in pixels.
	ScrollPosition() (Point, error)
	// ScrollPercentage reports the current offset as percentages, 0 to
	// 100 per axis.
	ScrollPercentage() (x, y int)

	// Find starts or updates a page search and highlights matches.
	Find(text string, flags FindFlags) *promise.Future[FindResult]
	// FindNext advances to the next match of the active search.
	FindNext() *promise.Future[FindResult]
	// FindPrev moves to the previous match of the active search.
	FindPrev() *promise.Future[FindResult]
	// ClearFind drops the active search and its highlights.
	ClearFind() error

	// RunJS executes JavaScript and resolves with the JSON-decoded
	// result. World is a hint; backends without isolated worlds run
	// everything in the main world.
	RunJS(code string, world World) *promise.Future[any]
	// RunJSSync executes JavaScript and waits for the result. Backends
	// whose execution model is asynchronous return ErrUnsupported.
	RunJSSync(code string, world World) (any, error)

	IsMuted() bool
	SetMuted(muted bool) error

	// DumpHTML resolves with the serialized DOM of the current page.
	DumpHTML() *promise.Future[string]
	// PrintToPDF renders the current page into a PDF file at path and
	// resolves with the path.
	PrintToPDF(path string) *promise.Future[string]

	ShowInspector() error
	CloseInspector() error

	Settings() Settings
	Events() *Events

	// Close releases the view. Pending futures reject with ErrViewClosed.
	Close() error
}

// Settings exposes per-view engine settings. Reset reverts a key to the
// engine default. Unknown keys return ErrUnknownSetting.
type Settings interface {
	Attribute(name string) (bool, error)
	SetAttribute(name string, on bool) error
	ResetAttribute(name string) error

	FontSize(name string) (int, error)
	SetFontSize(name string, px int) error
	ResetFontSize(name string) error

	FontFamily(name string) (string, error)
	SetFontFamily(name, family string) error
	ResetFontFamily(name string) error

	UserAgent() string
	SetUserAgent(ua string) error
}

// NativeElementFinder is implemented by backends that can resolve DOM
// elements without injecting JavaScript. Callers discover it by type
// assertion on a View and fall back to script-based lookup otherwise.
type NativeElementFinder interface {
	FindElements(selector string) *promise.Future[[]ElementData]
}

// Factory builds views for one backend.
type Factory interface {
	// Name is the configuration value selecting this backend.
	Name() string
	// Available reports whether the backend can actually run in this
	// build and environment.
	Available() bool
	// NewView constructs a view. The context carries the logger and
	// bounds construction, not the view's lifetime.
	NewView(ctx context.Context, opts Options) (View, error)
}

// Options configures a new view.
type Options struct {
	Config Config
	// Post schedules fn onto the owning event loop. Backends emit
	// events and settle futures through it. nil runs callbacks inline,
	// which only tests should rely on.
	Post func(fn func())
}
