package browser

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/messaging"
	"github.com/skiff-browser/skiff/internal/ui/mainloop"
	"github.com/skiff-browser/skiff/internal/urlutil"
)

// ZoomConfig configures the per-tab zoom selector.
type ZoomConfig struct {
	// Levels are the allowed zoom percentages, ascending.
	Levels []int
	// Default is the starting percentage, normally 100.
	Default int
	// TextOnly asks backends to zoom text without scaling images.
	TextOnly bool
}

// SearchConfig configures find-in-page behavior.
type SearchConfig struct {
	// IgnoreCase is one of "smart", "always" or "never".
	IgnoreCase string
	// WrapAround continues searching from the other end of the page.
	WrapAround bool
	// Incremental searches while the user is still typing.
	Incremental bool
}

// Options configures a Session. Zero values fall back to sensible
// defaults via Defaults.
type Options struct {
	// Backend names the engine backend to build tabs with.
	Backend string
	// Engine is passed through to the backend factory.
	Engine engine.Config

	Zoom   ZoomConfig
	Search SearchConfig

	// FaviconsShow is the tabs.favicons.show setting.
	FaviconsShow string
	// PinnedFrozen blocks navigation in pinned tabs.
	PinnedFrozen bool
	// InspectorPosition is the fallback dock position when none is saved.
	InspectorPosition string
}

// Defaults fills unset Options fields in place.
func (o *Options) Defaults() {
	if o.Backend == "" {
		o.Backend = "webkit"
	}
	if len(o.Zoom.Levels) == 0 {
		o.Zoom.Levels = DefaultZoomLevels()
	}
	if o.Zoom.Default == 0 {
		o.Zoom.Default = DefaultZoomPercent
	}
	if o.Search.IgnoreCase == "" {
		o.Search.IgnoreCase = "smart"
	}
	if o.FaviconsShow == "" {
		o.FaviconsShow = "always"
	}
	if o.InspectorPosition == "" {
		o.InspectorPosition = PositionRight.String()
	}
}

// StateStore persists small shell state such as the inspector dock
// position and window geometry.
type StateStore interface {
	State(ctx context.Context, section, key string) (string, bool, error)
	SetState(ctx context.Context, section, key, value string) error
}

// ZoomStore persists per-domain zoom factors.
type ZoomStore interface {
	ZoomLevel(ctx context.Context, host string) (float64, bool, error)
	SetZoomLevel(ctx context.Context, host string, factor float64) error
}

// VisitRecorder receives completed page loads for the visit history.
type VisitRecorder interface {
	Record(ctx context.Context, url, title string)
}

// Session owns the state shared between tabs: the event loop, the
// message bridge, the set of hosts with accepted certificate errors and
// the persistence hooks. It replaces what would otherwise be process
// globals, so tests can run many sessions side by side.
type Session struct {
	opts   Options
	loop   *mainloop.Loop
	bridge *messaging.Bridge
	log    zerolog.Logger

	state  StateStore
	zooms  ZoomStore
	visits VisitRecorder

	insecureHosts map[string]struct{}
	nextTabID     atomic.Uint64
}

// SessionOption tweaks a Session at construction time.
type SessionOption func(*Session)

// WithStateStore attaches the shell state store.
func WithStateStore(st StateStore) SessionOption {
	return func(s *Session) { s.state = st }
}

// WithZoomStore attaches per-domain zoom persistence.
func WithZoomStore(zs ZoomStore) SessionOption {
	return func(s *Session) { s.zooms = zs }
}

// WithVisitRecorder attaches the visit history sink.
func WithVisitRecorder(vr VisitRecorder) SessionOption {
	return func(s *Session) { s.visits = vr }
}

// NewSession builds a session around the given loop. The loop is not
// started here; the shell owns its lifecycle.
func NewSession(ctx context.Context, loop *mainloop.Loop, opts Options, extra ...SessionOption) *Session {
	opts.Defaults()

	s := &Session{
		opts:          opts,
		loop:          loop,
		bridge:        messaging.NewBridge(),
		log:           logging.FromContext(ctx).With().Str("component", "session").Logger(),
		insecureHosts: make(map[string]struct{}),
	}
	for _, o := range extra {
		o(s)
	}
	return s
}

func (s *Session) Loop() *mainloop.Loop { return s.loop }

func (s *Session) Bridge() *messaging.Bridge { return s.bridge }

func (s *Session) Options() Options { return s.opts }

// NewTab builds a tab with a fresh engine view from the configured
// backend.
func (s *Session) NewTab(ctx context.Context) (*Tab, error) {
	factory, err := engine.Get(s.opts.Backend)
	if err != nil {
		return nil, err
	}

	view, err := factory.NewView(ctx, engine.Options{
		Config: s.opts.Engine,
		Post:   s.loop.Post,
	})
	if err != nil {
		return nil, err
	}

	id := s.nextTabID.Add(1)
	s.log.Debug().Uint64("tab_id", id).Str("backend", factory.Name()).Msg("Tab created")
	return newTab(ctx, s, id, view), nil
}

// RememberInsecureHost records a host whose certificate error the user
// accepted. Loads from it and its parent domains classify as Warn
// instead of SuccessHTTPS.
func (s *Session) RememberInsecureHost(host string) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return
	}
	s.insecureHosts[host] = struct{}{}
	s.log.Debug().Str("host", host).Msg("Remembered insecure host")
}

// IsInsecureHost reports whether the host or one of its parent domains
// was remembered via RememberInsecureHost.
func (s *Session) IsInsecureHost(host string) bool {
	for _, widened := range urlutil.WidenedHostnames(strings.ToLower(host)) {
		if _, ok := s.insecureHosts[widened]; ok {
			return true
		}
	}
	return false
}

// ClearInsecureHosts forgets all accepted certificate errors.
func (s *Session) ClearInsecureHosts() {
	s.insecureHosts = make(map[string]struct{})
}

// Ask routes a question through the bridge without waiting for the
// answer. Completion is observable through the question's hooks.
func (s *Session) Ask(q *messaging.Question) {
	s.bridge.Ask(q, false)
}

// AskBlocking routes a question through the bridge and pumps the event
// loop until it is answered or aborted. It must be called from loop
// context. The returned value is nil when the question was aborted or
// cancelled. With no prompt handler attached the question is aborted
// right away instead of pumping forever.
func (s *Session) AskBlocking(q *messaging.Question) any {
	if s.bridge.Questions.Len() == 0 {
		s.log.Warn().Str("question", q.Text).Msg("No prompt handler, aborting question")
		q.Abort()
		return nil
	}

	s.bridge.Ask(q, true)
	if q.IsPending() {
		s.loop.PumpUntil(func() bool { return !q.IsPending() })
	}
	return q.Answer()
}
