package browser

import (
	"strings"
	"unicode"

	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/event"
	"github.com/skiff-browser/skiff/internal/promise"
)

// NavResult describes the outcome of stepping between search matches.
type NavResult int

const (
	NavNotFound NavResult = iota
	NavFound
	// NavWrappedBottom means the search passed the last match and
	// continued from the top.
	NavWrappedBottom
	// NavWrapPreventedBottom means the last match was active and
	// wrapping is disabled, so nothing moved.
	NavWrapPreventedBottom
	NavWrappedTop
	NavWrapPreventedTop
)

func (r NavResult) String() string {
	switch r {
	case NavNotFound:
		return "not-found"
	case NavFound:
		return "found"
	case NavWrappedBottom:
		return "wrapped-bottom"
	case NavWrapPreventedBottom:
		return "wrap-prevented-bottom"
	case NavWrappedTop:
		return "wrapped-top"
	case NavWrapPreventedTop:
		return "wrap-prevented-top"
	default:
		return "unknown"
	}
}

// Search drives find-in-page on one tab and tracks the active match
// position. All methods must run on the loop goroutine.
type Search struct {
	tab *Tab
	cfg SearchConfig

	text      string
	displayed bool
	flags     engine.FindFlags
	match     SearchMatch

	// Finished fires when a started search resolved, with whether any
	// match was found.
	Finished *event.Hook[bool]
	// MatchChanged fires when the current/total position changed.
	MatchChanged *event.Hook[SearchMatch]
	// Cleared fires when the search and its highlights were dropped.
	Cleared *event.Hook[struct{}]
}

func newSearch(tab *Tab, cfg SearchConfig) *Search {
	return &Search{
		tab:          tab,
		cfg:          cfg,
		Finished:     event.NewHook[bool]("search-finished"),
		MatchChanged: event.NewHook[SearchMatch]("search-match-changed"),
		Cleared:      event.NewHook[struct{}]("search-cleared"),
	}
}

// Text returns the active search term, empty when nothing is searched.
func (s *Search) Text() string { return s.text }

// Match returns the current match position.
func (s *Search) Match() SearchMatch { return s.match }

// caseSensitive resolves the ignore-case setting against the term:
// "smart" is sensitive only when the term contains an upper-case rune.
func (s *Search) caseSensitive(text string) bool {
	switch s.cfg.IgnoreCase {
	case "never":
		return true
	case "always":
		return false
	default:
		return strings.IndexFunc(text, unicode.IsUpper) >= 0
	}
}

// Start begins a new search. Repeating the currently displayed term is
// a no-op resolving with the previous outcome. The future resolves with
// whether any match was found.
func (s *Search) Start(text string, reverse bool) *promise.Future[bool] {
	post := s.tab.post
	if text == s.text && s.displayed && reverse == s.flags.Backward {
		return promise.Resolved(post, true)
	}

	s.text = text
	s.flags = engine.FindFlags{
		CaseSensitive: s.caseSensitive(text),
		Backward:      reverse,
		WrapAround:    s.cfg.WrapAround,
	}
	s.match.Reset()

	s.tab.log.Debug().
		Str("text", text).
		Bool("reverse", reverse).
		Bool("case_sensitive", s.flags.CaseSensitive).
		Msg("Search started")

	out := promise.NewFuture[bool](post)
	s.tab.view.Find(text, s.flags).Then(func(res engine.FindResult, err error) {
		if err != nil {
			s.displayed = false
			out.Reject(err)
			return
		}
		s.displayed = res.Found
		s.setMatch(res)
		s.Finished.Emit(res.Found)
		out.Resolve(res.Found)
	})
	return out
}

// Next moves to the following match in the direction the search was
// started with.
func (s *Search) Next() *promise.Future[NavResult] {
	return s.navigate(false)
}

// Prev moves against the search direction.
func (s *Search) Prev() *promise.Future[NavResult] {
	return s.navigate(true)
}

func (s *Search) navigate(prev bool) *promise.Future[NavResult] {
	post := s.tab.post
	if s.text == "" {
		return promise.Failed[NavResult](post, engine.ErrNotReady)
	}

	goingUp := s.flags.Backward != prev
	wrapped := false
	if s.match.AtLimit(goingUp) {
		if !s.cfg.WrapAround {
			if goingUp {
				return promise.Resolved(post, NavWrapPreventedTop)
			}
			return promise.Resolved(post, NavWrapPreventedBottom)
		}
		wrapped = true
	}

	var f *promise.Future[engine.FindResult]
	if prev {
		f = s.tab.view.FindPrev()
	} else {
		f = s.tab.view.FindNext()
	}

	out := promise.NewFuture[NavResult](post)
	f.Then(func(res engine.FindResult, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		s.setMatch(res)
		switch {
		case !res.Found:
			out.Resolve(NavNotFound)
		case wrapped && goingUp:
			out.Resolve(NavWrappedTop)
		case wrapped:
			out.Resolve(NavWrappedBottom)
		default:
			out.Resolve(NavFound)
		}
	})
	return out
}

// Clear drops the active search and its highlights.
func (s *Search) Clear() error {
	if s.text == "" && !s.displayed {
		return nil
	}
	s.text = ""
	s.displayed = false
	s.match.Reset()
	err := s.tab.view.ClearFind()
	s.Cleared.Emit(struct{}{})
	return err
}

func (s *Search) setMatch(res engine.FindResult) {
	next := SearchMatch{Current: res.Current, Total: res.Total}
	if next == s.match {
		return
	}
	s.match = next
	s.MatchChanged.Emit(next)
}
