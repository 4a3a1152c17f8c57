package browser

import (
	"fmt"
	"time"
)

// ClickTarget describes where a clicked or followed link should open.
type ClickTarget int

const (
	TargetNormal ClickTarget = iota
	TargetTab
	TargetTabBg
	TargetWindow
	TargetHover
)

func (t ClickTarget) String() string {
	switch t {
	case TargetNormal:
		return "normal"
	case TargetTab:
		return "tab"
	case TargetTabBg:
		return "tab-bg"
	case TargetWindow:
		return "window"
	case TargetHover:
		return "hover"
	default:
		return fmt.Sprintf("ClickTarget(%d)", int(t))
	}
}

// InputMode is the tab-local input mode tracked for the shell.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeInsert
	ModeCaret
	ModePassthrough
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeCaret:
		return "caret"
	case ModePassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("InputMode(%d)", int(m))
	}
}

// Navigation records a requested main-frame navigation.
type Navigation struct {
	URL  string
	When time.Time
}

// TabData holds the per-tab bookkeeping that does not belong to any
// sub-facade: flags set by commands and consumed by the shell.
type TabData struct {
	// KeepIcon suppresses clearing the favicon on the next load start.
	KeepIcon bool

	// ViewingSource is set when the tab shows page source instead of the
	// rendered page.
	ViewingSource bool

	// Inspector is the lazily created inspector for this tab, nil until
	// first shown.
	Inspector *Inspector

	// OpenTarget is where the next explicit open should go.
	OpenTarget ClickTarget

	// OverrideTarget overrides OpenTarget for exactly one navigation.
	// Nil when no override is active.
	OverrideTarget *ClickTarget

	Pinned     bool
	Fullscreen bool

	InputMode InputMode

	// LastNavigation is the most recent main-frame navigation request.
	LastNavigation Navigation
}

// ShouldShowIcon reports whether the shell should display the favicon,
// given the tabs.favicons.show setting ("always", "never" or "pinned").
func (d *TabData) ShouldShowIcon(show string) bool {
	switch show {
	case "always":
		return true
	case "pinned":
		return d.Pinned
	default:
		return false
	}
}

// SearchMatch tracks the position of the active search match. A zero
// Current with nonzero Total means the position is unknown for the
// current backend.
type SearchMatch struct {
	Current int
	Total   int
}

func (m *SearchMatch) Reset() {
	m.Current = 0
	m.Total = 0
}

// IsNull reports whether no match information is available at all.
func (m SearchMatch) IsNull() bool {
	return m.Current == 0 && m.Total == 0
}

// AtLimit reports whether the active match sits on the edge that the next
// step in the given direction would cross. With no match info it always
// reports false, so navigation proceeds and the backend decides.
func (m SearchMatch) AtLimit(goingUp bool) bool {
	if m.Total == 0 {
		return false
	}
	if goingUp {
		return m.Current == 1
	}
	return m.Current == m.Total
}

func (m SearchMatch) String() string {
	return fmt.Sprintf("%d/%d", m.Current, m.Total)
}
