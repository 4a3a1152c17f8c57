package browser

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skiff-browser/skiff/internal/event"
)

// Position is where the inspector is shown relative to the page.
type Position int

const (
	PositionRight Position = iota
	PositionLeft
	PositionTop
	PositionBottom
	// PositionWindow detaches the inspector into its own window.
	PositionWindow
)

func (p Position) String() string {
	switch p {
	case PositionRight:
		return "right"
	case PositionLeft:
		return "left"
	case PositionTop:
		return "top"
	case PositionBottom:
		return "bottom"
	case PositionWindow:
		return "window"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition parses a position name as used in config and commands.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return PositionRight, nil
	case "left":
		return PositionLeft, nil
	case "top":
		return PositionTop, nil
	case "bottom":
		return PositionBottom, nil
	case "window":
		return PositionWindow, nil
	default:
		return 0, invalidArgument("invalid inspector position %q", s)
	}
}

// Docked reports whether the position shares the page's window.
func (p Position) Docked() bool { return p != PositionWindow }

// State store keys for the saved position and window geometry.
const (
	stateSectionInspector = "inspector"
	stateKeyPosition      = "position"
	stateKeyGeometry      = "window"
)

// Inspector shows the developer tools for one tab. The chosen position
// is remembered across restarts through the session's state store.
// Switching between a docked position and the window position tears the
// engine inspector down and brings it back up, which Recreated reports
// so the shell can rebuild its container.
type Inspector struct {
	tab *Tab

	position    Position
	hasPosition bool
	visible     bool

	// PositionChanged fires when the inspector is shown somewhere new.
	PositionChanged *event.Hook[Position]
	// Recreated fires when a dock/window switch forced the engine
	// inspector to be rebuilt.
	Recreated *event.Hook[Position]
}

func newInspector(tab *Tab) *Inspector {
	return &Inspector{
		tab:             tab,
		PositionChanged: event.NewHook[Position]("inspector-position-changed"),
		Recreated:       event.NewHook[Position]("inspector-recreated"),
	}
}

// Inspector returns the tab's inspector, creating it on first use.
func (t *Tab) Inspector() *Inspector {
	if t.Data.Inspector == nil {
		t.Data.Inspector = newInspector(t)
	}
	return t.Data.Inspector
}

// SetPosition shows the inspector at the given position. A nil position
// means the position saved from an earlier run, or the configured
// fallback. Requesting the position it is already at toggles visibility
// instead.
func (i *Inspector) SetPosition(pos *Position) error {
	var p Position
	if pos == nil {
		p = i.loadPosition()
	} else {
		p = *pos
		i.savePosition(p)
	}

	if i.hasPosition && p == i.position {
		return i.Toggle()
	}
	return i.show(p)
}

// Toggle hides a visible inspector and shows a hidden one at its last
// position.
func (i *Inspector) Toggle() error {
	if i.visible {
		return i.Hide()
	}
	p := i.position
	if !i.hasPosition {
		p = i.loadPosition()
	}
	return i.show(p)
}

// Hide closes the inspector without forgetting its position.
func (i *Inspector) Hide() error {
	if !i.visible {
		return nil
	}
	if err := i.tab.view.CloseInspector(); err != nil {
		return err
	}
	i.visible = false
	i.tab.log.Debug().Msg("Inspector hidden")
	return nil
}

func (i *Inspector) Visible() bool { return i.visible }

// Position returns the current position. The second result is false
// before the inspector was ever shown.
func (i *Inspector) Position() (Position, bool) {
	return i.position, i.hasPosition
}

func (i *Inspector) show(p Position) error {
	if i.visible && i.hasPosition && i.position.Docked() != p.Docked() {
		// Dock/window switches need a fresh engine inspector.
		if err := i.tab.view.CloseInspector(); err != nil {
			return err
		}
		i.visible = false
		i.Recreated.Emit(p)
		i.tab.log.Debug().Str("position", p.String()).Msg("Inspector recreated")
	}

	if err := i.tab.view.ShowInspector(); err != nil {
		return err
	}
	i.position = p
	i.hasPosition = true
	i.visible = true
	i.PositionChanged.Emit(p)
	i.tab.log.Debug().Str("position", p.String()).Msg("Inspector shown")
	return nil
}

func (i *Inspector) loadPosition() Position {
	fallback := PositionRight
	if p, err := ParsePosition(i.tab.session.Options().InspectorPosition); err == nil {
		fallback = p
	}

	st := i.tab.session.state
	if st == nil {
		return fallback
	}
	saved, ok, err := st.State(i.tab.ctx, stateSectionInspector, stateKeyPosition)
	if err != nil || !ok {
		return fallback
	}
	p, err := ParsePosition(saved)
	if err != nil {
		i.tab.log.Warn().Str("saved", saved).Msg("Ignoring invalid saved inspector position")
		return fallback
	}
	return p
}

func (i *Inspector) savePosition(p Position) {
	st := i.tab.session.state
	if st == nil {
		return
	}
	if err := st.SetState(i.tab.ctx, stateSectionInspector, stateKeyPosition, p.String()); err != nil {
		i.tab.log.Error().Err(err).Msg("Error while saving inspector position")
	}
}

// SaveGeometry persists the detached window's geometry blob.
func (i *Inspector) SaveGeometry(geom []byte) {
	st := i.tab.session.state
	if st == nil {
		return
	}
	encoded := base64.StdEncoding.EncodeToString(geom)
	if err := st.SetState(i.tab.ctx, stateSectionInspector, stateKeyGeometry, encoded); err != nil {
		i.tab.log.Error().Err(err).Msg("Error while saving geometry")
	}
}

// LoadGeometry returns the saved window geometry, nil when there is
// none or it cannot be decoded.
func (i *Inspector) LoadGeometry() []byte {
	st := i.tab.session.state
	if st == nil {
		return nil
	}
	encoded, ok, err := st.State(i.tab.ctx, stateSectionInspector, stateKeyGeometry)
	if err != nil || !ok {
		return nil
	}
	geom, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		i.tab.log.Error().Err(err).Msg("Error while loading geometry")
		return nil
	}
	return geom
}
