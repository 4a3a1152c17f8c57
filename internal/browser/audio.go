package browser

import (
	"github.com/skiff-browser/skiff/internal/event"
)

// Audio controls tab muting. A mute set with override survives config
// driven remutes, so an explicit toggle is not silently undone.
type Audio struct {
	tab      *Tab
	override bool

	// MutedChanged fires after the engine accepted a mute change.
	MutedChanged *event.Hook[bool]
}

func newAudio(tab *Tab) *Audio {
	return &Audio{
		tab:          tab,
		MutedChanged: event.NewHook[bool]("audio-muted-changed"),
	}
}

func (a *Audio) IsMuted() bool { return a.tab.view.IsMuted() }

// SetMuted mutes or unmutes the tab. override marks the change as an
// explicit user decision.
func (a *Audio) SetMuted(muted, override bool) error {
	if err := a.tab.view.SetMuted(muted); err != nil {
		return err
	}
	a.override = override
	a.MutedChanged.Emit(muted)
	return nil
}

// SetMutedDefault applies a config-driven mute unless the user already
// decided otherwise.
func (a *Audio) SetMutedDefault(muted bool) error {
	if a.override {
		return nil
	}
	return a.SetMuted(muted, false)
}

// ToggleMuted flips the mute state as a user decision.
func (a *Audio) ToggleMuted() error {
	return a.SetMuted(!a.IsMuted(), true)
}
