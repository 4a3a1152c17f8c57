package browser

import (
	"github.com/skiff-browser/skiff/internal/engine"
)

// History navigates the tab's back/forward list. Requests past an edge
// clamp to the edge entry and still report a boundary error, so the user
// lands somewhere useful and sees why the count was not honored.
type History struct {
	tab *Tab
}

func newHistory(tab *Tab) *History {
	return &History{tab: tab}
}

// Entries returns the back/forward list and the index of the current
// entry within it. The index is -1 when the list is empty.
func (h *History) Entries() ([]engine.NavEntry, int, error) {
	return h.tab.view.History()
}

func (h *History) CanGoBack() bool {
	_, idx, err := h.tab.view.History()
	return err == nil && idx > 0
}

func (h *History) CanGoForward() bool {
	entries, idx, err := h.tab.view.History()
	return err == nil && idx >= 0 && idx < len(entries)-1
}

// Back goes count entries back. If fewer entries exist it navigates to
// the first one and returns an error wrapping ErrAtBoundary. A negative
// count returns an error wrapping ErrInvalidArgument without any
// navigation.
func (h *History) Back(count int) error {
	if count < 0 {
		return invalidArgument(msgNegativeCount)
	}
	return h.step(-count, msgHistoryStart)
}

// Forward goes count entries forward, with the same clamping behavior
// as Back against the newest entry.
func (h *History) Forward(count int) error {
	if count < 0 {
		return invalidArgument(msgNegativeCount)
	}
	return h.step(count, msgHistoryEnd)
}

func (h *History) step(offset int, boundaryMsg string) error {
	entries, idx, err := h.tab.view.History()
	if err != nil {
		return err
	}
	if len(entries) == 0 || idx < 0 {
		return boundaryError(boundaryMsg)
	}

	target := idx + offset
	clamped := target
	if clamped < 0 {
		clamped = 0
	}
	if clamped > len(entries)-1 {
		clamped = len(entries) - 1
	}

	h.tab.log.Debug().
		Int("index", idx).
		Int("target", target).
		Int("clamped", clamped).
		Msg("History step")

	if err := h.tab.view.GoToIndex(clamped); err != nil {
		return err
	}
	if target != clamped {
		return boundaryError(boundaryMsg)
	}
	return nil
}

// Serialize returns the whole back/forward list in the backend's
// persistent form, for session saving.
func (h *History) Serialize() ([]byte, error) {
	return h.tab.view.SerializeHistory()
}

// Restore replaces the back/forward list with a previously serialized
// one and navigates to its current entry.
func (h *History) Restore(data []byte) error {
	return h.tab.view.RestoreHistory(data)
}
