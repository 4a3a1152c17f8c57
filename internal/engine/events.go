package engine

import "github.com/skiff-browser/skiff/internal/event"

// Events bundles the hooks every view emits. Backends fire them on the
// owning loop via the Post option; subscribers must not block.
type Events struct {
	// LoadStarted fires when a new top-level load begins.
	LoadStarted *event.Hook[struct{}]
	// LoadProgress reports load progress in percent, 0 to 100.
	LoadProgress *event.Hook[int]
	// LoadFinished fires once per load with the outcome.
	LoadFinished *event.Hook[bool]
	// URLChanged fires whenever the view's URL changes, including
	// same-document navigation.
	URLChanged *event.Hook[string]
	// TitleChanged fires when the page title changes.
	TitleChanged *event.Hook[string]
	// IconChanged carries the new favicon bytes, nil when cleared.
	IconChanged *event.Hook[[]byte]
	// FullscreenRequested fires when the page asks to enter or leave
	// fullscreen.
	FullscreenRequested *event.Hook[bool]
	// RendererTerminated fires when the renderer process backing the
	// view goes away.
	RendererTerminated *event.Hook[Termination]
	// NewTabRequested carries the URL of a navigation the page wants
	// opened in a new view.
	NewTabRequested *event.Hook[string]
}

// NewEvents builds an Events struct with all hooks ready to connect.
func NewEvents() *Events {
	return &Events{
		LoadStarted:         event.NewHook[struct{}]("load-started"),
		LoadProgress:        event.NewHook[int]("load-progress"),
		LoadFinished:        event.NewHook[bool]("load-finished"),
		URLChanged:          event.NewHook[string]("url-changed"),
		TitleChanged:        event.NewHook[string]("title-changed"),
		IconChanged:         event.NewHook[[]byte]("icon-changed"),
		FullscreenRequested: event.NewHook[bool]("fullscreen-requested"),
		RendererTerminated:  event.NewHook[Termination]("renderer-terminated"),
		NewTabRequested:     event.NewHook[string]("new-tab-requested"),
	}
}
