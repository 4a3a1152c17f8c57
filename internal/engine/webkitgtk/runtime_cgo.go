//go:build webkit_cgo

package webkitgtk

import (
	"runtime"
	"sync"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/skiff-browser/skiff/pkg/gpu"
)

const nativeAvailable = true

var (
	initOnce sync.Once
	mainLoop *glib.MainLoop
)

// ensureInit locks the calling goroutine to its OS thread and brings
// GTK up. Must run before any widget is touched.
func ensureInit() {
	initOnce.Do(func() {
		runtime.LockOSThread()
		// VA-API env has to be in place before GTK starts GStreamer.
		gpu.SetupVAAPI()
		gtk.Init()
	})
}

// RunNativeLoop blocks on the GLib main loop until QuitNativeLoop.
func RunNativeLoop() {
	ensureInit()
	if mainLoop == nil {
		mainLoop = glib.NewMainLoop(nil, false)
	}
	mainLoop.Run()
}

// QuitNativeLoop stops the GLib main loop.
func QuitNativeLoop() {
	if mainLoop != nil {
		mainLoop.Quit()
	}
}

// RunOnNativeThread schedules fn onto the GLib main loop. Safe to call
// from any goroutine.
func RunOnNativeThread(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}
