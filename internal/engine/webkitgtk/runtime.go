//go:build !webkit_cgo

package webkitgtk

const nativeAvailable = false

// RunNativeLoop blocks on the toolkit main loop in native builds. There
// is none here, so it returns immediately.
func RunNativeLoop() {}

// QuitNativeLoop stops the toolkit main loop in native builds.
func QuitNativeLoop() {}

// RunOnNativeThread runs fn on the toolkit main thread in native
// builds; here it runs inline.
func RunOnNativeThread(fn func()) { fn() }
