package main

import (
	"runtime"

	"github.com/skiff-browser/skiff/internal/build"
	"github.com/skiff-browser/skiff/internal/cli/cmd"

	// Engine backends register themselves on import.
	_ "github.com/skiff-browser/skiff/internal/engine/cdp"
	_ "github.com/skiff-browser/skiff/internal/engine/lite"
	_ "github.com/skiff-browser/skiff/internal/engine/webkitgtk"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	// The webkit backend drives GTK from the main thread.
	runtime.LockOSThread()
}

func main() {
	enableCrashForensics()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
