package logging

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"
)

// SetupCrashHandler sets up signal handlers to catch crashes and log them.
// crashDir may be empty, in which case only stderr gets the report.
func SetupCrashHandler(crashDir string) {
	c := make(chan os.Signal, 1)

	signal.Notify(c,
		syscall.SIGSEGV,
		syscall.SIGABRT,
		syscall.SIGFPE,
		syscall.SIGBUS,
		syscall.SIGILL,
	)

	go func() {
		sig := <-c
		handleCrash(sig, crashDir)
	}()
}

func handleCrash(sig os.Signal, crashDir string) {
	report := fmt.Sprintf("signal: %v\ntime: %s\ngoroutines: %d\n\n%s\n",
		sig, time.Now().Format(time.RFC3339), runtime.NumGoroutine(), debug.Stack())

	fmt.Fprintf(os.Stderr, "fatal signal received\n%s", report)

	if crashDir != "" {
		if err := os.MkdirAll(crashDir, 0o755); err == nil {
			name := filepath.Join(crashDir, "crash_"+time.Now().Format("20060102_150405")+".txt")
			_ = os.WriteFile(name, []byte(report), 0o644)
		}
	}

	// Re-raise with default disposition so the OS still records the crash
	signal.Reset(sig.(syscall.Signal))
	_ = syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
}
