// Package clipboard copies text to the system clipboard through the
// wl-copy or xclip helpers.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no clipboard helper is installed.
var ErrUnavailable = errors.New("clipboard: neither wl-copy nor xclip available")

// Copy writes text to the system clipboard. Wayland's wl-copy is tried
// first, xclip is the X11 fallback.
func Copy(text string) error {
	if text == "" {
		return errors.New("clipboard: refusing to copy empty text")
	}
	if err := pipe(text, "wl-copy"); err == nil {
		return nil
	}
	if err := pipe(text, "xclip", "-selection", "clipboard"); err == nil {
		return nil
	}
	return ErrUnavailable
}

func pipe(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Available reports whether a clipboard helper is installed.
func Available() bool {
	for _, name := range []string{"wl-copy", "xclip"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
