package engine

import "time"

// Config holds the settings a view is constructed with. Fields map to
// engine settings where the backend has them; the rest are applied by
// the shell via the Settings interface after construction.
type Config struct {
	// UserAgent overrides the backend's default UA when non-empty.
	UserAgent string

	// EnableJavaScript controls script execution.
	EnableJavaScript bool

	// AutoLoadImages controls automatic image loading.
	AutoLoadImages bool

	// DefaultFontSize in pixels.
	DefaultFontSize int

	// MinimumFontSize in pixels.
	MinimumFontSize int

	// DataDir is the directory for persistent site data (cookies, local
	// storage). Empty means ephemeral.
	DataDir string

	// CacheDir is the directory for the HTTP cache.
	CacheDir string

	// Muted starts the view with audio muted.
	Muted bool

	// RemoteDebuggingURL attaches the chromium backend to an already
	// running browser instead of spawning one.
	RemoteDebuggingURL string

	// Headless hides the spawned chromium window.
	Headless bool

	// FetchTimeout bounds a single page fetch in the lite backend.
	FetchTimeout time.Duration
}

// DefaultConfig returns a Config with the defaults backends assume when
// a field is zero.
func DefaultConfig() Config {
	return Config{
		EnableJavaScript: true,
		AutoLoadImages:   true,
		DefaultFontSize:  16,
		MinimumFontSize:  8,
		Headless:         true,
		FetchTimeout:     30 * time.Second,
	}
}
