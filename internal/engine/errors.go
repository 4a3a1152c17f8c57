package engine

import "errors"

var (
	// ErrUnsupported is returned by operations the active backend cannot
	// perform. Callers either skip the feature or surface the limitation
	// to the user.
	ErrUnsupported = errors.New("engine: operation not supported by this backend")

	// ErrNotReady marks misuse of the engine layer, such as selecting a
	// backend that was never registered or driving a view before its
	// factory finished constructing it.
	ErrNotReady = errors.New("engine: not ready")

	// ErrViewClosed is returned when a view is driven after Close.
	ErrViewClosed = errors.New("engine: view closed")

	// ErrUnknownSetting is returned for setting names no backend knows.
	ErrUnknownSetting = errors.New("engine: unknown setting")
)
