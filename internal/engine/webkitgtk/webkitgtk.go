// Package webkitgtk implements the webkit backend on WebKitGTK 6. The
// native implementation lives behind the webkit_cgo build tag; default
// builds get a logical stand-in that keeps full per-view state so the
// rest of the application behaves, without rendering anything.
package webkitgtk

import (
	"encoding/json"
	"fmt"

	"github.com/skiff-browser/skiff/internal/engine"
)

// BackendName is the configuration value selecting this backend.
const BackendName = "webkit"

func init() {
	engine.Register(factory{})
}

type factory struct{}

func (factory) Name() string { return BackendName }

// Available reports whether this build renders natively.
func (factory) Available() bool { return nativeAvailable }

// worldName maps the world hint onto WebKit script world names. The
// main world is the unnamed one.
func worldName(w engine.World) string {
	switch w {
	case engine.WorldApp:
		return "SkiffApp"
	case engine.WorldUser:
		return "SkiffUser"
	default:
		return ""
	}
}

// historyState is the serialization format shared by the native and
// stand-in views, so a session captured by one restores into the other.
type historyState struct {
	Entries []engine.NavEntry `json:"entries"`
	Index   int               `json:"index"`
}

func encodeHistory(entries []engine.NavEntry, index int) ([]byte, error) {
	data, err := json.Marshal(historyState{Entries: entries, Index: index})
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

func decodeHistory(data []byte) (historyState, error) {
	var st historyState
	if err := json.Unmarshal(data, &st); err != nil {
		return historyState{}, fmt.Errorf("failed to decode history: %w", err)
	}
	if st.Index < -1 || st.Index >= len(st.Entries) {
		return historyState{}, fmt.Errorf("history index %d out of range for %d entries", st.Index, len(st.Entries))
	}
	return st, nil
}
