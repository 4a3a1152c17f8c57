// Package lite implements the lite backend: a rendererless engine that
// fetches pages over plain HTTP, parses them into a DOM snapshot and
// runs JavaScript in an embedded interpreter. It trades rendering for
// zero native dependencies, which makes it the backend of choice for
// headless boxes and tests.
package lite

import (
	"encoding/json"
	"fmt"

	"github.com/skiff-browser/skiff/internal/engine"
)

// BackendName is the configuration value selecting this backend.
const BackendName = "lite"

func init() {
	engine.Register(factory{})
}

type factory struct{}

func (factory) Name() string { return BackendName }

// Available is always true; the lite backend needs nothing but the
// network.
func (factory) Available() bool { return true }

// defaultUserAgent is sent when no override is configured. A browserish
// UA keeps servers from serving the crawler treatment.
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) skiff-lite/1.0"

// historyState is the lite backend's serialized session history.
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
